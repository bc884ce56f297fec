package lang

import (
	tree_sitter_java "github.com/smacker/go-tree-sitter/java"
)

func init() {
	Register(&LanguageSpec{
		Language:       Java,
		FileExtensions: []string{".java"},
		Grammar:        tree_sitter_java.GetLanguage,
	})
}
