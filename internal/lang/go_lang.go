package lang

import (
	tree_sitter_golang "github.com/smacker/go-tree-sitter/golang"
)

func init() {
	Register(&LanguageSpec{
		Language:       Go,
		FileExtensions: []string{".go"},
		Grammar:        tree_sitter_golang.GetLanguage,
	})
}
