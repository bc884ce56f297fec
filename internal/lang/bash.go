package lang

import (
	tree_sitter_bash "github.com/smacker/go-tree-sitter/bash"
)

func init() {
	Register(&LanguageSpec{
		Language:       Bash,
		FileExtensions: []string{".sh", ".bash"},
		Grammar:        tree_sitter_bash.GetLanguage,
	})
}
