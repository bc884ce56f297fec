package lang

import (
	tree_sitter_c "github.com/smacker/go-tree-sitter/c"
)

func init() {
	Register(&LanguageSpec{
		Language:       C,
		FileExtensions: []string{".c", ".h"},
		Grammar:        tree_sitter_c.GetLanguage,
	})
}
