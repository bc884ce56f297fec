package lang

import (
	tree_sitter_javascript "github.com/smacker/go-tree-sitter/javascript"
)

func init() {
	Register(&LanguageSpec{
		Language:       JavaScript,
		FileExtensions: []string{".js", ".mjs", ".cjs", ".jsx"},
		Grammar:        tree_sitter_javascript.GetLanguage,
	})
}
