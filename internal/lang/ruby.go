package lang

import (
	tree_sitter_ruby "github.com/smacker/go-tree-sitter/ruby"
)

func init() {
	Register(&LanguageSpec{
		Language:       Ruby,
		FileExtensions: []string{".rb", ".rake"},
		Grammar:        tree_sitter_ruby.GetLanguage,
	})
}
