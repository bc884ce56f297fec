package lang

import (
	tree_sitter_rust "github.com/smacker/go-tree-sitter/rust"
)

func init() {
	Register(&LanguageSpec{
		Language:       Rust,
		FileExtensions: []string{".rs"},
		Grammar:        tree_sitter_rust.GetLanguage,
	})
}
