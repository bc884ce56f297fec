package lang

import (
	tree_sitter_php "github.com/smacker/go-tree-sitter/php"
)

func init() {
	Register(&LanguageSpec{
		Language:       PHP,
		FileExtensions: []string{".php"},
		Grammar:        tree_sitter_php.GetLanguage,
	})
}
