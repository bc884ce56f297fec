package lang

import (
	tree_sitter_tsx "github.com/smacker/go-tree-sitter/typescript/tsx"
)

func init() {
	Register(&LanguageSpec{
		Language:       TSX,
		FileExtensions: []string{".tsx"},
		Grammar:        tree_sitter_tsx.GetLanguage,
	})
}
