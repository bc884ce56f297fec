package lang

import (
	tree_sitter_typescript "github.com/smacker/go-tree-sitter/typescript/typescript"
)

func init() {
	Register(&LanguageSpec{
		Language:       TypeScript,
		FileExtensions: []string{".ts"},
		Grammar:        tree_sitter_typescript.GetLanguage,
	})
}
