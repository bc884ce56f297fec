package lang

import (
	tree_sitter_kotlin "github.com/smacker/go-tree-sitter/kotlin"
)

func init() {
	Register(&LanguageSpec{
		Language:       Kotlin,
		FileExtensions: []string{".kt", ".kts"},
		Grammar:        tree_sitter_kotlin.GetLanguage,
	})
}
