package lang

import (
	tree_sitter_csharp "github.com/smacker/go-tree-sitter/csharp"
)

func init() {
	Register(&LanguageSpec{
		Language:       CSharp,
		FileExtensions: []string{".cs"},
		Grammar:        tree_sitter_csharp.GetLanguage,
	})
}
