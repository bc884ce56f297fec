package lang

import (
	tree_sitter_scala "github.com/smacker/go-tree-sitter/scala"
)

func init() {
	Register(&LanguageSpec{
		Language:       Scala,
		FileExtensions: []string{".scala", ".sc"},
		Grammar:        tree_sitter_scala.GetLanguage,
	})
}
