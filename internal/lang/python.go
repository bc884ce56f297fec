package lang

import (
	tree_sitter_python "github.com/smacker/go-tree-sitter/python"
)

func init() {
	Register(&LanguageSpec{
		Language:       Python,
		FileExtensions: []string{".py", ".pyi"},
		Grammar:        tree_sitter_python.GetLanguage,
	})
}
