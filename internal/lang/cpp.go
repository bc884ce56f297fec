package lang

import (
	tree_sitter_cpp "github.com/smacker/go-tree-sitter/cpp"
)

func init() {
	Register(&LanguageSpec{
		Language:       CPP,
		FileExtensions: []string{".cc", ".cpp", ".cxx", ".hpp", ".hh"},
		Grammar:        tree_sitter_cpp.GetLanguage,
	})
}
