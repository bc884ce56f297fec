package lang

import (
	tree_sitter_lua "github.com/smacker/go-tree-sitter/lua"
)

func init() {
	Register(&LanguageSpec{
		Language:       Lua,
		FileExtensions: []string{".lua"},
		Grammar:        tree_sitter_lua.GetLanguage,
	})
}
