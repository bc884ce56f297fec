package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Language is the grammar name of a supported language.
type Language string

const (
	Bash       Language = "bash"
	C          Language = "c"
	CPP        Language = "cpp"
	CSharp     Language = "c-sharp"
	Go         Language = "go"
	Java       Language = "java"
	JavaScript Language = "javascript"
	Kotlin     Language = "kotlin"
	Lua        Language = "lua"
	PHP        Language = "php"
	Python     Language = "python"
	Ruby       Language = "ruby"
	Rust       Language = "rust"
	Scala      Language = "scala"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
)

// LanguageSpec ties a language to its file extensions and tree-sitter grammar.
type LanguageSpec struct {
	Language       Language
	FileExtensions []string
	Grammar        func() *sitter.Language
}

// registry maps file extensions to language specs.
var registry = map[string]*LanguageSpec{}

// ordered keeps specs in registration order for AllLanguages.
var ordered []*LanguageSpec

// Register adds a LanguageSpec to the global registry.
func Register(spec *LanguageSpec) {
	ordered = append(ordered, spec)
	for _, ext := range spec.FileExtensions {
		registry[ext] = spec
	}
}

// AllLanguages returns every registered language in registration order.
func AllLanguages() []Language {
	langs := make([]Language, 0, len(ordered))
	for _, spec := range ordered {
		langs = append(langs, spec.Language)
	}
	return langs
}

// ForExtension returns the LanguageSpec for a file extension (e.g. ".go").
func ForExtension(ext string) *LanguageSpec {
	return registry[ext]
}

// ForLanguage returns the LanguageSpec for a language.
func ForLanguage(l Language) *LanguageSpec {
	for _, spec := range ordered {
		if spec.Language == l {
			return spec
		}
	}
	return nil
}

// LanguageForExtension returns the Language for a file extension.
func LanguageForExtension(ext string) (Language, bool) {
	spec := registry[ext]
	if spec == nil {
		return "", false
	}
	return spec.Language, true
}
