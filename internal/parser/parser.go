package parser

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/rhizome-lab/moss/internal/lang"
)

var (
	languagesOnce sync.Once
	languages     map[lang.Language]*sitter.Language
	parserPools   map[lang.Language]*sync.Pool
)

func initLanguages() {
	languagesOnce.Do(func() {
		langs := lang.AllLanguages()
		languages = make(map[lang.Language]*sitter.Language, len(langs))
		parserPools = make(map[lang.Language]*sync.Pool, len(langs))

		for _, l := range langs {
			spec := lang.ForLanguage(l)
			if spec == nil || spec.Grammar == nil {
				continue
			}
			tsLang := spec.Grammar()
			languages[l] = tsLang
			parserPools[l] = &sync.Pool{
				New: func() any {
					p := sitter.NewParser()
					p.SetLanguage(tsLang)
					return p
				},
			}
		}
	})
}

// GetLanguage returns the tree-sitter Language for a lang.Language.
func GetLanguage(l lang.Language) (*sitter.Language, error) {
	initLanguages()
	tsLang, ok := languages[l]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", l)
	}
	return tsLang, nil
}

// Parse parses source code into a tree-sitter AST Tree.
// The caller must call tree.Close() when done.
// Parsers are pooled per language via sync.Pool to avoid per-file allocation.
func Parse(ctx context.Context, l lang.Language, source []byte) (*sitter.Tree, error) {
	initLanguages()

	pool, ok := parserPools[l]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", l)
	}

	p, _ := pool.Get().(*sitter.Parser)
	if p == nil {
		return nil, fmt.Errorf("failed to get parser for language %s", l)
	}
	tree, err := p.ParseCtx(ctx, nil, source)
	pool.Put(p)

	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("parse failed for language %s", l)
	}

	return tree, nil
}

// NodeText returns the text content of a node.
func NodeText(node *sitter.Node, source []byte) string {
	return node.Content(source)
}
