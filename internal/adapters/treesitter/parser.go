// Package treesitter implements the parsing front-end on top of tree-sitter grammars.
package treesitter

import (
	"context"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/smacker/go-tree-sitter/yaml"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Parser = (*Parser)(nil)

var (
	grammars     map[domain.Language]*sitter.Language
	grammarsOnce sync.Once
)

func grammar(lang domain.Language) (*sitter.Language, bool) {
	grammarsOnce.Do(func() {
		grammars = map[domain.Language]*sitter.Language{
			domain.LanguageHTML:       html.GetLanguage(),
			domain.LanguageCSS:        css.GetLanguage(),
			domain.LanguageJavaScript: javascript.GetLanguage(),
			domain.LanguageTypeScript: typescript.GetLanguage(),
			domain.LanguageYAML:       yaml.GetLanguage(),
		}
	})
	g, ok := grammars[lang]
	return g, ok
}

// Parser parses source text with the tree-sitter grammar of its language.
// A fresh sitter.Parser is used per call, so Parser is safe for concurrent use.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Supports reports whether a grammar is bundled for lang. Markdown has none.
func (p *Parser) Supports(lang domain.Language) bool {
	_, ok := grammar(lang)
	return ok
}

// Parse builds the syntax tree of source.
func (p *Parser) Parse(ctx context.Context, lang domain.Language, source []byte) (domain.Node, error) {
	g, ok := grammar(lang)
	if !ok {
		return nil, zerr.With(domain.ErrUnsupportedLanguage, "language", string(lang))
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(g)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrParseFailed.Error()), "language", string(lang))
	}
	return &node{n: tree.RootNode(), src: source}, nil
}
