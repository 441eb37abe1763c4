package formatters

import (
	"context"
	"strings"

	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
	"go.trai.ch/zerr"
)

// literalKinds are node kinds whose bytes are part of a value and must survive formatting.
var literalKinds = map[string]bool{
	"string":              true,
	"template_string":     true,
	"block_scalar":        true,
	"double_quote_scalar": true,
	"single_quote_scalar": true,
}

// Whitespace normalises line endings, trailing whitespace, indentation and blank lines.
// With a Parser it leaves string literals and block scalars byte for byte.
type Whitespace struct {
	// AllowTabs permits tab indentation when the options ask for it. YAML never allows tabs.
	AllowTabs bool
	// HardBreaks keeps two trailing spaces, the Markdown line break.
	HardBreaks bool
	Language   domain.Language
	Parser     ports.Parser
}

type span struct{ start, end int }

// Format implements domain.Formatter.
func (w Whitespace) Format(source string, opts domain.FormatOptions) (string, error) {
	size := opts.IndentSize
	if size <= 0 {
		size = domain.DefaultFormatOptions().IndentSize
	}
	useTabs := opts.UseTabs && w.AllowTabs

	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")

	literals, err := w.literals(source)
	if err != nil {
		return "", err
	}
	inside := func(off int) bool {
		for _, s := range literals {
			if s.start < off && off < s.end {
				return true
			}
		}
		return false
	}

	var lines []string
	blank := true // drops leading blank lines
	offset := 0
	for _, raw := range strings.Split(source, "\n") {
		start, end := offset, offset+len(raw)
		offset = end + 1

		opened, closed := inside(start), inside(end)
		if opened && closed {
			lines = append(lines, raw)
			blank = false
			continue
		}

		line := raw
		if !closed {
			line = w.trimRight(raw)
		}
		if line == "" && !opened {
			if !blank {
				lines = append(lines, "")
			}
			blank = true
			continue
		}
		blank = false
		if !opened {
			line = reindent(line, size, useTabs)
		}
		lines = append(lines, line)
	}
	return finish(lines, opts), nil
}

func (w Whitespace) trimRight(line string) string {
	trimmed := strings.TrimRight(line, " \t")
	if w.HardBreaks && trimmed != "" && strings.HasSuffix(line, "  ") &&
		strings.Trim(line[len(trimmed):], " ") == "" {
		return trimmed + "  "
	}
	return trimmed
}

// literals returns the byte spans of string-like nodes. Without a grammar nothing is protected.
func (w Whitespace) literals(source string) ([]span, error) {
	if w.Parser == nil || !w.Parser.Supports(w.Language) {
		return nil, nil
	}
	root, err := w.Parser.Parse(context.Background(), w.Language, []byte(source))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse source for formatting"), "language", string(w.Language))
	}

	var spans []span
	domain.Walk(root, func(n domain.Node) {
		if literalKinds[n.Kind()] && strings.Contains(source[n.StartByte():n.EndByte()], "\n") {
			spans = append(spans, span{start: n.StartByte(), end: n.EndByte()})
		}
	})
	return spans, nil
}

func reindent(line string, size int, useTabs bool) string {
	width, i := 0, 0
scan:
	for ; i < len(line); i++ {
		switch line[i] {
		case ' ':
			width++
		case '\t':
			width += size - width%size
		default:
			break scan
		}
	}
	if !useTabs {
		return strings.Repeat(" ", width) + line[i:]
	}
	return strings.Repeat("\t", width/size) + strings.Repeat(" ", width%size) + line[i:]
}
