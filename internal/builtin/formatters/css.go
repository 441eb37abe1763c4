package formatters

import (
	"strings"

	"go.trai.ch/polish/internal/core/domain"
)

// CSS lays out stylesheets structurally: one declaration per line written as "name: value;",
// nested blocks indented and a blank line between top-level items that contain a block.
type CSS struct{}

type cssTokenKind int

const (
	cssText cssTokenKind = iota
	cssComment
	cssOpen
	cssClose
	cssSemicolon
)

type cssToken struct {
	kind cssTokenKind
	text string
}

// Format implements domain.Formatter.
func (CSS) Format(source string, opts domain.FormatOptions) (string, error) {
	var lines []string
	depth := 0
	pending := ""

	const (
		topNone = iota
		topStatement
		topComment
		topBlock
	)
	lastTop := topNone

	emit := func(line string) {
		lines = append(lines, indent(depth, opts)+line)
	}
	separate := func(block bool) {
		if depth != 0 || lastTop == topNone || lastTop == topComment {
			return
		}
		if block || lastTop == topBlock {
			lines = append(lines, "")
		}
	}
	flush := func() {
		if pending == "" {
			return
		}
		separate(false)
		emit(declaration(pending, depth) + ";")
		if depth == 0 {
			lastTop = topStatement
		}
		pending = ""
	}

	for _, tok := range tokenizeCSS(source) {
		switch tok.kind {
		case cssText:
			pending = joinText(pending, tok.text)
		case cssComment:
			separate(false)
			emit(tok.text)
			if depth == 0 {
				lastTop = topComment
			}
		case cssOpen:
			separate(true)
			if pending == "" {
				emit("{")
			} else {
				emit(pending + " {")
			}
			pending = ""
			depth++
		case cssSemicolon:
			flush()
		case cssClose:
			flush()
			if depth > 0 {
				depth--
			}
			emit("}")
			if depth == 0 {
				lastTop = topBlock
			}
		}
	}
	flush()

	return finish(lines, opts), nil
}

// declaration normalises "name : value" inside blocks to "name: value".
func declaration(text string, depth int) string {
	if depth == 0 {
		return text
	}
	name, value, ok := strings.Cut(text, ":")
	if !ok {
		return text
	}
	return strings.TrimSpace(name) + ": " + strings.TrimSpace(value)
}

func joinText(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

// tokenizeCSS splits source into structural tokens. Whitespace runs inside text collapse to a
// single space; strings and comments are kept verbatim. Braces and semicolons inside
// parentheses, as in url(data:...;base64,...), are plain text.
func tokenizeCSS(source string) []cssToken {
	var tokens []cssToken
	var text strings.Builder

	flushText := func() {
		if t := strings.TrimSpace(text.String()); t != "" {
			tokens = append(tokens, cssToken{kind: cssText, text: t})
		}
		text.Reset()
	}

	space, parens := false, 0
	for i := 0; i < len(source); i++ {
		c := source[i]
		switch {
		case c == '/' && i+1 < len(source) && source[i+1] == '*':
			flushText()
			end := strings.Index(source[i+2:], "*/")
			if end < 0 {
				tokens = append(tokens, cssToken{kind: cssComment, text: strings.TrimSpace(source[i:])})
				return tokens
			}
			tokens = append(tokens, cssToken{kind: cssComment, text: source[i : i+2+end+2]})
			i += end + 3
			space = false
		case c == '"' || c == '\'':
			j := i + 1
			for j < len(source) && source[j] != c {
				if source[j] == '\\' {
					j++
				}
				j++
			}
			j = min(j+1, len(source))
			if space && text.Len() > 0 {
				text.WriteByte(' ')
			}
			space = false
			text.WriteString(source[i:j])
			i = j - 1
		case parens == 0 && (c == '{' || c == '}' || c == ';'):
			flushText()
			space = false
			tokens = append(tokens, cssToken{kind: delimiter(c)})
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			space = true
		default:
			switch {
			case c == '(':
				parens++
			case c == ')' && parens > 0:
				parens--
			}
			if space && text.Len() > 0 {
				text.WriteByte(' ')
			}
			space = false
			text.WriteByte(c)
		}
	}
	flushText()
	return tokens
}

func delimiter(c byte) cssTokenKind {
	switch c {
	case '{':
		return cssOpen
	case '}':
		return cssClose
	default:
		return cssSemicolon
	}
}
