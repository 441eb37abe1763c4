// Package processors contains the processors shipped with polish.
package processors

import (
	"strconv"
	"strings"
	"sync"

	"go.trai.ch/polish/internal/core/domain"
)

// fenceLanguages maps fence info strings to the extension of the fragment's virtual filename.
var fenceLanguages = map[string]string{
	"css":        ".css",
	"html":       ".html",
	"js":         ".js",
	"javascript": ".js",
	"jsx":        ".jsx",
	"ts":         ".ts",
	"typescript": ".ts",
	"yaml":       ".yaml",
	"yml":        ".yaml",
}

type fragmentOrigin struct {
	lineOffset int
	indent     int
}

// Markdown lints fenced code blocks of Markdown documents.
// Diagnostics are mapped back to document lines; fixes are not applied.
type Markdown struct {
	mu      sync.Mutex
	origins map[string][]fragmentOrigin
}

var _ domain.Processor = (*Markdown)(nil)

// NewMarkdown creates a Markdown processor.
func NewMarkdown() *Markdown {
	return &Markdown{origins: map[string][]fragmentOrigin{}}
}

// Extensions lists the file extensions the processor is registered for.
func (m *Markdown) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Preprocess extracts every fenced block whose info string names a supported language.
func (m *Markdown) Preprocess(text, filename string) ([]domain.Fragment, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var fragments []domain.Fragment
	var origins []fragmentOrigin

	for i := 0; i < len(lines); i++ {
		indent, fence, info, ok := openFence(lines[i])
		if !ok {
			continue
		}

		var body []string
		j := i + 1
		for ; j < len(lines); j++ {
			if closesFence(lines[j], fence) {
				break
			}
			body = append(body, stripIndent(lines[j], indent))
		}

		if ext, ok := fenceLanguages[info]; ok {
			fragments = append(fragments, domain.Fragment{
				Text:     strings.Join(body, "\n") + "\n",
				Filename: filename + "/" + strconv.Itoa(len(fragments)) + ext,
			})
			origins = append(origins, fragmentOrigin{lineOffset: i + 1, indent: indent})
		}
		i = j
	}

	m.mu.Lock()
	m.origins[filename] = origins
	m.mu.Unlock()

	return fragments, nil
}

// Postprocess shifts fragment diagnostics to document positions and concatenates them in fragment order.
func (m *Markdown) Postprocess(diagnostics [][]domain.Diagnostic, filename string) []domain.Diagnostic {
	m.mu.Lock()
	origins := m.origins[filename]
	delete(m.origins, filename)
	m.mu.Unlock()

	out := []domain.Diagnostic{}
	for i, diags := range diagnostics {
		if i >= len(origins) {
			break
		}
		o := origins[i]
		for _, d := range diags {
			d.Location.Start = shift(d.Location.Start, o)
			if d.Location.End != nil {
				end := shift(*d.Location.End, o)
				d.Location.End = &end
			}
			d.Fix = nil
			d.Suggestions = nil
			out = append(out, d)
		}
	}
	return out
}

// SupportsAutofix reports false: fragment byte offsets do not map onto the document.
func (m *Markdown) SupportsAutofix() bool {
	return false
}

func shift(p domain.Position, o fragmentOrigin) domain.Position {
	return domain.Position{Line: p.Line + o.lineOffset, Column: p.Column + o.indent}
}

// openFence recognises ``` or ~~~ fences indented by at most three spaces.
func openFence(line string) (indent int, fence, info string, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	indent = len(line) - len(trimmed)
	if indent > 3 {
		return 0, "", "", false
	}
	for _, marker := range []byte{'`', '~'} {
		n := 0
		for n < len(trimmed) && trimmed[n] == marker {
			n++
		}
		if n >= 3 {
			info = strings.ToLower(strings.TrimSpace(trimmed[n:]))
			if f := strings.Fields(info); len(f) > 0 {
				info = f[0]
			}
			return indent, trimmed[:n], info, true
		}
	}
	return 0, "", "", false
}

func closesFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, fence) && strings.Trim(trimmed, fence[:1]) == ""
}

func stripIndent(line string, indent int) string {
	for range indent {
		if !strings.HasPrefix(line, " ") {
			break
		}
		line = line[1:]
	}
	return line
}
