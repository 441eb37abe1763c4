package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/polish/internal/ui/output"
	"go.trai.ch/polish/internal/ui/style"
)

// PrettyHandler writes one colored line per record: a level mark, the message and the
// attributes as key=value pairs. Group names qualify the keys of later attributes.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	// bound holds the pre-rendered attributes added through WithAttrs.
	bound string
	group string
}

// NewPrettyHandler returns a handler writing to w, or to stderr when w is nil.
// opts.Level is consulted per record, so a *slog.LevelVar may change afterwards.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{out: output.New(w), level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	mark, color := levelStyle(r.Level)

	var line strings.Builder
	line.WriteString(mark)
	line.WriteString(r.Message)
	line.WriteString(h.bound)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&line, h.group, a)
		return true
	})

	styled := h.out.String(line.String()).Foreground(termenv.RGBColor(string(color)))
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.bound)
	for _, a := range attrs {
		writeAttr(&b, h.group, a)
	}
	clone := *h
	clone.bound = b.String()
	return &clone
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = qualify(h.group, name)
	return &clone
}

// levelStyle picks the mark printed before the message and the line color.
func levelStyle(level slog.Level) (string, lipgloss.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross + " ", style.Red
	case level >= slog.LevelWarn:
		return style.Warning + " ", style.Yellow
	case level < slog.LevelInfo:
		return "· ", style.Iris
	default:
		return "", style.Slate
	}
}

// writeAttr appends " key=value", flattening group attributes into dotted keys.
func writeAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		prefix := group
		if a.Key != "" {
			prefix = qualify(group, a.Key)
		}
		for _, child := range a.Value.Group() {
			writeAttr(b, prefix, child)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(qualify(group, a.Key))
	b.WriteByte('=')
	b.WriteString(a.Value.String())
}

func qualify(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}
