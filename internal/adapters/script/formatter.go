package script

import (
	"context"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/object"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/zerr"
)

// Formatter runs a Risor script that evaluates to the formatted text.
// The script sees the globals source, indent_size, use_tabs and final_newline.
type Formatter struct {
	name   string
	source string
}

var _ domain.Formatter = (*Formatter)(nil)

// Format implements domain.Formatter.
func (f *Formatter) Format(source string, opts domain.FormatOptions) (string, error) {
	result, err := risor.Eval(context.Background(), f.source,
		risor.WithGlobal("source", object.NewString(source)),
		risor.WithGlobal("indent_size", object.NewInt(int64(opts.IndentSize))),
		risor.WithGlobal("use_tabs", object.NewBool(opts.UseTabs)),
		risor.WithGlobal("final_newline", object.NewBool(opts.FinalNewline)),
	)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFormatFailed.Error()), "plugin", f.name)
	}
	s, ok := result.(*object.String)
	if !ok {
		return "", zerr.With(zerr.With(domain.ErrFormatFailed, "plugin", f.name), "reason", "script did not evaluate to a string")
	}
	return s.Value(), nil
}
