package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/zerr"

	"go.trai.ch/polish/internal/adapters/logger"
)

func TestLogger_Verbose(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)

	l.Debug("rule failed", "rule", "require-alt")
	assert.Empty(t, buf.String())

	l.SetVerbose(true)
	l.Debug("rule failed", "rule", "require-alt")
	assert.Equal(t, "· rule failed rule=require-alt\n", buf.String())

	buf.Reset()
	l.SetVerbose(false)
	l.Debug("again")
	l.Info("done")
	assert.Equal(t, "done\n", buf.String())
}

func TestLogger_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)
	l.SetJSON(true)

	l.Error(errors.New("boom"))
	assert.Contains(t, buf.String(), `"msg":"operation failed"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestLogger_ErrorNil(t *testing.T) {
	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)
	l.Error(nil)
	assert.Empty(t, buf.String())
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard error",
			err:  errors.New("simple error"),
			want: "Error: simple error",
		},
		{
			name: "zerr wrapped chain",
			err:  zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer"),
			want: "Error: outer layer\n\n  Caused by:\n    → middle layer\n    → root cause",
		},
		{
			name: "multi-line message",
			err:  errors.New("first\nsecond"),
			want: "Error: first\n       second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatError(tt.err))
		})
	}
}
