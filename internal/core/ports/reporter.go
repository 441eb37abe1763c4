package ports

import (
	"io"

	"go.trai.ch/polish/internal/core/domain"
)

// Reporter renders lint results.
type Reporter interface {
	// Name is the value accepted by the --reporter flag.
	Name() string
	// Report writes results to w.
	Report(w io.Writer, results []domain.LintResult) error
}
