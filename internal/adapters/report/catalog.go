package report

import (
	"slices"

	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
	"go.trai.ch/zerr"
)

// Catalog resolves reporters by name.
type Catalog struct {
	reporters map[string]ports.Reporter
}

// NewCatalog returns a catalog holding the given reporters.
func NewCatalog(reporters ...ports.Reporter) *Catalog {
	c := &Catalog{reporters: make(map[string]ports.Reporter, len(reporters))}
	for _, r := range reporters {
		c.reporters[r.Name()] = r
	}
	return c
}

// Get returns the reporter called name.
func (c *Catalog) Get(name string) (ports.Reporter, error) {
	r, ok := c.reporters[name]
	if !ok {
		return nil, zerr.With(zerr.With(domain.ErrUnknownReporter, "reporter", name), "available", c.Names())
	}
	return r, nil
}

// Names lists the reporter names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.reporters))
	for name := range c.reporters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
