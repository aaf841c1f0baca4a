package registry

import (
	"slices"
	"strings"

	"github.com/vinayprograms/serviceagents/errors"
)

// Catalog is the set of candidate agents known to an application.
type Catalog struct {
	entries map[string]Entry
}

// NewCatalog creates a catalog from entries. Candidate names must be
// non-empty and unique, and every entry needs a constructor.
func NewCatalog(entries ...Entry) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if err := c.Add(e); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add adds a candidate to the catalog.
func (c *Catalog) Add(e Entry) error {
	if e.Name == "" {
		return errors.InvalidArgument("agent name")
	}
	if e.provide == nil {
		return errors.InvalidArgument("constructor", errors.WithService(e.Name))
	}
	if _, exists := c.entries[e.Name]; exists {
		return errors.AmbiguousAgent(e.Name, []string{e.Name, e.Name},
			errors.WithMetadata("reason", "duplicate candidate name"))
	}
	if c.entries == nil {
		c.entries = make(map[string]Entry)
	}
	c.entries[e.Name] = e
	return nil
}

// Resolve returns the single candidate whose name starts with service.
func (c *Catalog) Resolve(service string) (Entry, error) {
	if service == "" {
		return Entry{}, errors.AgentNotFound(service)
	}

	var matches []string
	for name := range c.entries {
		if strings.HasPrefix(name, service) {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 0:
		return Entry{}, errors.AgentNotFound(service)
	case 1:
		return c.entries[matches[0]], nil
	default:
		slices.Sort(matches)
		return Entry{}, errors.AmbiguousAgent(service, matches)
	}
}

// Names returns the candidate names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of candidates.
func (c *Catalog) Len() int {
	return len(c.entries)
}
