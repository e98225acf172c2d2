// Package classify decides whether a flow is elementary (an environmental
// exchange with nature) versus a product flow (an exchange between two
// technosphere processes).
package classify

import (
	"strings"

	"github.com/lcafoundry/lcicore/archive"
)

// Classifier reports whether a flow belongs to the natural environment,
// based on its compartment.
type Classifier interface {
	IsElementary(flow archive.Flow) bool
}

// Default classifies a flow as elementary when its compartment names one
// of the standard top-level environmental compartments.
type Default struct {
	compartments map[string]bool
}

// NewDefault returns a Classifier recognizing the conventional top-level
// elementary compartments: air, water, soil, and natural resources.
func NewDefault() *Default {
	return &Default{
		compartments: map[string]bool{
			"air":              true,
			"water":            true,
			"soil":             true,
			"natural resource": true,
			"resource":         true,
		},
	}
}

// IsElementary reports whether flow.Compartment names a recognized
// environmental compartment (case-insensitive, leading/trailing space
// trimmed).
func (d *Default) IsElementary(flow archive.Flow) bool {
	c := strings.ToLower(strings.TrimSpace(flow.Compartment))
	if c == "" {
		return false
	}
	return d.compartments[c]
}

var _ Classifier = (*Default)(nil)
