package notebook

import (
	"time"

	"github.com/aretw0/introspection"
)

// State exposes internal state for observability.
type State struct {
	Location     string     `json:"location,omitempty"`
	Notes        int        `json:"notes"`
	Policy       string     `json:"policy"`
	BackendType  string     `json:"backend_type"`
	LastLoad     *time.Time `json:"last_load,omitempty"`
	LastSave     *time.Time `json:"last_save,omitempty"`
	LastWarnings int        `json:"last_warnings"`
}

// State implements introspection.Introspectable.
func (nb *Notebook) State() any {
	loc, _ := nb.locate()

	nb.mu.Lock()
	defer nb.mu.Unlock()

	backendType := "unknown"
	if comp, ok := nb.backend.(introspection.Component); ok {
		backendType = comp.ComponentType()
	}

	return State{
		Location:     loc,
		Notes:        len(nb.notes),
		Policy:       nb.policy.String(),
		BackendType:  backendType,
		LastLoad:     nb.lastLoad,
		LastSave:     nb.lastSave,
		LastWarnings: nb.lastWarnings,
	}
}

// ComponentType implements introspection.Component.
func (nb *Notebook) ComponentType() string {
	return "notebook"
}

var _ introspection.Introspectable = (*Notebook)(nil)
var _ introspection.Component = (*Notebook)(nil)
