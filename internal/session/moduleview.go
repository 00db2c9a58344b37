package session

import (
	"github.com/abhisek/learnpb/internal/catalog"
	"github.com/abhisek/learnpb/internal/guide"
)

// GuidePhase is the lifecycle of the guide modal.
type GuidePhase int

const (
	// GuideClosed means no module is selected and the modal is hidden.
	GuideClosed GuidePhase = iota
	// GuideLoading means a guide request is in flight for Selected.
	GuideLoading
	// GuideReady means Content holds a rendered guide.
	GuideReady
	// GuideFailed means the last request errored.
	GuideFailed
)

// ModuleView is the single writer for the learning modules screen. Opening
// a module always clears previous content first, so a reopened modal never
// flashes a stale guide.
type ModuleView struct {
	Selected *catalog.Module
	Content  string
	Err      error

	phase GuidePhase
	token Token
}

// NewModuleView creates a closed module view.
func NewModuleView() *ModuleView {
	return &ModuleView{}
}

// Phase returns the current modal phase.
func (v *ModuleView) Phase() GuidePhase { return v.phase }

// Select opens the modal for module, clears any previous guide, and issues
// a new token for the generation request.
func (v *ModuleView) Select(module catalog.Module) Token {
	v.Selected = &module
	v.Content = ""
	v.Err = nil
	v.phase = GuideLoading
	v.token++
	return v.token
}

// ApplyGuide installs a completed guide. Returns false and changes nothing
// if token is stale, including when the modal was closed mid-flight.
func (v *ModuleView) ApplyGuide(token Token, g *guide.Guide) bool {
	if token != v.token || v.phase != GuideLoading {
		return false
	}
	v.Content = g.Content
	v.Err = nil
	v.phase = GuideReady
	return true
}

// ApplyError records a failed guide request. Returns false and changes
// nothing if token is stale.
func (v *ModuleView) ApplyError(token Token, err error) bool {
	if token != v.token || v.phase != GuideLoading {
		return false
	}
	v.Err = err
	v.phase = GuideFailed
	return true
}

// Close hides the modal and drops its content. In-flight completions for
// the old token will be discarded.
func (v *ModuleView) Close() {
	v.Selected = nil
	v.Content = ""
	v.Err = nil
	v.phase = GuideClosed
}
