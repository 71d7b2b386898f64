// Package workflow drives the generate → improve → save pipeline. All
// session state lives in an explicit State value guarded by a single phase,
// so only one remote flow can be in flight at a time.
package workflow

import (
	"errors"

	"lamina/internal/gallery"
)

var (
	// ErrBusy rejects a Generate or Improve while another flow is running.
	ErrBusy = errors.New("a generation is already in progress")
	// ErrNoArtifact means there is no image of the requested kind yet.
	ErrNoArtifact = errors.New("no generated image available")
)

// Phase is the pipeline position of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseGenerating
	PhaseImproving
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseGenerating:
		return "generating"
	case PhaseImproving:
		return "improving"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// Busy reports whether a remote flow is in flight.
func (p Phase) Busy() bool {
	return p == PhaseGenerating || p == PhaseImproving
}

// Artifact is an image produced during the session. It is replaced by the
// next call and discarded unless saved.
type Artifact struct {
	Kind     gallery.Kind
	MIMEType string
	Data     []byte
}

// Ticket identifies one Begin/Finish pair. Finish calls carrying an older
// ticket are dropped.
type Ticket uint64

// State is the session state shown by the studio.
type State struct {
	Phase     Phase
	Generated *Artifact
	Improved  *Artifact
	// Err holds the message of the most recent failure. It is cleared by
	// the next attempt.
	Err string

	ticket Ticket
}

// Artifact returns the current image of kind, or nil.
func (s State) Artifact(kind gallery.Kind) *Artifact {
	switch kind {
	case gallery.KindNormal:
		return s.Generated
	case gallery.KindImproved:
		return s.Improved
	}
	return nil
}
