package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"lamina/internal/form"
	"lamina/internal/gallery"
	"lamina/internal/logging"
	"lamina/internal/prompt"
)

// ImproveMIMEType is the media type the generated image is sent as when
// it is improved.
const ImproveMIMEType = "image/jpeg"

// ImageService is the remote image API.
type ImageService interface {
	GenerateFromText(ctx context.Context, prompt, aspectRatio string) ([]byte, error)
	EditWithDirective(ctx context.Context, image []byte, mimeType, directive string) ([]byte, error)
	GenerateImprovementDirective(ctx context.Context, fields form.Fields) (string, error)
}

// Orchestrator owns one session. Begin*, Finish*, Save and Delete mutate
// state and must be called from a single goroutine; Generate and Improve
// only talk to the service and may run anywhere.
type Orchestrator struct {
	svc   ImageService
	store *gallery.Store
	now   func() time.Time

	state State
	saved gallery.Collection
}

// New creates an orchestrator. store may be nil when nothing is persisted.
func New(svc ImageService, store *gallery.Store) *Orchestrator {
	return &Orchestrator{
		svc:   svc,
		store: store,
		now:   time.Now,
		saved: gallery.Collection{},
	}
}

// Load reads the saved collection from the store.
func (o *Orchestrator) Load(ctx context.Context) {
	if o.store == nil {
		return
	}
	o.saved = o.store.Load(ctx)
}

// State returns a snapshot of the session state.
func (o *Orchestrator) State() State {
	return o.state
}

// Saved returns the saved collection.
func (o *Orchestrator) Saved() gallery.Collection {
	return o.saved
}

func (o *Orchestrator) nextTicket() Ticket {
	o.state.ticket++
	return o.state.ticket
}

// =============================================================================
// GENERATE
// =============================================================================

// BeginGenerate starts a generation, clearing the previous results and error.
func (o *Orchestrator) BeginGenerate() (Ticket, error) {
	if o.state.Phase.Busy() {
		logging.WorkflowDebug("Generate rejected while %s", o.state.Phase)
		return 0, ErrBusy
	}
	o.state.Phase = PhaseGenerating
	o.state.Generated = nil
	o.state.Improved = nil
	o.state.Err = ""
	t := o.nextTicket()
	logging.Workflow("Generate started (ticket %d)", t)
	return t, nil
}

// Generate produces a new lamina. With a template the fields are overlaid
// onto it; otherwise the image is rendered from text alone.
func (o *Orchestrator) Generate(ctx context.Context, fields form.Fields, asset *form.TemplateAsset) (*Artifact, error) {
	if asset != nil {
		data, err := o.svc.EditWithDirective(ctx, asset.Data, asset.MIMEType, prompt.TemplateEdit(fields))
		if err != nil {
			return nil, err
		}
		return &Artifact{Kind: gallery.KindNormal, MIMEType: detect(data), Data: data}, nil
	}

	data, err := o.svc.GenerateFromText(ctx, prompt.Generation(fields), prompt.AspectRatio)
	if err != nil {
		return nil, err
	}
	return &Artifact{Kind: gallery.KindNormal, MIMEType: detect(data), Data: data}, nil
}

// FinishGenerate records the outcome of ticket. It reports false when the
// result is stale and was dropped.
func (o *Orchestrator) FinishGenerate(t Ticket, a *Artifact, err error) bool {
	if t != o.state.ticket || o.state.Phase != PhaseGenerating {
		logging.WorkflowDebug("Dropping stale generate result (ticket %d, current %d)", t, o.state.ticket)
		return false
	}
	if err != nil {
		o.fail(err)
		return true
	}
	o.state.Generated = a
	o.state.Phase = PhaseReady
	logging.Workflow("Generate finished (%d bytes)", len(a.Data))
	return true
}

// RunGenerate runs a whole generation synchronously.
func (o *Orchestrator) RunGenerate(ctx context.Context, fields form.Fields, asset *form.TemplateAsset) error {
	t, err := o.BeginGenerate()
	if err != nil {
		return err
	}
	a, err := o.Generate(ctx, fields, asset)
	o.FinishGenerate(t, a, err)
	return err
}

// =============================================================================
// IMPROVE
// =============================================================================

// BeginImprove starts an improvement of the generated image. Without one it
// returns ErrNoArtifact and leaves the state untouched.
func (o *Orchestrator) BeginImprove() (Ticket, *Artifact, error) {
	if o.state.Phase.Busy() {
		logging.WorkflowDebug("Improve rejected while %s", o.state.Phase)
		return 0, nil, ErrBusy
	}
	if o.state.Generated == nil {
		return 0, nil, ErrNoArtifact
	}
	o.state.Phase = PhaseImproving
	o.state.Improved = nil
	o.state.Err = ""
	t := o.nextTicket()
	logging.Workflow("Improve started (ticket %d)", t)
	return t, o.state.Generated, nil
}

// Improve asks for a creative directive and then applies it to source.
// The edit is never attempted when the directive call fails.
func (o *Orchestrator) Improve(ctx context.Context, fields form.Fields, source *Artifact) (*Artifact, error) {
	if source == nil {
		return nil, ErrNoArtifact
	}
	directive, err := o.svc.GenerateImprovementDirective(ctx, fields)
	if err != nil {
		return nil, err
	}
	logging.WorkflowDebug("Directive received (%d chars)", len(directive))

	data, err := o.svc.EditWithDirective(ctx, source.Data, ImproveMIMEType, directive)
	if err != nil {
		return nil, err
	}
	return &Artifact{Kind: gallery.KindImproved, MIMEType: detect(data), Data: data}, nil
}

// FinishImprove records the outcome of ticket. A failure keeps the
// generated image.
func (o *Orchestrator) FinishImprove(t Ticket, a *Artifact, err error) bool {
	if t != o.state.ticket || o.state.Phase != PhaseImproving {
		logging.WorkflowDebug("Dropping stale improve result (ticket %d, current %d)", t, o.state.ticket)
		return false
	}
	if err != nil {
		o.fail(err)
		return true
	}
	o.state.Improved = a
	o.state.Phase = PhaseReady
	logging.Workflow("Improve finished (%d bytes)", len(a.Data))
	return true
}

// RunImprove runs a whole improvement synchronously.
func (o *Orchestrator) RunImprove(ctx context.Context, fields form.Fields) error {
	t, source, err := o.BeginImprove()
	if err != nil {
		return err
	}
	a, err := o.Improve(ctx, fields, source)
	o.FinishImprove(t, a, err)
	return err
}

func (o *Orchestrator) fail(err error) {
	logging.Get(logging.CategoryWorkflow).Error("%s failed: %v", o.state.Phase, err)
	o.state.Phase = PhaseError
	o.state.Err = err.Error()
}

// =============================================================================
// SAVE / DELETE
// =============================================================================

// Save stores the current artifact of kind at the front of the gallery and
// persists the collection.
func (o *Orchestrator) Save(ctx context.Context, kind gallery.Kind) (gallery.SavedImage, error) {
	a := o.state.Artifact(kind)
	if a == nil {
		return gallery.SavedImage{}, ErrNoArtifact
	}

	img := o.saved.NewImage(kind, a.Data, o.now())
	next := o.saved.Prepend(img)
	if err := o.persist(ctx, next); err != nil {
		return gallery.SavedImage{}, err
	}
	logging.Workflow("Saved %s as %s", kind, img.ID)
	return img, nil
}

// Delete removes id from the gallery and persists the collection. It
// reports whether id existed.
func (o *Orchestrator) Delete(ctx context.Context, id string) (bool, error) {
	next, found := o.saved.Remove(id)
	if !found {
		return false, nil
	}
	if err := o.persist(ctx, next); err != nil {
		return false, err
	}
	logging.Workflow("Deleted %s", id)
	return true, nil
}

func (o *Orchestrator) persist(ctx context.Context, next gallery.Collection) error {
	if o.store != nil {
		if err := o.store.Save(ctx, next); err != nil {
			return fmt.Errorf("failed to persist gallery: %w", err)
		}
	}
	o.saved = next
	return nil
}

func detect(data []byte) string {
	return mimetype.Detect(data).String()
}
