// Package studio provides the interactive TUI for lamina.
// This file contains type definitions for the studio model.
package studio

import (
	"context"
	"time"

	"lamina/cmd/lamina/ui"
	"lamina/internal/form"
	"lamina/internal/gallery"
	"lamina/internal/workflow"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// ViewMode selects the screen being shown.
type ViewMode int

const (
	GeneratorView ViewMode = iota
	GalleryView
	FilePickerView
	PreviewView
)

func (v ViewMode) String() string {
	switch v {
	case GeneratorView:
		return "generator"
	case GalleryView:
		return "gallery"
	case FilePickerView:
		return "filepicker"
	case PreviewView:
		return "preview"
	}
	return "unknown"
}

// SaveAcknowledgment is shown after a successful save.
const SaveAcknowledgment = "¡Lámina guardada!"

// DeleteConfirmation is asked before a saved lámina is removed.
const DeleteConfirmation = "¿Estás seguro de que quieres eliminar esta lámina? (y/n)"

// Gallery section titles.
const (
	NormalSectionTitle   = "Láminas Normales"
	ImprovedSectionTitle = "Láminas Mejoradas con IA"
)

// Options configures a new studio Model.
type Options struct {
	Orchestrator *workflow.Orchestrator
	Fields       form.Fields
	Styles       ui.Styles

	// Timeout bounds each remote flow. Zero means no limit.
	Timeout time.Duration

	OutputDir   string
	GeneratedAs string
	ImprovedAs  string
	Resize      bool

	// Watcher, when set, feeds form file reloads into the model.
	Watcher *FormWatcher
	// StartDir is where the template file picker opens.
	StartDir string
}

// Model is the studio state.
type Model struct {
	ctx    context.Context
	styles ui.Styles
	keys   keyMap
	help   help.Model

	width    int
	height   int
	ready    bool
	viewMode ViewMode

	// Form
	fields   form.Fields
	inputs   []textinput.Model
	focus    int // index into inputs, -1 when no input is focused
	template *form.TemplateAsset

	// Workflow
	orch    *workflow.Orchestrator
	timeout time.Duration

	// Output
	outputDir   string
	generatedAs string
	improvedAs  string
	resize      bool

	// Components
	spinner    spinner.Model
	filepicker filepicker.Model
	preview    viewport.Model
	renderer   *glamour.TermRenderer
	watcher    *FormWatcher
	startDir   string

	// Status line
	status    string
	statusErr bool

	// Gallery
	galleryCursor int
	pendingDelete string
}

// =============================================================================
// MESSAGES
// =============================================================================

type generateDoneMsg struct {
	ticket   workflow.Ticket
	artifact *workflow.Artifact
	err      error
}

type improveDoneMsg struct {
	ticket   workflow.Ticket
	artifact *workflow.Artifact
	err      error
}

type exportDoneMsg struct {
	path string
	err  error
}

type formReloadedMsg FormReload

// galleryEntry is one row of the gallery view.
type galleryEntry struct {
	image   gallery.SavedImage
	section string
}
