package studio

import (
	"context"
	"os"

	"lamina/internal/form"
	"lamina/internal/gallery"
	"lamina/internal/logging"
	"lamina/internal/workflow"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// New creates the studio model. ctx bounds every remote call it issues.
func New(ctx context.Context, opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Styles.Spinner

	fp := filepicker.New()
	fp.AllowedTypes = []string{".png", ".jpg", ".jpeg", ".webp", ".gif"}
	fp.CurrentDirectory = opts.StartDir
	if fp.CurrentDirectory == "" {
		if wd, err := os.Getwd(); err == nil {
			fp.CurrentDirectory = wd
		}
	}

	m := Model{
		ctx:         ctx,
		styles:      opts.Styles,
		keys:        defaultKeyMap(),
		help:        help.New(),
		viewMode:    GeneratorView,
		fields:      opts.Fields,
		orch:        opts.Orchestrator,
		timeout:     opts.Timeout,
		outputDir:   opts.OutputDir,
		generatedAs: opts.GeneratedAs,
		improvedAs:  opts.ImprovedAs,
		resize:      opts.Resize,
		spinner:     sp,
		filepicker:  fp,
		preview:     viewport.New(80, 20),
		watcher:     opts.Watcher,
		startDir:    fp.CurrentDirectory,
		width:       100,
		height:      40,
	}
	if m.generatedAs == "" {
		m.generatedAs = "lamina-generada.jpg"
	}
	if m.improvedAs == "" {
		m.improvedAs = "lamina-mejorada-ia.jpg"
	}
	m.inputs = m.buildInputs()
	m.focus = 0
	m.focusInput(0)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.watcher != nil {
		cmds = append(cmds, waitForFormReload(m.watcher.Updates()))
	}
	return tea.Batch(cmds...)
}

// Fields returns the current form values.
func (m Model) Fields() form.Fields {
	return m.fields
}

// Template returns the selected template, if any.
func (m Model) Template() *form.TemplateAsset {
	return m.template
}

// ViewMode returns the active screen.
func (m Model) ViewMode() ViewMode {
	return m.viewMode
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// Shutdown releases resources held by the model.
func (m Model) Shutdown() {
	if m.watcher != nil {
		m.watcher.Stop()
	}
	logging.UI("Studio shut down")
}

// =============================================================================
// FORM INPUTS
// =============================================================================

func (m Model) buildInputs() []textinput.Model {
	inputs := make([]textinput.Model, len(form.Specs))
	for i, spec := range form.Specs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = spec.Label
		ti.CharLimit = 0
		ti.Width = 48
		ti.SetValue(m.fields.Get(spec.Key))
		inputs[i] = ti
	}
	return inputs
}

// syncInputs copies m.fields into the inputs, keeping focus.
func (m *Model) syncInputs() {
	for i, spec := range form.Specs {
		m.inputs[i].SetValue(m.fields.Get(spec.Key))
	}
}

// disabled reports whether input i is locked by the template.
func (m Model) disabled(i int) bool {
	return m.template != nil && form.Specs[i].Visual
}

func (m *Model) focusInput(i int) {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focus = i
	if i >= 0 && i < len(m.inputs) {
		m.inputs[i].Focus()
	}
}

// moveFocus advances focus by delta, skipping disabled inputs.
func (m *Model) moveFocus(delta int) {
	n := len(m.inputs)
	if n == 0 {
		return
	}
	i := m.focus
	if i < 0 {
		i = 0
		if delta < 0 {
			i = n - 1
		}
		if !m.disabled(i) {
			m.focusInput(i)
			return
		}
	}
	for step := 0; step < n; step++ {
		i = ((i+delta)%n + n) % n
		if !m.disabled(i) {
			m.focusInput(i)
			return
		}
	}
}

func (m *Model) setTemplate(asset *form.TemplateAsset) {
	m.template = asset
	m.fields.ApplyTemplate(asset)
	m.syncInputs()
	if m.focus >= 0 && m.disabled(m.focus) {
		m.moveFocus(1)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// =============================================================================
// GALLERY
// =============================================================================

// galleryEntries lists saved images in display order: normal first, then
// improved, each newest first.
func (m Model) galleryEntries() []galleryEntry {
	if m.orch == nil {
		return nil
	}
	normal, improved := m.orch.Saved().Partition()
	entries := make([]galleryEntry, 0, len(normal)+len(improved))
	for _, img := range normal {
		entries = append(entries, galleryEntry{image: img, section: NormalSectionTitle})
	}
	for _, img := range improved {
		entries = append(entries, galleryEntry{image: img, section: ImprovedSectionTitle})
	}
	return entries
}

func (m Model) selectedImage() (gallery.SavedImage, bool) {
	entries := m.galleryEntries()
	if m.galleryCursor < 0 || m.galleryCursor >= len(entries) {
		return gallery.SavedImage{}, false
	}
	return entries[m.galleryCursor].image, true
}

func (m *Model) clampCursor() {
	n := len(m.galleryEntries())
	if m.galleryCursor >= n {
		m.galleryCursor = n - 1
	}
	if m.galleryCursor < 0 {
		m.galleryCursor = 0
	}
}

func (m Model) state() workflow.State {
	if m.orch == nil {
		return workflow.State{}
	}
	return m.orch.State()
}
