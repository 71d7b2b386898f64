package studio

import (
	"errors"
	"fmt"

	"lamina/internal/form"
	"lamina/internal/gallery"
	"lamina/internal/logging"
	"lamina/internal/workflow"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/gabriel-vasile/mimetype"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg routes keyboard input by view mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.Shutdown()
		return m, tea.Quit
	}

	switch m.viewMode {
	case FilePickerView:
		return m.handleFilePickerKey(msg)
	case PreviewView:
		return m.handlePreviewKey(msg)
	case GalleryView:
		return m.handleGalleryKey(msg)
	}
	return m.handleGeneratorKey(msg)
}

func (m Model) handleGeneratorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Generate):
		return m.startGenerate()

	case key.Matches(msg, m.keys.Template):
		m.viewMode = FilePickerView
		return m, m.filepicker.Init()

	case key.Matches(msg, m.keys.RemoveTemplate):
		if m.template != nil {
			m.template = nil
			m.setStatus("Plantilla eliminada", false)
		}
		return m, nil

	case key.Matches(msg, m.keys.Preview):
		m.preview.SetContent(m.renderPrompt())
		m.preview.GotoTop()
		m.viewMode = PreviewView
		return m, nil

	case key.Matches(msg, m.keys.Gallery):
		m.viewMode = GalleryView
		m.clampCursor()
		return m, nil

	case msg.Type == tea.KeyTab || msg.Type == tea.KeyDown:
		m.moveFocus(1)
		return m, nil

	case msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp:
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.Blur):
		m.focusInput(-1)
		return m, nil
	}

	// With an input focused every other key is text.
	if m.focus >= 0 {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		m.fields.Set(form.Specs[m.focus].Key, m.inputs[m.focus].Value())
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Download):
		return m.download(gallery.KindNormal)
	case key.Matches(msg, m.keys.DownloadImproved):
		return m.download(gallery.KindImproved)
	case key.Matches(msg, m.keys.Save):
		return m.save(gallery.KindNormal)
	case key.Matches(msg, m.keys.SaveImproved):
		return m.save(gallery.KindImproved)
	case key.Matches(msg, m.keys.Improve):
		return m.startImprove()
	}
	return m, nil
}

func (m Model) startGenerate() (tea.Model, tea.Cmd) {
	if m.orch == nil {
		return m, nil
	}
	ticket, err := m.orch.BeginGenerate()
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.setStatus("", false)
	logging.UI("Generate requested (template=%v)", m.template != nil)
	return m, tea.Batch(
		m.spinner.Tick,
		generateCmd(m.ctx, m.timeout, m.orch, ticket, m.fields, m.template),
	)
}

func (m Model) startImprove() (tea.Model, tea.Cmd) {
	if m.orch == nil {
		return m, nil
	}
	ticket, source, err := m.orch.BeginImprove()
	if errors.Is(err, workflow.ErrNoArtifact) {
		return m, nil
	}
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.setStatus("", false)
	logging.UI("Improve requested")
	return m, tea.Batch(
		m.spinner.Tick,
		improveCmd(m.ctx, m.timeout, m.orch, ticket, m.fields, source),
	)
}

func (m Model) download(kind gallery.Kind) (tea.Model, tea.Cmd) {
	a := m.state().Artifact(kind)
	if a == nil {
		return m, nil
	}
	name := m.generatedAs
	if kind == gallery.KindImproved {
		name = m.improvedAs
	}
	return m, exportCmd(a.Data, m.outputDir, name, m.resize)
}

func (m Model) save(kind gallery.Kind) (tea.Model, tea.Cmd) {
	if m.orch == nil || m.state().Artifact(kind) == nil {
		return m, nil
	}
	if _, err := m.orch.Save(m.ctx, kind); err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.setStatus(SaveAcknowledgment, false)
	return m, nil
}

func (m Model) handleFilePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.viewMode = GeneratorView
		return m, nil
	}

	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)

	if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
		m.viewMode = GeneratorView
		m.resetFilePicker()
		asset, err := form.LoadTemplate(path)
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, cmd
		}
		m.setTemplate(asset)
		m.setStatus(fmt.Sprintf("Plantilla: %s", asset.Name), false)
		logging.UI("Template selected: %s (%s)", asset.Name, asset.MIMEType)
		return m, cmd
	}

	if didSelect, path := m.filepicker.DidSelectDisabledFile(msg); didSelect {
		m.setStatus(fmt.Sprintf("%s is not an image", path), true)
		return m, cmd
	}

	return m, cmd
}

func (m *Model) resetFilePicker() {
	fp := filepicker.New()
	fp.AllowedTypes = m.filepicker.AllowedTypes
	fp.CurrentDirectory = m.startDir
	fp.Height = m.filepicker.Height
	m.filepicker = fp
}

func (m Model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc || key.Matches(msg, m.keys.Preview) {
		m.viewMode = GeneratorView
		return m, nil
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m Model) handleGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pendingDelete != "" {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			id := m.pendingDelete
			m.pendingDelete = ""
			if _, err := m.orch.Delete(m.ctx, id); err != nil {
				m.setStatus(err.Error(), true)
				return m, nil
			}
			m.clampCursor()
			m.setStatus(fmt.Sprintf("Eliminada: %s", id), false)
		case key.Matches(msg, m.keys.Cancel):
			m.pendingDelete = ""
			m.setStatus("", false)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Gallery) || msg.Type == tea.KeyEsc:
		m.viewMode = GeneratorView
	case key.Matches(msg, m.keys.Up):
		if m.galleryCursor > 0 {
			m.galleryCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.galleryCursor < len(m.galleryEntries())-1 {
			m.galleryCursor++
		}
	case key.Matches(msg, m.keys.Delete):
		if img, ok := m.selectedImage(); ok {
			m.pendingDelete = img.ID
			m.setStatus(DeleteConfirmation, false)
		}
	case key.Matches(msg, m.keys.Download):
		img, ok := m.selectedImage()
		if !ok {
			return m, nil
		}
		data, err := img.Bytes()
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		return m, exportCmd(data, m.outputDir, downloadName(img.ID, data, m.resize), m.resize)
	}
	return m, nil
}

// downloadName names a gallery export after its detected format. The canvas
// resize always re-encodes as JPEG.
func downloadName(id string, data []byte, resize bool) string {
	ext := mimetype.Detect(data).Extension()
	if resize || ext == "" {
		ext = ".jpg"
	}
	return id + ext
}
