package studio

import (
	"errors"
	"fmt"

	"lamina/internal/logging"
	"lamina/internal/prompt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case generateDoneMsg:
		if m.orch == nil || !m.orch.FinishGenerate(msg.ticket, msg.artifact, msg.err) {
			return m, nil
		}
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		// Leave the inputs so the result actions are reachable at once.
		m.focusInput(-1)
		m.setStatus("Lámina generada", false)
		return m, nil

	case improveDoneMsg:
		if m.orch == nil || !m.orch.FinishImprove(msg.ticket, msg.artifact, msg.err) {
			return m, nil
		}
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.setStatus("Lámina mejorada con IA", false)
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Descargada: %s", msg.path), false)
		return m, nil

	case formReloadedMsg:
		var next tea.Cmd
		if m.watcher != nil {
			next = waitForFormReload(m.watcher.Updates())
		}
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("Form reload failed: %v", msg.Err), true)
			return m, next
		}
		m.fields = msg.Fields
		m.fields.ApplyTemplate(m.template)
		m.syncInputs()
		m.setStatus("Formulario recargado", false)
		logging.UI("Form reloaded from watcher")
		return m, next
	}

	if m.viewMode == FilePickerView {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	if msg.Width <= 0 || msg.Height <= 0 {
		return m
	}
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.help.Width = msg.Width

	m.preview.Width = max(msg.Width-4, 10)
	m.preview.Height = max(msg.Height-6, 3)

	m.filepicker.Height = max(msg.Height-8, 3)

	inputWidth := max(msg.Width-30, 10)
	for i := range m.inputs {
		m.inputs[i].Width = inputWidth
	}

	// Renderer is rebuilt for the new wrap width.
	m.renderer = nil
	return m
}

// renderPrompt renders the prompt the next generation would send.
func (m *Model) renderPrompt() string {
	var title, body string
	if m.template != nil {
		title = "Template edit prompt"
		body = prompt.TemplateEdit(m.fields)
	} else {
		title = "Generation prompt"
		body = prompt.Generation(m.fields)
	}
	md := fmt.Sprintf("# %s\n\n```text\n%s\n```\n", title, body)

	if m.renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(max(m.preview.Width-2, 20)),
		)
		if err != nil {
			return md
		}
		m.renderer = r
	}
	out, err := safeRender(m.renderer, md)
	if err != nil {
		return md
	}
	return out
}

// safeRender guards against renderer panics on unusual input.
func safeRender(r *glamour.TermRenderer, md string) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.New("markdown render panic")
		}
	}()
	return r.Render(md)
}
