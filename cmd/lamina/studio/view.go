package studio

import (
	"fmt"
	"strings"
	"time"

	"lamina/cmd/lamina/ui"
	"lamina/internal/form"
	"lamina/internal/workflow"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.viewMode {
	case FilePickerView:
		body = m.renderFilePicker()
	case PreviewView:
		body = m.preview.View()
	case GalleryView:
		body = m.renderGallery()
	default:
		body = m.renderGenerator()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.styles.RenderDivider(max(m.width-2, 0)),
		m.renderStatus(),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	gen := m.styles.Tab.Render("Generador")
	gal := m.styles.Tab.Render("Galería")
	if m.viewMode == GalleryView {
		gal = m.styles.TabActive.Render("Galería")
	} else {
		gen = m.styles.TabActive.Render("Generador")
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Bottom, gen, gal)
	return lipgloss.JoinVertical(lipgloss.Left, ui.Logo(m.styles), tabs, "")
}

func (m Model) renderGenerator() string {
	var sb strings.Builder

	section := 0
	group := ""
	for i, spec := range form.Specs {
		if spec.Section != section {
			section = spec.Section
			group = ""
			sb.WriteString("\n")
			sb.WriteString(m.styles.Section.Render(sectionTitle(section)))
			sb.WriteString("\n")
		}
		if spec.Group != group {
			group = spec.Group
			if group != "" {
				sb.WriteString(m.styles.Bold.Render("  "+group) + "\n")
			}
		}
		sb.WriteString(m.renderInput(i))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Section.Render(sectionTitle(8)))
	sb.WriteString("\n")
	if m.template != nil {
		sb.WriteString("  " + m.styles.Badge.Render("PLANTILLA"))
		sb.WriteString(m.styles.Info.Render(fmt.Sprintf(" %s (%s, %s)", m.template.Name, m.template.MIMEType, humanBytes(len(m.template.Data)))))
		sb.WriteString(m.styles.Muted.Render("  ctrl+r para quitar"))
	} else {
		sb.WriteString(m.styles.Muted.Render("  ctrl+t para elegir una imagen"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(m.renderResults())
	return sb.String()
}

func sectionTitle(n int) string {
	for _, s := range form.Sections() {
		if s.Number == n {
			return fmt.Sprintf("%d. %s", s.Number, s.Title)
		}
	}
	return ""
}

func (m Model) renderInput(i int) string {
	spec := form.Specs[i]
	if m.disabled(i) {
		label := m.styles.Label.Render("  " + spec.Label)
		return label + m.styles.Disabled.Render("(ignorado con plantilla)")
	}
	labelStyle := m.styles.Label
	if i == m.focus {
		labelStyle = m.styles.LabelFocused
	}
	return labelStyle.Render("  "+spec.Label) + m.inputs[i].View()
}

func (m Model) renderResults() string {
	st := m.state()
	var parts []string

	switch st.Phase {
	case workflow.PhaseGenerating:
		parts = append(parts, m.spinner.View()+" Generando lámina...")
	case workflow.PhaseImproving:
		parts = append(parts, m.spinner.View()+" Mejorando con IA...")
	}

	if st.Err != "" {
		parts = append(parts, m.styles.Error.Render(st.Err))
	}

	if a := st.Generated; a != nil {
		parts = append(parts, m.styles.Card.Render(fmt.Sprintf(
			"Lámina generada\n%s, %s\n[d] descargar  [s] guardar  [i] mejorar con IA",
			a.MIMEType, humanBytes(len(a.Data)))))
	}
	if a := st.Improved; a != nil {
		parts = append(parts, m.styles.Card.Render(fmt.Sprintf(
			"Lámina mejorada con IA\n%s, %s\n[D] descargar  [S] guardar",
			a.MIMEType, humanBytes(len(a.Data)))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderGallery() string {
	entries := m.galleryEntries()
	if len(entries) == 0 {
		return m.styles.Muted.Render("Aún no hay láminas guardadas.")
	}

	var sb strings.Builder
	section := ""
	for i, e := range entries {
		if e.section != section {
			section = e.section
			sb.WriteString("\n")
			sb.WriteString(m.styles.Section.Render(section))
			sb.WriteString("\n")
		}
		cursor := "  "
		style := m.styles.Body
		if i == m.galleryCursor {
			cursor = "> "
			style = m.styles.LabelFocused.UnsetWidth()
		}
		line := fmt.Sprintf("%s%s  %s  %s", cursor, e.image.ID,
			e.image.Time().Format(time.DateTime), humanBytes(len(e.image.ImageBase64)*3/4))
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderFilePicker() string {
	title := m.styles.Title.Render("Subir Plantilla de Lámina")
	return lipgloss.JoinVertical(lipgloss.Left, title, m.filepicker.View())
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.styles.Error.Render(m.status)
	}
	return m.styles.Success.Render(m.status)
}

func (m Model) renderFooter() string {
	var help string
	switch {
	case m.viewMode == GalleryView:
		help = m.help.ShortHelpView(m.keys.galleryHelp())
	case m.viewMode == GeneratorView && m.focus < 0:
		help = m.help.ShortHelpView(m.keys.resultHelp())
	default:
		help = m.help.View(m.keys)
	}
	return m.styles.Footer.Render(help)
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
