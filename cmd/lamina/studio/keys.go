package studio

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit           key.Binding
	Next           key.Binding
	Prev           key.Binding
	Blur           key.Binding
	Generate       key.Binding
	Template       key.Binding
	RemoveTemplate key.Binding
	Preview        key.Binding
	Gallery        key.Binding

	// Result actions, active when no input is focused.
	Download         key.Binding
	Save             key.Binding
	Improve          key.Binding
	DownloadImproved key.Binding
	SaveImproved     key.Binding

	// Gallery
	Up      key.Binding
	Down    key.Binding
	Delete  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:           key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Next:           key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:           key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Blur:           key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "actions")),
		Generate:       key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "generate")),
		Template:       key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "template")),
		RemoveTemplate: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "remove template")),
		Preview:        key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prompt")),
		Gallery:        key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "gallery")),

		Download:         key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download")),
		Save:             key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Improve:          key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "improve with AI")),
		DownloadImproved: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "download improved")),
		SaveImproved:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "save improved")),

		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Template, k.Preview, k.Gallery, k.Blur, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Blur, k.Generate},
		{k.Template, k.RemoveTemplate, k.Preview, k.Gallery},
		{k.Download, k.Save, k.Improve, k.DownloadImproved, k.SaveImproved},
		{k.Up, k.Down, k.Delete, k.Quit},
	}
}

func (k keyMap) resultHelp() []key.Binding {
	return []key.Binding{k.Download, k.Save, k.Improve, k.DownloadImproved, k.SaveImproved, k.Next}
}

func (k keyMap) galleryHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Download, k.Delete, k.Gallery, k.Quit}
}
