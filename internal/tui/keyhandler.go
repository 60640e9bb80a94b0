package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/vidsrch/internal/config"
)

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Left      key.Binding
	Right     key.Binding
	Flip      key.Binding
	Select    key.Binding
	Open      key.Binding
	OpenThumb key.Binding
	Thumbs    key.Binding
	Back      key.Binding
	Quit      key.Binding
}

func newKeyMap(modifier string) keyMap {
	mod := modifier + "+"
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "filter")),
		Right:     key.NewBinding(key.WithKeys("right", "l")),
		Flip:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Open:      key.NewBinding(key.WithKeys(mod+"o"), key.WithHelp(mod+"o", "play")),
		OpenThumb: key.NewBinding(key.WithKeys(mod+"p"), key.WithHelp(mod+"p", "thumbnail")),
		Thumbs:    key.NewBinding(key.WithKeys(mod+"t"), key.WithHelp(mod+"t", "thumb mode")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// viewKeys is the help.KeyMap for one view.
type viewKeys []key.Binding

func (v viewKeys) ShortHelp() []key.Binding  { return v }
func (v viewKeys) FullHelp() [][]key.Binding { return [][]key.Binding{v} }

func (k keyMap) forView(view View) help.KeyMap {
	if view == ViewDetail {
		return viewKeys{k.Open, k.OpenThumb, k.Back, k.Quit}
	}
	return viewKeys{k.Next, k.Flip, k.Select, k.Open, k.OpenThumb, k.Thumbs, k.Back, k.Quit}
}

type KeyHandler struct {
	app  *App
	keys keyMap
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	return &KeyHandler{app: app, keys: newKeyMap(cfg.Keys.Modifier)}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	if key.Matches(msg, kh.keys.Quit) {
		return a.quit()
	}

	if a.view == ViewDetail {
		return kh.handleDetailKeys(msg)
	}

	switch {
	case key.Matches(msg, kh.keys.Back):
		if a.focus != focusInput {
			kh.setFocus(focusInput, 0)
			return a, nil
		}
		return a.quit()
	case key.Matches(msg, kh.keys.Next):
		kh.cycleFocus(1)
		return a, nil
	case key.Matches(msg, kh.keys.Prev):
		kh.cycleFocus(-1)
		return a, nil
	case key.Matches(msg, kh.keys.Thumbs):
		return a, a.toggleThumbnailMode()
	case key.Matches(msg, kh.keys.Open):
		if v, ok := a.results.selected(); ok {
			return a, a.openVideo(v)
		}
		a.setNotice(MsgNothingSelected, StatusInfo)
		return a, nil
	case key.Matches(msg, kh.keys.OpenThumb):
		if v, ok := a.results.selected(); ok {
			return a, a.openThumbnail(v)
		}
		a.setNotice(MsgNothingSelected, StatusInfo)
		return a, nil
	}

	switch a.focus {
	case focusToggles:
		return kh.handleToggleKeys(msg)
	case focusResults:
		return kh.handleResultKeys(msg)
	default:
		return kh.handleInputKeys(msg)
	}
}

func (kh *KeyHandler) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	if msg.Type == tea.KeyEnter {
		return a, a.flushSearch()
	}
	if msg.Type == tea.KeyDown && len(a.list.Items()) > 0 {
		kh.setFocus(focusResults, 0)
		return a, nil
	}

	prev := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.input.Value() != prev {
		return a, tea.Batch(cmd, a.scheduleSearch())
	}
	return a, cmd
}

func (kh *KeyHandler) handleToggleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	switch {
	case key.Matches(msg, kh.keys.Left):
		kh.setFocus(focusToggles, (a.toggleIndex+len(a.toggles)-1)%len(a.toggles))
	case key.Matches(msg, kh.keys.Right):
		kh.setFocus(focusToggles, (a.toggleIndex+1)%len(a.toggles))
	case key.Matches(msg, kh.keys.Flip):
		t := a.toggles[a.toggleIndex]
		if t.flip() {
			return a, a.emit(t.source)
		}
	}
	return a, nil
}

func (kh *KeyHandler) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	if key.Matches(msg, kh.keys.Select) {
		v, ok := a.results.selected()
		if !ok {
			return a, nil
		}
		a.current = &v
		a.view = ViewDetail
		a.rendering = true
		return a, a.renderDetail(v)
	}
	if msg.Type == tea.KeyUp && a.list.Index() == 0 {
		kh.setFocus(focusInput, 0)
		return a, nil
	}

	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

func (kh *KeyHandler) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	switch {
	case key.Matches(msg, kh.keys.Back):
		a.view = ViewSearch
		a.current = nil
		a.rendering = false
		return a, nil
	case key.Matches(msg, kh.keys.Open):
		if a.current != nil {
			return a, a.openVideo(*a.current)
		}
		return a, nil
	case key.Matches(msg, kh.keys.OpenThumb):
		if a.current != nil {
			return a, a.openThumbnail(*a.current)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

// cycleFocus walks input, each toggle, then the result list.
func (kh *KeyHandler) cycleFocus(step int) {
	a := kh.app
	stops := len(a.toggles) + 2
	pos := 0
	switch a.focus {
	case focusToggles:
		pos = 1 + a.toggleIndex
	case focusResults:
		pos = stops - 1
	}
	pos = (pos + step + stops) % stops

	switch {
	case pos == 0:
		kh.setFocus(focusInput, 0)
	case pos == stops-1:
		kh.setFocus(focusResults, 0)
	default:
		kh.setFocus(focusToggles, pos-1)
	}
}

func (kh *KeyHandler) setFocus(area focusArea, toggleIndex int) {
	a := kh.app
	a.focus = area
	a.toggleIndex = toggleIndex
	if area == focusInput {
		a.input.Focus()
	} else {
		a.input.Blur()
	}
}
