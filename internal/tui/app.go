package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/vidsrch/internal/api"
	"github.com/pders01/vidsrch/internal/config"
	"github.com/pders01/vidsrch/internal/debuglog"
	"github.com/pders01/vidsrch/internal/search"
	"github.com/pders01/vidsrch/internal/storage"
)

// SettingsStore is the persistent settings the app reads and flips.
type SettingsStore interface {
	Bool(key string) bool
	Toggle(key string) (bool, error)
}

// Opener hands URLs to external players.
type Opener interface {
	Open(url string) error
	OpenImage(url string) error
}

// searchChrome is the number of lines the search view uses around the list.
const searchChrome = 12

type App struct {
	config     *config.Config
	client     search.Client
	settings   SettingsStore
	launcher   Opener
	controller *search.Controller
	target     *search.EventTarget
	keyHandler *KeyHandler
	log        *debuglog.FieldLogger

	ctx    context.Context
	cancel context.CancelFunc

	input     textinput.Model
	toggles   []*toggle
	list      list.Model
	results   *resultsList
	status    *statusLine
	searching *searchIndicator
	toasts    *toastQueue
	spinner   spinner.Model
	viewport  viewport.Model
	help      help.Model

	view        View
	focus       focusArea
	toggleIndex int
	notice      notice
	current     *api.Video
	rendering   bool

	debounce  time.Duration
	searchSeq int

	quitting        bool
	width           int
	height          int
	err             error
	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

func NewApp(cfg *config.Config, client search.Client, settings SettingsStore, launcher Opener) *App {
	ApplyTheme(cfg.UI.Colors)

	ti := textinput.New()
	ti.Placeholder = "Search videos or paste video url"
	ti.Prompt = "🔍 "
	ti.CharLimit = cfg.Search.MaxQueryLength
	ti.Focus()

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "› videos"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor)

	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		config:    cfg,
		client:    client,
		settings:  settings,
		launcher:  launcher,
		target:    search.NewEventTarget(),
		log:       debuglog.WithFields(map[string]any{"component": "tui"}),
		ctx:       ctx,
		cancel:    cancel,
		input:     ti,
		list:      l,
		status:    &statusLine{},
		searching: &searchIndicator{},
		toasts:    newToastQueue(),
		spinner:   sp,
		viewport:  viewport.New(0, 0),
		help:      help.New(),
		view:      ViewSearch,
		focus:     focusInput,
		debounce:  cfg.Search.Debounce,
	}
	// Same order as the filter row of the web page.
	a.toggles = []*toggle{
		newToggle("downloaded", search.SourceDownloaded),
		newToggle("summarized", search.SourceSummarized),
		newToggle("ignored", search.SourceIgnored),
		newToggle("excluded", search.SourceExcluded),
	}
	a.results = &resultsList{list: &a.list, now: time.Now}
	a.keyHandler = NewKeyHandler(a, cfg)

	var settingsReader search.Settings
	if settings != nil {
		settingsReader = settings
	}
	a.controller = search.NewController(client, settingsReader, debuglog.WithFields(map[string]any{"component": "search"}))
	if err := a.controller.Mount(a.binding(), a.target); err != nil {
		a.err = wrapErr("mounting search", err)
	}

	return a
}

// binding wires the app's widgets to the controller.
func (a *App) binding() *search.ViewBinding {
	return &search.ViewBinding{
		Input:      inputField{app: a},
		Downloaded: a.toggleFor(search.SourceDownloaded),
		Summarized: a.toggleFor(search.SourceSummarized),
		Ignored:    a.toggleFor(search.SourceIgnored),
		Excluded:   a.toggleFor(search.SourceExcluded),
		Status:     a.status,
		Indicator:  a.searching,
		Toasts:     a.toasts,
		Results:    a.resultsContainer,
	}
}

// resultsContainer returns nil once the app is shutting down.
func (a *App) resultsContainer() search.ResultsContainer {
	if a.quitting || a.results == nil {
		return nil
	}
	return a.results
}

func (a *App) toggleFor(source search.Source) *toggle {
	for _, t := range a.toggles {
		if t.source == source {
			return t
		}
	}
	return nil
}

// inputField adapts the text input to search.TextField.
type inputField struct {
	app *App
}

func (f inputField) Value() string { return f.app.input.Value() }

// Clear empties the field without scheduling a search.
func (f inputField) Clear() { f.app.input.SetValue("") }

func (a *App) showOriginalThumbnail() bool {
	if a.settings == nil {
		return false
	}
	return a.settings.Bool(storage.ShowOriginalThumbnailKey)
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > 120 {
		wordWrapWidth = 120
	}
	if wordWrapWidth < 40 {
		wordWrapWidth = 40
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.loadInitial(),
		textinput.Blink,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case searchDebounceFireMsg:
		if msg.seq != a.searchSeq {
			return a, nil
		}
		return a, a.emit(search.SourceText)

	case outcomeMsg:
		a.controller.Settle(msg.outcome)
		return a, nil

	case initialLoadedMsg:
		a.applyInitial(msg)
		return a, nil

	case toastExpiredMsg:
		a.toasts.prune()
		return a, nil

	case spinner.TickMsg:
		if !a.searching.active {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case detailRenderedMsg:
		if a.view == ViewDetail && a.current != nil && a.current.ID == msg.id {
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
			a.rendering = false
		}
		return a, nil

	case thumbnailModeMsg:
		if msg.err != nil {
			a.setNotice(wrapErr("saving setting", msg.err).Error(), StatusError)
			return a, nil
		}
		a.results.rerender(msg.showOriginal)
		if msg.showOriginal {
			a.setNotice(MsgOriginalThumbs, StatusInfo)
		} else {
			a.setNotice(MsgCachedThumbs, StatusInfo)
		}
		return a, nil

	case openedMsg:
		a.setNotice(MsgOpened(msg.title), StatusSuccess)
		return a, nil

	case errorMsg:
		a.log.Errorf("%v", msg.err)
		a.setNotice(msg.err.Error(), StatusError)
		return a, nil
	}

	if a.focus == focusInput && a.view == ViewSearch {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	listHeight := height - searchChrome
	if listHeight < 5 {
		listHeight = 5
	}
	a.list.SetSize(width, listHeight)

	inputWidth := width - 8
	if inputWidth < 10 {
		inputWidth = width - 4
	}
	a.input.Width = inputWidth

	a.viewport.Width = width
	a.viewport.Height = height - 3
	a.help.Width = width
}

// emit raises a control event and turns the resulting actions into commands.
func (a *App) emit(source search.Source) tea.Cmd {
	a.notice = notice{}
	actions := a.target.Emit(source)

	cmds := make([]tea.Cmd, 0, len(actions)+2)
	for _, action := range actions {
		cmds = append(cmds, a.execute(action))
	}
	if a.searching.active {
		cmds = append(cmds, a.spinner.Tick)
	}
	if a.toasts.takeAdded() > 0 {
		cmds = append(cmds, expireToasts())
	}
	return tea.Batch(cmds...)
}

func (a *App) applyInitial(msg initialLoadedMsg) {
	if a.controller.LatestSeq() != 0 || !a.controller.Mounted() {
		return
	}
	if msg.err != nil {
		a.setNotice(search.MsgError(msg.err), StatusError)
		return
	}
	if container := a.resultsContainer(); container != nil {
		container.Replace(msg.videos, a.showOriginalThumbnail())
	}
}

func (a *App) setNotice(text string, kind StatusKind) {
	a.notice = notice{text: text, kind: kind}
}

// quit unmounts the controller and stops in-flight requests.
func (a *App) quit() (tea.Model, tea.Cmd) {
	a.quitting = true
	a.controller.Unmount()
	a.cancel()
	return a, tea.Quit
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	var content string
	switch a.view {
	case ViewDetail:
		content = a.detailView()
	default:
		content = a.searchView()
	}

	separator := SeparatorStyle.Render(strings.Repeat("─", max(a.width-1, 0)))
	return lipgloss.JoinVertical(lipgloss.Top, content, separator, a.statusBar())
}

func (a *App) searchView() string {
	header := HeaderStyle.Render(CompactLogo + " search")
	if a.searching.active {
		header += " " + a.spinner.View() + renderMuted(" searching")
	}

	input := renderInputFrame(a.input.View(), a.focus == focusInput, a.input.Width)

	focused := -1
	if a.focus == focusToggles {
		focused = a.toggleIndex
	}
	filters := renderToggles(a.toggles, focused)

	var statusRow []string
	if text := a.status.Text(); text != "" {
		statusRow = append(statusRow, HeaderStyle.Render(text))
	}
	if a.notice.text != "" {
		statusRow = append(statusRow, a.notice.kind.style().Render(a.notice.text))
	}
	if a.err != nil {
		statusRow = append(statusRow, ErrorMessageStyle.Render("✗ "+a.err.Error()))
	}

	var toastRow string
	if msgs := a.toasts.Messages(); len(msgs) > 0 {
		rendered := make([]string, len(msgs))
		for i, m := range msgs {
			rendered[i] = ToastStyle.Render(m)
		}
		toastRow = strings.Join(rendered, " ")
	}

	body := a.list.View()
	if len(a.list.Items()) == 0 {
		body = renderCentered(a.width, max(a.height-searchChrome, 5), GetCompactBanner("Type to search, tab to filters"))
	}

	return lipgloss.NewStyle().
		Width(a.width).
		MaxHeight(max(a.height-2, 1)).
		Render(lipgloss.JoinVertical(
			lipgloss.Top,
			header,
			input,
			filters,
			strings.Join(statusRow, "  "),
			toastRow,
			body,
		))
}

func (a *App) detailView() string {
	if a.rendering {
		return renderCentered(a.width, max(a.height-3, 1), renderMuted(MsgRenderingDetails))
	}
	title := ""
	if a.current != nil {
		title = a.current.Title
	}
	return lipgloss.JoinVertical(lipgloss.Top,
		renderHeader("› "+title, truncateMiddle(a.currentWatchURL(), max(a.width-4, 1)), a.width),
		a.viewport.View(),
	)
}

func (a *App) currentWatchURL() string {
	if a.current == nil {
		return ""
	}
	return a.current.WatchURL()
}

func (a *App) statusBar() string {
	return StatusBarStyle.Width(a.width).Render(a.help.View(a.keyHandler.keys.forView(a.view)))
}
