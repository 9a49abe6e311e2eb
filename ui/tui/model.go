// Package tui is the terminal front end of photo-triage.
package tui

import (
	"fmt"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"strings"
	"vincit.fi/photo-triage/api"
	"vincit.fi/photo-triage/api/apitype"
	"vincit.fi/photo-triage/common/event"
	"vincit.fi/photo-triage/common/logger"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	previewFrame = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444"))
)

type startMsg struct{}

type scanFinishedMsg struct {
	err error
}

type previewMsg struct {
	id   apitype.ItemId
	view string
	err  error
}

// Options configures the model. Scan is called off the UI goroutine.
type Options struct {
	Triage api.TriageService
	Images api.ImageLoader
	Scan   func() error
}

// Model keeps the latest snapshots published by the triage service.
// Every method runs on the program goroutine, which is also the
// goroutine driving the triage service.
type Model struct {
	triage api.TriageService
	images api.ImageLoader
	scan   func() error

	keys   keyMap
	help   help.Model
	width  int
	height int

	authorization apitype.AuthorizationStatus
	triageState   *api.UpdateTriageCommand
	outcomeSets   *api.OutcomeSetsCommand
	libraryState  *api.LibraryCommand
	progress      *api.UpdateProgressCommand

	selections     []apitype.Selection
	selectionIndex int

	initialized  bool
	scanning     bool
	deleting     bool
	armedReset   string
	status       string
	lastError    string
	preview      string
	previewId    apitype.ItemId
	previewWants apitype.ItemId
}

func NewModel(options Options) *Model {
	return &Model{
		triage:        options.Triage,
		images:        options.Images,
		scan:          options.Scan,
		keys:          defaultKeyMap(),
		help:          help.New(),
		authorization: apitype.NOT_DETERMINED,
		selections:    []apitype.Selection{apitype.AllItems()},
	}
}

// Subscribe connects the model to the broker. Handlers run through the
// dispatcher so they never race with Update.
func (m *Model) Subscribe(broker *event.Broker, dispatcher api.Dispatcher) {
	broker.ConnectToDispatcher(api.TriageUpdated, dispatcher, m.onTriageUpdated)
	broker.ConnectToDispatcher(api.OutcomeSetsUpdated, dispatcher, m.onOutcomeSetsUpdated)
	broker.ConnectToDispatcher(api.LibraryUpdated, dispatcher, m.onLibraryUpdated)
	broker.ConnectToDispatcher(api.AuthorizationUpdated, dispatcher, m.onAuthorizationUpdated)
	broker.ConnectToDispatcher(api.DeleteCompleted, dispatcher, m.onDeleteCompleted)
	broker.ConnectToDispatcher(api.ProcessStatusUpdated, dispatcher, m.onProgress)
	broker.ConnectToDispatcher(api.ShowError, dispatcher, m.onError)
}

func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		return startMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.previewId = apitype.NoItem
		m.previewWants = apitype.NoItem
		return m, m.previewCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case startMsg:
		m.authorization = m.triage.RequestAuthorization()
		if !m.authorization.IsGranted() {
			return m, nil
		}
		return m, m.scanCmd()

	case scanFinishedMsg:
		m.scanning = false
		m.progress = nil
		if msg.err != nil {
			m.lastError = msg.err.Error()
		}
		if !m.initialized {
			m.initialized = true
			m.triage.Initialize()
			m.triage.LoadInitialData()
		} else {
			m.triage.Reload()
		}
		return m, m.previewCmd()

	case dispatchMsg:
		msg.fn()
		return m, m.previewCmd()

	case previewMsg:
		if msg.id != m.previewWants {
			return m, nil
		}
		m.previewId = msg.id
		if msg.err != nil {
			m.preview = subtleStyle.Render("(no preview: " + msg.err.Error() + ")")
		} else {
			m.preview = msg.view
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	armed := m.armedReset
	m.armedReset = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Delete):
		m.swipe(apitype.DELETE)
	case key.Matches(msg, m.keys.Keep):
		m.swipe(apitype.KEEP)
	case key.Matches(msg, m.keys.Pending):
		m.swipe(apitype.PENDING)
	case key.Matches(msg, m.keys.Undo):
		m.triage.Undo()
	case key.Matches(msg, m.keys.NextSelection):
		m.nextSelection()
	case key.Matches(msg, m.keys.Reload):
		if !m.scanning && m.authorization.IsGranted() {
			return m, m.scanCmd()
		}
	case key.Matches(msg, m.keys.ConfirmDelete):
		m.confirmDelete()
	case key.Matches(msg, m.keys.ResetKept):
		if armed == "kept" {
			m.triage.ResetKeptItems()
			m.status = "Kept items reset"
		} else {
			m.armedReset = "kept"
			m.status = "Press K again to forget every kept item. This cannot be undone."
		}
	case key.Matches(msg, m.keys.ResetPending):
		if armed == "pending" {
			m.triage.ResetPendingItems()
			m.status = "Pending items reset"
		} else {
			m.armedReset = "pending"
			m.status = "Press P again to return every pending item. This cannot be undone."
		}
	}
	return m, nil
}

func (m *Model) swipe(action apitype.SwipeAction) {
	if item := m.triage.CurrentItem(); item != nil {
		m.triage.Swipe(item, action)
		m.status = fmt.Sprintf("%s: %s", action, item.FileName())
	}
}

func (m *Model) nextSelection() {
	if len(m.selections) == 0 {
		return
	}
	m.selectionIndex = (m.selectionIndex + 1) % len(m.selections)
	m.triage.LoadForSelection(m.selections[m.selectionIndex])
}

func (m *Model) confirmDelete() {
	if m.deleting {
		return
	}
	items := m.triage.DeletedItems()
	if len(items) == 0 {
		m.status = "Nothing marked for deletion"
		return
	}
	m.deleting = true
	m.status = fmt.Sprintf("Deleting %d items...", len(items))
	m.triage.ConfirmDelete(items, func(success bool) {
		m.deleting = false
		if success {
			m.status = fmt.Sprintf("Deleted %d items", len(items))
		} else {
			m.status = "Deletion failed, press x to retry"
		}
	})
}

func (m *Model) scanCmd() tea.Cmd {
	m.scanning = true
	scan := m.scan
	return func() tea.Msg {
		if scan == nil {
			return scanFinishedMsg{}
		}
		return scanFinishedMsg{err: scan()}
	}
}

// previewCmd loads the current item's preview unless it is already
// shown or on its way.
func (m *Model) previewCmd() tea.Cmd {
	if m.triageState == nil || m.images == nil {
		return nil
	}
	item := m.triageState.Current
	if item == nil {
		m.preview = ""
		m.previewId = apitype.NoItem
		m.previewWants = apitype.NoItem
		return nil
	}
	if item.Id() == m.previewId || item.Id() == m.previewWants {
		return nil
	}
	m.previewWants = item.Id()
	m.preview = ""

	images := m.images
	upcoming := m.upcomingItems(2)
	width, height := m.previewSize()
	return func() tea.Msg {
		img, err := images.LoadImage(item, width, height*2)
		// Warm the cache for the next swipes.
		for _, next := range upcoming {
			_, _ = images.LoadImage(next, width, height*2)
		}
		if err != nil {
			logger.Debug.Printf("No preview for '%s': %s", item.Id(), err)
			return previewMsg{id: item.Id(), err: err}
		}
		return previewMsg{id: item.Id(), view: renderPreview(img)}
	}
}

func (m *Model) upcomingItems(count int) []*apitype.Item {
	filtered := m.triage.FilteredItems()
	start := m.triage.Cursor() + 1
	if start >= len(filtered) {
		return nil
	}
	end := start + count
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

func (m *Model) previewSize() (int, int) {
	width := m.width - 4
	height := m.height - 12
	if width < 8 {
		width = 8
	}
	if height < 4 {
		height = 4
	}
	return width, height
}

func (m *Model) onTriageUpdated(command *api.UpdateTriageCommand) {
	m.triageState = command
}

func (m *Model) onOutcomeSetsUpdated(command *api.OutcomeSetsCommand) {
	m.outcomeSets = command
}

func (m *Model) onLibraryUpdated(command *api.LibraryCommand) {
	m.libraryState = command
	m.selections = buildSelections(command)
	if m.selectionIndex >= len(m.selections) {
		m.selectionIndex = 0
	}
}

func (m *Model) onAuthorizationUpdated(command *api.AuthorizationCommand) {
	m.authorization = command.Status
}

func (m *Model) onDeleteCompleted(command *api.DeleteResultCommand) {
	logger.Debug.Printf("Delete of %d items finished: %t", len(command.Items), command.Success)
}

func (m *Model) onProgress(command *api.UpdateProgressCommand) {
	if command.Current >= command.Total {
		m.progress = nil
	} else {
		m.progress = command
	}
}

func (m *Model) onError(command *api.ErrorCommand) {
	m.lastError = strings.ReplaceAll(command.Message, "\n", ": ")
}

// buildSelections lists every selection the user can cycle through:
// all items, then non-empty albums, months and years.
func buildSelections(command *api.LibraryCommand) []apitype.Selection {
	selections := []apitype.Selection{apitype.AllItems()}
	for _, info := range command.Collections {
		if info.Count > 0 {
			selections = append(selections, apitype.AlbumSelection(info.Collection))
		}
	}
	for _, month := range command.Months {
		selections = append(selections, apitype.MonthSelection(month.Period))
	}
	for _, year := range command.Years {
		selections = append(selections, apitype.YearSelection(year.Period))
	}
	return selections
}

func (m *Model) View() string {
	var sections []string
	sections = append(sections, m.headerView())
	sections = append(sections, m.bodyView())
	sections = append(sections, m.footerView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) headerView() string {
	if m.triageState == nil {
		return titleStyle.Render("photo-triage")
	}
	state := m.triageState
	position := fmt.Sprintf("%d / %d (%d)", state.Index, state.Total, state.CandidateTotal)
	return titleStyle.Render(state.Title) + "  " + subtleStyle.Render(position)
}

func (m *Model) bodyView() string {
	switch {
	case m.authorization == apitype.DENIED:
		return errorStyle.Render("The library directory cannot be read.")
	case m.scanning:
		if m.progress != nil {
			return fmt.Sprintf("Scanning library... %d/%d", m.progress.Current, m.progress.Total)
		}
		return "Scanning library..."
	case m.triageState == nil:
		return "Loading..."
	case m.triageState.Current == nil:
		return "Nothing left to triage in " + m.triageState.Title + "."
	}

	item := m.triageState.Current
	details := fmt.Sprintf("%s  %s  %s  %.1f MB",
		item.FileName(), item.Created().Format("2006-01-02 15:04"), item.Kind(), item.ByteSizeInMB())
	if m.preview == "" {
		return details
	}
	return lipgloss.JoinVertical(lipgloss.Left, details, previewFrame.Render(m.preview))
}

func (m *Model) footerView() string {
	var lines []string
	if m.outcomeSets != nil {
		lines = append(lines, countStyle.Render(fmt.Sprintf("kept %d  pending %d  deleted %d",
			m.outcomeSets.KeptCount, len(m.outcomeSets.Pending), len(m.outcomeSets.Deleted))))
	}
	if m.progress != nil && !m.scanning {
		lines = append(lines, subtleStyle.Render(fmt.Sprintf("%s %d/%d", m.progress.Name, m.progress.Current, m.progress.Total)))
	}
	if m.status != "" {
		lines = append(lines, m.status)
	}
	if m.lastError != "" {
		lines = append(lines, errorStyle.Render(m.lastError))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}
