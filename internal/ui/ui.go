package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvalenti/fitweek/internal/concepts"
	"github.com/nvalenti/fitweek/internal/models"
)

// ViewState represents the current view in the viewer.
type ViewState int

const (
	TaskListView ViewState = iota
	ProgressListView
)

// recordLoadedMsg carries the tracking data fetched at startup.
type recordLoadedMsg struct {
	record  *models.TrackingRecord
	percent float64
	err     error
}

// Model represents the viewer state.
type Model struct {
	tracking *concepts.Tracking
	userID   string
	username string

	view         ViewState
	width        int
	height       int
	record       *models.TrackingRecord
	percent      float64
	taskList     list.Model
	progressList list.Model
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a viewer for the given user's tracking record.
func NewModel(tracking *concepts.Tracking, userID, username string) *Model {
	return &Model{
		tracking: tracking,
		userID:   userID,
		username: username,
		view:     TaskListView,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init loads the tracking record.
func (m *Model) Init() tea.Cmd {
	return m.loadRecord()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.taskList.SetSize(msg.Width-4, msg.Height-8)
		m.progressList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.view == TaskListView {
				m.view = ProgressListView
			} else {
				m.view = TaskListView
			}
			return m, nil
		}

	case recordLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.record = msg.record
		m.percent = msg.percent

		tasks := make([]list.Item, len(msg.record.WeeklyTasks))
		for i, task := range msg.record.WeeklyTasks {
			tasks[i] = taskItem{task: task}
		}
		m.taskList = list.New(tasks, list.NewDefaultDelegate(), 0, 0)
		m.taskList.Title = fmt.Sprintf("%s's weekly tasks", m.username)
		m.taskList.Styles.Title = styles.title
		m.taskList.SetSize(m.width-4, m.height-8)

		// History is stored oldest-first; show the latest week on top.
		entries := make([]list.Item, 0, len(msg.record.ProgressHistory))
		for i := len(msg.record.ProgressHistory) - 1; i >= 0; i-- {
			entries = append(entries, progressItem{entry: msg.record.ProgressHistory[i]})
		}
		m.progressList = list.New(entries, list.NewDefaultDelegate(), 0, 0)
		m.progressList.Title = "Progress history"
		m.progressList.Styles.Title = styles.title
		m.progressList.SetSize(m.width-4, m.height-8)

		return m, nil
	}

	var cmd tea.Cmd
	switch m.view {
	case TaskListView:
		m.taskList, cmd = m.taskList.Update(msg)
	case ProgressListView:
		m.progressList, cmd = m.progressList.Update(msg)
	}
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}
	if m.record == nil {
		return styles.help.Render("Loading...")
	}

	helpView := m.help.ShortHelpView(m.keys.ShortHelp())

	switch m.view {
	case ProgressListView:
		return fmt.Sprintf("%s\n\n%s", m.progressList.View(), helpView)
	default:
		return fmt.Sprintf("%s\n%s\n\n%s", m.taskList.View(), m.summary(), helpView)
	}
}

// summary renders the goal and completion percentage under the task list.
func (m *Model) summary() string {
	goal := m.record.Goal
	if goal == "" {
		goal = "none set"
	}

	line := fmt.Sprintf("goal: %s • %.2f%% complete", goal, m.percent)
	if m.percent >= 100 && len(m.record.WeeklyTasks) > 0 {
		return styles.ok.Render(line)
	}
	return styles.warn.Render(line)
}

func (m *Model) loadRecord() tea.Cmd {
	return func() tea.Msg {
		record, err := m.tracking.CreateRecord(m.userID)
		if err != nil {
			return recordLoadedMsg{err: err}
		}

		percent, err := m.tracking.CompletionPercentage(m.userID)
		if err != nil {
			return recordLoadedMsg{err: err}
		}

		return recordLoadedMsg{record: record, percent: percent}
	}
}
