package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jcalgo/jcal/internal/calendar"
	"github.com/jcalgo/jcal/internal/config"
	"github.com/jcalgo/jcal/internal/grid"
	"github.com/jcalgo/jcal/internal/logging"
	"github.com/jcalgo/jcal/internal/parser"
	"github.com/jcalgo/jcal/internal/render"
)

type ViewMode int

const (
	ViewCalendar ViewMode = iota
	ViewHelp
	ViewGoto
)

const messageTimeout = 3 * time.Second

type Model struct {
	// Core components
	config  *config.Config
	logger  *logging.Logger
	watcher *config.FileWatcher
	reloads chan struct{}
	// loadOpts repeats the command line overrides on every reload.
	loadOpts config.Options
	now     func() time.Time

	// Calendar state
	mode        ViewMode
	system      calendar.System
	weekStart   time.Weekday
	weekNumbers bool
	months      int
	today       calendar.Date
	selected    calendar.Date

	// UI state
	width      int
	height     int
	message    string
	messageSeq int

	// Goto prompt state
	// cursorPos counts runes, not bytes.
	inputBuffer []rune
	cursorPos   int

	keys     keyMap
	help     help.Model
	renderer *render.Renderer
	styles   render.Styles
}

func NewModel(cfg *config.Config, logger *logging.Logger) *Model {
	if logger == nil {
		logger = logging.Nop()
	}

	m := &Model{
		logger:  logger.WithComponent("ui"),
		reloads: make(chan struct{}, 1),
		now:     time.Now,
		mode:    ViewCalendar,
		help:    help.New(),
	}
	m.loadOpts = config.Options{Path: cfg.Path}
	m.applyConfig(cfg)
	m.goToday()
	return m
}

// SetLoadOptions sets the flags and overrides the configuration was loaded
// with, so that a reload keeps them.
func (m *Model) SetLoadOptions(opts config.Options) {
	m.loadOpts = opts
}

// applyConfig adopts the settings of cfg, keeping the selected day.
func (m *Model) applyConfig(cfg *config.Config) {
	m.config = cfg
	m.system = cfg.System()
	m.weekStart = cfg.WeekStartDay()
	m.weekNumbers = cfg.WeekNumbers
	m.months = 1
	if cfg.Months >= 3 {
		m.months = 3
	}
	m.keys = newKeyMap(cfg.KeyBindings)

	lr := lipgloss.DefaultRenderer()
	styles, err := render.StylesFromConfig(lr, cfg.Colors)
	if err != nil {
		m.logger.WithError(err).Warnw("ignoring color settings")
		styles = render.DefaultStyles(lr)
	}
	m.styles = styles
	m.renderer = render.New(lr)
	m.renderer.SetStyles(styles)

	if !m.selected.IsZero() && m.selected.System() != m.system {
		if d, err := calendar.Convert(m.selected, m.system); err == nil {
			m.selected = d
		}
		m.refreshToday()
	}
}

// WatchConfig reloads the rc file whenever it changes on disk.
func (m *Model) WatchConfig() error {
	if m.config.Path == "" {
		return nil
	}
	watcher, err := config.NewFileWatcher(func(path string) {
		select {
		case m.reloads <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}
	watcher.OnError(func(err error) {
		m.logger.WithError(err).Warnw("config watcher")
	})
	if err := watcher.AddFile(m.config.Path); err != nil {
		watcher.Close()
		return err
	}
	m.watcher = watcher
	return nil
}

func (m *Model) Close() error {
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen, m.tickCmd()}
	if m.watcher != nil {
		cmds = append(cmds, m.waitForReload())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		m.refreshToday()
		return m, m.tickCmd()

	case configChangedMsg:
		return m, tea.Batch(m.reloadConfig(), m.waitForReload())

	case configReloadedMsg:
		if msg.err != nil {
			m.logger.WithError(msg.err).Warnw("config reload failed")
			return m, m.showMessage(fmt.Sprintf("Config error: %v", msg.err))
		}
		m.applyConfig(msg.config)
		return m, m.showMessage("Configuration reloaded")

	case messageTimeoutMsg:
		if msg.seq == m.messageSeq {
			m.message = ""
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ViewHelp:
		return m.viewHelp()
	case ViewGoto:
		return m.viewGoto()
	default:
		return m.viewCalendar()
	}
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ViewGoto {
		return m.handleGotoKeys(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.mode == ViewHelp {
			m.mode = ViewCalendar
		} else {
			m.mode = ViewHelp
		}
		return m, nil
	}

	if m.mode == ViewHelp {
		m.mode = ViewCalendar
		return m, nil
	}
	return m.handleCalendarKeys(msg)
}

func (m *Model) handleCalendarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		next calendar.Date
		err  error
	)

	switch {
	case key.Matches(msg, m.keys.NextDay):
		next, err = m.selected.AddDays(1)
	case key.Matches(msg, m.keys.PrevDay):
		next, err = m.selected.AddDays(-1)
	case key.Matches(msg, m.keys.NextWeek):
		next, err = m.selected.AddDays(grid.DaysPerWeek)
	case key.Matches(msg, m.keys.PrevWeek):
		next, err = m.selected.AddDays(-grid.DaysPerWeek)
	case key.Matches(msg, m.keys.NextMonth):
		next, err = m.selected.AddMonths(1)
	case key.Matches(msg, m.keys.PrevMonth):
		next, err = m.selected.AddMonths(-1)
	case key.Matches(msg, m.keys.NextYear):
		next, err = m.selected.AddYears(1)
	case key.Matches(msg, m.keys.PrevYear):
		next, err = m.selected.AddYears(-1)

	case key.Matches(msg, m.keys.Today):
		m.goToday()
		return m, nil

	case key.Matches(msg, m.keys.ToggleWeekNumbers):
		m.weekNumbers = !m.weekNumbers
		if m.weekNumbers {
			return m, m.showMessage("Showing week numbers")
		}
		return m, m.showMessage("Hiding week numbers")

	case key.Matches(msg, m.keys.CycleWeekStart):
		m.weekStart = (m.weekStart + 1) % grid.DaysPerWeek
		return m, m.showMessage("Week starts on " + calendar.WeekdayName(m.weekStart))

	case key.Matches(msg, m.keys.ToggleCalendar):
		return m, m.toggleCalendar()

	case key.Matches(msg, m.keys.ToggleMonths):
		if m.months == 1 {
			m.months = 3
		} else {
			m.months = 1
		}
		return m, nil

	case key.Matches(msg, m.keys.Goto):
		m.mode = ViewGoto
		m.inputBuffer = nil
		m.cursorPos = 0
		return m, nil

	default:
		return m, nil
	}

	if err != nil {
		return m, m.showMessage(outOfRangeMessage(err))
	}
	m.selected = next
	return m, nil
}

func outOfRangeMessage(err error) string {
	if errors.Is(err, calendar.ErrOutOfRange) {
		return "Date out of range"
	}
	return fmt.Sprintf("Error: %v", err)
}

// toggleCalendar switches between the Jalali and Gregorian calendars,
// keeping the selected day.
func (m *Model) toggleCalendar() tea.Cmd {
	target := calendar.Jalali
	if m.system == calendar.Jalali {
		target = calendar.Gregorian
	}

	selected, err := calendar.Convert(m.selected, target)
	if err != nil {
		return m.showMessage(outOfRangeMessage(err))
	}

	m.system = target
	m.selected = selected
	if m.config.WeekStart == "" {
		m.weekStart = calendar.DefaultWeekStart(target)
	}
	m.refreshToday()
	return m.showMessage("Showing the " + target.String() + " calendar")
}

func (m *Model) handleGotoKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape, tea.KeyCtrlC:
		m.mode = ViewCalendar
		return m, nil

	case tea.KeyEnter:
		m.mode = ViewCalendar
		if len(m.inputBuffer) == 0 {
			return m, nil
		}
		p := parser.NewDateParser(m.system)
		p.SetNow(m.now())
		d, err := p.Parse(string(m.inputBuffer))
		if err != nil {
			return m, m.showMessage(fmt.Sprintf("Parse error: %v", err))
		}
		m.selected = d
		return m, nil

	case tea.KeyBackspace:
		if m.cursorPos > 0 {
			m.inputBuffer = append(m.inputBuffer[:m.cursorPos-1], m.inputBuffer[m.cursorPos:]...)
			m.cursorPos--
		}

	case tea.KeyLeft:
		if m.cursorPos > 0 {
			m.cursorPos--
		}

	case tea.KeyRight:
		if m.cursorPos < len(m.inputBuffer) {
			m.cursorPos++
		}

	case tea.KeySpace:
		m.insert([]rune{' '})

	case tea.KeyRunes:
		m.insert(msg.Runes)
	}

	return m, nil
}

func (m *Model) insert(rs []rune) {
	buf := make([]rune, 0, len(m.inputBuffer)+len(rs))
	buf = append(buf, m.inputBuffer[:m.cursorPos]...)
	buf = append(buf, rs...)
	m.inputBuffer = append(buf, m.inputBuffer[m.cursorPos:]...)
	m.cursorPos += len(rs)
}

func (m *Model) goToday() {
	m.refreshToday()
	if !m.today.IsZero() {
		m.selected = m.today
	}
}

func (m *Model) refreshToday() {
	today, err := calendar.FromTime(m.now(), m.system)
	if err != nil {
		m.logger.Warnw("today is outside the supported range", "error", err)
		return
	}
	m.today = today
}

func (m *Model) reloadConfig() tea.Cmd {
	opts := m.loadOpts
	opts.Path = m.config.Path
	return func() tea.Msg {
		cfg, err := config.Load(opts)
		return configReloadedMsg{config: cfg, err: err}
	}
}

func (m *Model) waitForReload() tea.Cmd {
	reloads := m.reloads
	return func() tea.Msg {
		<-reloads
		return configChangedMsg{}
	}
}

func (m *Model) showMessage(msg string) tea.Cmd {
	m.message = msg
	m.messageSeq++
	seq := m.messageSeq
	return tea.Tick(messageTimeout, func(time.Time) tea.Msg {
		return messageTimeoutMsg{seq: seq}
	})
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Message types
type tickMsg struct{}
type configChangedMsg struct{}
type configReloadedMsg struct {
	config *config.Config
	err    error
}
type messageTimeoutMsg struct {
	seq int
}
