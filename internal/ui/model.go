package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/nzaccagnino/notely/internal/api"
	"github.com/nzaccagnino/notely/internal/binding"
	"github.com/nzaccagnino/notely/internal/i18n"
	"github.com/nzaccagnino/notely/internal/location"
	"github.com/nzaccagnino/notely/internal/session"
)

const snackbarTTL = 4 * time.Second

type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeConfirmDelete
	ModeHelp
)

type Model struct {
	ctrl    *session.Controller
	history *location.History
	events  *Events
	logger  zerolog.Logger

	state  session.State
	route  Route
	noteID string
	detail *api.Note

	cursor     int
	listOffset int
	mode       Mode

	search textinput.Model

	loginForm     *form
	loginEmail    *binding.Binding[string]
	loginPassword *binding.Binding[string]

	registerForm     *form
	registerName     *binding.Binding[string]
	registerEmail    *binding.Binding[string]
	registerPassword *binding.Binding[string]
	registerConfirm  *binding.Binding[string]

	addForm *noteForm

	spinner spinner.Model
	help    help.Model
	keys    KeyMap

	snack    *session.Notification
	snackSeq int

	busy         bool
	deleteTarget api.Note

	width  int
	height int
}

type noteLoadedMsg struct {
	id   string
	note api.Note
	err  error
}

// opDoneMsg reports the end of a controller call started by the model.
type opDoneMsg struct {
	op  string
	err error
}

type snackExpiredMsg int

const (
	opRestore  = "restore"
	opLogin    = "login"
	opRegister = "register"
	opAdd      = "add"
	opDelete   = "delete"
	opArchive  = "archive"
	opRefresh  = "refresh"
)

// NewModel builds the program model. events must be the Notifier the
// controller was created with; NewModel subscribes it to state changes.
func NewModel(ctrl *session.Controller, history *location.History, events *Events, logger zerolog.Logger) Model {
	t := i18n.T()

	si := textinput.New()
	si.Placeholder = t.SearchPlaceholder
	si.Prompt = "🔍 "
	si.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	login := &form{}
	email := login.add(t.EmailLabel, "you@example.com", false)
	password := login.add(t.PasswordLabel, "", true)

	register := &form{}
	regName := register.add(t.NameLabel, "", false)
	regEmail := register.add(t.EmailLabel, "you@example.com", false)
	regPassword := register.add(t.PasswordLabel, "", true)
	regConfirm := register.add(t.ConfirmPasswordLabel, "", true)

	ctrl.Subscribe(events.StateChanged)

	m := Model{
		ctrl:             ctrl,
		history:          history,
		events:           events,
		logger:           logger,
		state:            ctrl.Snapshot(),
		search:           si,
		loginForm:        login,
		loginEmail:       email,
		loginPassword:    password,
		registerForm:     register,
		registerName:     regName,
		registerEmail:    regEmail,
		registerPassword: regPassword,
		registerConfirm:  regConfirm,
		addForm:          newNoteForm(t.TitlePlaceholder, t.BodyPlaceholder),
		spinner:          sp,
		help:             help.New(),
		keys:             NewKeyMap(),
	}
	m.route, m.noteID = ResolveRoute(history.Current(), m.state.LoggedIn())
	push(&m.search, ctrl.Keyword())

	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.restoreSession(),
		m.events.listen(m.ctrl.Snapshot),
	)
}

// Commands

func (m Model) restoreSession() tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: opRestore, err: m.ctrl.RestoreSession(context.Background())}
	}
}

func (m Model) login() tea.Cmd {
	creds := session.Credentials{
		Email:    strings.TrimSpace(m.loginEmail.Value()),
		Password: m.loginPassword.Value(),
	}
	return func() tea.Msg {
		_, err := m.ctrl.Login(context.Background(), creds)
		return opDoneMsg{op: opLogin, err: err}
	}
}

func (m Model) register() tea.Cmd {
	reg := session.Registration{
		Name:            m.registerName.Value(),
		Email:           m.registerEmail.Value(),
		Password:        m.registerPassword.Value(),
		ConfirmPassword: m.registerConfirm.Value(),
	}
	return func() tea.Msg {
		return opDoneMsg{op: opRegister, err: m.ctrl.Register(context.Background(), reg)}
	}
}

func (m Model) addNote() tea.Cmd {
	in := session.NoteInput{
		Title: m.addForm.titleValue.Value(),
		Body:  m.addForm.bodyValue.Value(),
	}
	return func() tea.Msg {
		_, err := m.ctrl.AddNote(context.Background(), in)
		return opDoneMsg{op: opAdd, err: err}
	}
}

func (m Model) deleteNote(id string) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: opDelete, err: m.ctrl.DeleteNote(context.Background(), id)}
	}
}

func (m Model) toggleArchive(note api.Note) tea.Cmd {
	return func() tea.Msg {
		var err error
		if note.Archived {
			err = m.ctrl.UnarchiveNote(context.Background(), note.ID)
		} else {
			err = m.ctrl.ArchiveNote(context.Background(), note.ID)
		}
		return opDoneMsg{op: opArchive, err: err}
	}
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: opRefresh, err: m.ctrl.Refresh(context.Background())}
	}
}

func (m Model) loadNote(id string) tea.Cmd {
	return func() tea.Msg {
		note, err := m.ctrl.Note(context.Background(), id)
		return noteLoadedMsg{id: id, note: note, err: err}
	}
}

func expireSnack(seq int) tea.Cmd {
	return tea.Tick(snackbarTTL, func(time.Time) tea.Msg {
		return snackExpiredMsg(seq)
	})
}

// Navigation

func (m Model) navigate(path string) (Model, tea.Cmd) {
	m.history.Push(location.New(path))
	return m.syncRoute()
}

func (m Model) back() (Model, tea.Cmd) {
	if !m.history.Back() {
		m.history.Push(location.New(PathHome))
	}
	return m.syncRoute()
}

// syncRoute recomputes the route from the current location and session.
func (m Model) syncRoute() (Model, tea.Cmd) {
	route, id := ResolveRoute(m.history.Current(), m.state.LoggedIn())
	changed := route != m.route || id != m.noteID
	m.route, m.noteID = route, id

	if changed {
		m.cursor, m.listOffset = 0, 0
		m.mode = ModeNormal
		m.search.Blur()
	}

	if route == RouteDetail {
		if changed {
			m.detail = nil
		}
		return m, m.loadNote(id)
	}
	m.detail = nil
	return m, nil
}

func (m Model) currentList() []api.Note {
	switch m.route {
	case RouteHome:
		return m.state.Visible
	case RouteArchived:
		return m.state.Archived
	default:
		return nil
	}
}

func (m Model) selected() (api.Note, bool) {
	list := m.currentList()
	if m.cursor >= 0 && m.cursor < len(list) {
		return list[m.cursor], true
	}
	return api.Note{}, false
}

func (m *Model) clampCursor() {
	n := len(m.currentList())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if m.listOffset > m.cursor {
		m.listOffset = m.cursor
	}
}

// Update

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.addForm.resize(m.formWidth(), m.contentHeight()-8)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stateMsg:
		m.state = session.State(msg)
		push(&m.search, m.ctrl.Keyword())
		m.clampCursor()
		next, cmd := m.syncRoute()
		return next, tea.Batch(cmd, m.events.listen(m.ctrl.Snapshot))

	case notificationMsg:
		n := session.Notification(msg)
		m.snack = &n
		m.snackSeq++
		return m, tea.Batch(expireSnack(m.snackSeq), m.events.listen(m.ctrl.Snapshot))

	case snackExpiredMsg:
		if int(msg) == m.snackSeq {
			m.snack = nil
		}
		return m, nil

	case noteLoadedMsg:
		if m.route != RouteDetail || msg.id != m.noteID {
			return m, nil
		}
		if msg.err != nil {
			m.detail = nil
			m.route = RouteNotFound
			return m, nil
		}
		note := msg.note
		m.detail = &note
		return m, nil

	case opDoneMsg:
		return m.handleOpDone(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Debug().Err(msg.err).Str("op", msg.op).Msg("operation failed")
	}
	m.busy = false

	switch msg.op {
	case opLogin:
		if msg.err == nil {
			m.loginForm.reset()
			m.state = m.ctrl.Snapshot()
			return m.navigate(PathHome)
		}
	case opRegister:
		if msg.err == nil {
			m.registerForm.reset()
			return m.navigate(PathLogin)
		}
	case opAdd:
		if msg.err == nil {
			m.addForm.reset()
			return m.navigate(PathHome)
		}
	case opDelete:
		if m.route == RouteDetail && msg.err == nil {
			return m.navigate(PathHome)
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeHelp:
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Help) {
			m.mode = ModeNormal
		}
		return m, nil
	case ModeConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ModeSearch:
		return m.handleSearchKeys(msg)
	}

	if m.state.Loading {
		return m, nil
	}

	switch m.route {
	case RouteLogin:
		return m.handleLoginKeys(msg)
	case RouteRegister:
		return m.handleRegisterKeys(msg)
	case RouteAdd:
		return m.handleAddKeys(msg)
	case RouteDetail:
		return m.handleDetailKeys(msg)
	case RouteNotFound:
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Home) {
			return m.navigate(PathHome)
		}
		return m.handleGlobalKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

// handleGlobalKeys serves the keys shared by every logged-in route.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
	case key.Matches(msg, m.keys.Home):
		return m.navigate(PathHome)
	case key.Matches(msg, m.keys.Archived):
		return m.navigate(PathArchived)
	case key.Matches(msg, m.keys.New):
		return m.navigate(PathAdd)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()
	case key.Matches(msg, m.keys.Logout):
		return m.logout()
	}
	return m, nil
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	if err := m.ctrl.Logout(); err != nil {
		m.logger.Error().Err(err).Msg("logout failed")
	}
	m.state = m.ctrl.Snapshot()
	n := session.Notification{Level: session.LevelInfo, Message: i18n.T().LogoutSuccess}
	m.snack = &n
	m.snackSeq++
	next, cmd := m.navigate(PathHome)
	return next, tea.Batch(cmd, expireSnack(m.snackSeq))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.currentList()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.listOffset {
				m.listOffset = m.cursor
			}
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(list)-1 {
			m.cursor++
			listHeight := m.listHeight()
			if m.cursor >= m.listOffset+listHeight {
				m.listOffset = m.cursor - listHeight + 1
			}
		}

	case key.Matches(msg, m.keys.Open):
		if note, ok := m.selected(); ok {
			return m.navigate(DetailPath(note.ID))
		}

	case key.Matches(msg, m.keys.Search):
		if m.route == RouteHome {
			m.mode = ModeSearch
			m.search.Focus()
		}

	case key.Matches(msg, m.keys.Back):
		if m.route == RouteHome && m.state.Keyword != "" {
			m.ctrl.SetKeyword("")
		}

	case key.Matches(msg, m.keys.Archive):
		if note, ok := m.selected(); ok {
			return m, m.toggleArchive(note)
		}

	case key.Matches(msg, m.keys.Delete):
		if note, ok := m.selected(); ok {
			m.deleteTarget = note
			m.mode = ModeConfirmDelete
		}

	default:
		return m.handleGlobalKeys(msg)
	}

	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open):
		m.mode = ModeNormal
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	pull(&m.search, m.ctrl.Keyword())
	m.cursor, m.listOffset = 0, 0
	return m, cmd
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		target := m.deleteTarget
		m.deleteTarget = api.Note{}
		return m, m.deleteNote(target.ID)
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.deleteTarget = api.Note{}
	}
	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.Archive):
		if m.detail != nil {
			return m, m.toggleArchive(*m.detail)
		}
	case key.Matches(msg, m.keys.Delete):
		if m.detail != nil {
			m.deleteTarget = *m.detail
			m.mode = ModeConfirmDelete
		}
	default:
		return m.handleGlobalKeys(msg)
	}
	return m, nil
}

func (m Model) handleAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.Submit):
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.addNote()
	case key.Matches(msg, m.keys.NextField):
		m.addForm.toggle()
		return m, nil
	}
	return m, m.addForm.update(msg)
}

func (m Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Register):
		return m.navigate(PathRegister)
	case key.Matches(msg, m.keys.NextField):
		m.loginForm.next()
		return m, nil
	case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Submit):
		if m.busy {
			return m, nil
		}
		if msg.Type == tea.KeyEnter && m.loginForm.focus < len(m.loginForm.fields)-1 {
			m.loginForm.next()
			return m, nil
		}
		m.busy = true
		return m, m.login()
	}
	return m, m.loginForm.update(msg)
}

func (m Model) handleRegisterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.navigate(PathLogin)
	case key.Matches(msg, m.keys.NextField):
		m.registerForm.next()
		return m, nil
	case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Submit):
		if m.busy {
			return m, nil
		}
		if msg.Type == tea.KeyEnter && m.registerForm.focus < len(m.registerForm.fields)-1 {
			m.registerForm.next()
			return m, nil
		}
		m.busy = true
		return m, m.register()
	}
	return m, m.registerForm.update(msg)
}

// Layout

func (m Model) formWidth() int {
	return min(max(m.width-12, 20), 60)
}

func (m Model) contentHeight() int {
	return m.height - 7
}

func (m Model) listHeight() int {
	return max(m.contentHeight()-4, 1)
}

// View

func (m Model) View() string {
	t := i18n.T()

	if m.width == 0 {
		return t.Loading
	}

	if m.mode == ModeHelp {
		return m.renderHelp()
	}

	if m.mode == ModeConfirmDelete {
		dialog := m.renderConfirmDialog()
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
	}

	header := m.renderHeader()
	body := m.renderBody()
	status := m.renderStatus()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m Model) routeTitle() string {
	t := i18n.T()
	switch m.route {
	case RouteHome:
		return t.HomeTitle
	case RouteArchived:
		return t.ArchivedTitle
	case RouteAdd:
		return t.AddTitle
	case RouteDetail:
		return t.DetailTitle
	case RouteLogin:
		return t.LoginTitle
	case RouteRegister:
		return t.RegisterTitle
	default:
		return t.NotFoundTitle
	}
}

func (m Model) renderHeader() string {
	t := i18n.T()

	left := TitleStyle.Render(t.AppName) + "  " + MutedStyle.Render(m.routeTitle())
	right := ""
	if m.state.User != nil {
		right = MutedStyle.Render(t.LoggedInAs) + " " + LabelStyle.Render(m.state.User.Name)
	}
	if m.route == RouteHome {
		left += "  " + m.search.View()
	}

	padding := m.width - 6 - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return HeaderStyle.Width(m.width - 2).Render(left + strings.Repeat(" ", padding) + right)
}

func (m Model) renderBody() string {
	t := i18n.T()

	var content string
	if m.state.Loading {
		content = m.spinner.View() + " " + t.Loading
	} else {
		switch m.route {
		case RouteHome, RouteArchived:
			content = m.renderList()
		case RouteDetail:
			content = m.renderDetail()
		case RouteAdd:
			content = m.addForm.view(t.TitleLabel, t.BodyLabel) + "\n\n" + MutedStyle.Render(t.AddHint)
		case RouteLogin:
			content = lipgloss.JoinVertical(lipgloss.Left,
				TitleStyle.Render(t.LoginTitle),
				m.loginForm.view(m.formWidth()),
				"",
				MutedStyle.Render(t.LoginHint),
			)
		case RouteRegister:
			content = lipgloss.JoinVertical(lipgloss.Left,
				TitleStyle.Render(t.RegisterTitle),
				m.registerForm.view(m.formWidth()),
				"",
				MutedStyle.Render(t.RegisterHint),
			)
		default:
			content = lipgloss.JoinVertical(lipgloss.Left,
				TitleStyle.Render(t.NotFoundTitle),
				MutedStyle.Render(t.NotFoundBody),
			)
		}
	}

	style := PanelStyle
	if m.route == RouteAdd || m.mode == ModeSearch {
		style = ActivePanelStyle
	}
	return style.Width(m.width - 2).Height(m.contentHeight()).Render(content)
}

func (m Model) renderList() string {
	t := i18n.T()
	list := m.currentList()

	if len(list) == 0 {
		empty := t.EmptyNotes
		switch {
		case m.route == RouteArchived:
			empty = t.EmptyArchived
		case m.state.Keyword != "":
			empty = fmt.Sprintf(t.EmptySearch, m.state.Keyword)
		}
		return MutedStyle.Render(empty)
	}

	icon := NoteIcon
	if m.route == RouteArchived {
		icon = ArchivedIcon
	}

	maxLen := max(m.width-30, 10)
	var items []string
	for i := m.listOffset; i < len(list) && i < m.listOffset+m.listHeight(); i++ {
		note := list[i]
		date := note.CreatedAt.Local().Format("2006-01-02")
		line := fmt.Sprintf(" %s %-*s  %s ", icon, maxLen, truncate(note.Title, maxLen), date)
		if i == m.cursor {
			items = append(items, SelectedListItemStyle.Render(line))
		} else {
			items = append(items, line)
		}
	}
	return strings.Join(items, "\n")
}

func (m Model) renderDetail() string {
	t := i18n.T()

	if m.detail == nil {
		return m.spinner.View() + " " + t.Loading
	}
	note := m.detail

	badge := BadgeStyle.Render(t.Active)
	if note.Archived {
		badge = BadgeStyle.Render(t.Archived)
	}

	meta := MutedStyle.Render(t.CreatedAt+" "+note.CreatedAt.Local().Format("2006-01-02 15:04")) + "  " + badge
	return lipgloss.JoinVertical(lipgloss.Left,
		SelectedStyle.Render(note.Title),
		meta,
		"",
		note.Body,
	)
}

func (m Model) renderStatus() string {
	t := i18n.T()

	left := fmt.Sprintf(" %d %s", len(m.currentList()), t.Notes)
	if m.snack != nil {
		left = SnackbarStyle.Render(notificationStyle(m.snack.Level).Render(m.snack.Message))
	}

	right := fmt.Sprintf("? %s | Ctrl+Q %s", t.Help, t.Exit)

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 0 {
		padding = 0
	}

	return StatusBarStyle.Render(left + strings.Repeat(" ", padding) + right)
}

func (m Model) renderConfirmDialog() string {
	t := i18n.T()

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		TitleStyle.Render(t.DeleteNote),
		"",
		fmt.Sprintf(t.DeleteConfirm, m.deleteTarget.Title),
		"",
		MutedStyle.Render("[Y] "+t.Yes+"  [N] "+t.No),
	)

	return DialogStyle.Width(40).Render(content)
}

func (m Model) renderHelp() string {
	t := i18n.T()

	h := m.help
	h.ShowAll = true
	content := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(t.Help),
		h.View(m.keys),
		"",
		MutedStyle.Render("Esc "+t.KeyBack),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, DialogStyle.Render(content))
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 3 {
		return string(r[:limit])
	}
	return string(r[:limit-3]) + "..."
}
