package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzaccagnino/notely/internal/api"
	"github.com/nzaccagnino/notely/internal/apitest"
	"github.com/nzaccagnino/notely/internal/db"
	"github.com/nzaccagnino/notely/internal/location"
	"github.com/nzaccagnino/notely/internal/search"
	"github.com/nzaccagnino/notely/internal/session"
)

func TestResolveRoute(t *testing.T) {
	tests := []struct {
		raw      string
		loggedIn bool
		want     Route
		wantID   string
	}{
		{"/", true, RouteHome, ""},
		{"/?keyword=gro", true, RouteHome, ""},
		{"/add", true, RouteAdd, ""},
		{"/archived/", true, RouteArchived, ""},
		{"/notes/notes-1", true, RouteDetail, "notes-1"},
		{"/notes/", true, RouteNotFound, ""},
		{"/notes/a/b", true, RouteNotFound, ""},
		{"/login", true, RouteNotFound, ""},
		{"/nowhere", true, RouteNotFound, ""},
		{"/", false, RouteLogin, ""},
		{"/archived", false, RouteLogin, ""},
		{"/register", false, RouteRegister, ""},
		{"/login", false, RouteLogin, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			loc, err := location.Parse(tt.raw)
			require.NoError(t, err)

			route, id := ResolveRoute(loc, tt.loggedIn)
			assert.Equal(t, tt.want, route)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestDetailPath(t *testing.T) {
	loc, err := location.Parse(DetailPath("notes-1"))
	require.NoError(t, err)
	route, id := ResolveRoute(loc, true)
	assert.Equal(t, RouteDetail, route)
	assert.Equal(t, "notes-1", id)
}

func TestEvents_CoalescesStateChanges(t *testing.T) {
	e := NewEvents()
	e.StateChanged(session.State{})
	e.StateChanged(session.State{})

	calls := 0
	msg := e.listen(func() session.State {
		calls++
		return session.State{Keyword: "latest"}
	})()

	require.IsType(t, stateMsg{}, msg)
	assert.Equal(t, "latest", msg.(stateMsg).Keyword)
	assert.Equal(t, 1, calls)
	assert.Empty(t, e.changed, "second change was folded into the first")
}

func TestEvents_DeliversNotifications(t *testing.T) {
	e := NewEvents()
	e.Notify(session.Notification{Level: session.LevelError, Message: "boom"})

	msg := e.listen(func() session.State { return session.State{} })()
	require.IsType(t, notificationMsg{}, msg)
	assert.Equal(t, "boom", msg.(notificationMsg).Message)
}

type harness struct {
	srv     *apitest.Server
	ctrl    *session.Controller
	history *location.History
	model   Model
}

func newHarness(t *testing.T, start string) *harness {
	t.Helper()
	srv, ts := apitest.Start(t)
	_, err := srv.AddUser("Ada", "ada@example.com", "secret123")
	require.NoError(t, err)

	loc, err := location.Parse(start)
	require.NoError(t, err)
	history := location.NewHistory(loc)

	events := NewEvents()
	ctrl := session.NewController(api.NewClient(ts.URL), db.NewTokenStore(db.NewMemoryStorage()), events)
	stop := search.Sync(ctrl.Keyword(), history)
	t.Cleanup(stop)

	h := &harness{srv: srv, ctrl: ctrl, history: history}
	h.model = NewModel(ctrl, history, events, zerolog.Nop())
	h.send(t, tea.WindowSizeMsg{Width: 100, Height: 30})
	h.run(t, h.model.restoreSession())
	h.send(t, stateMsg(ctrl.Snapshot()))
	return h
}

// send delivers msg and returns the command it produced.
func (h *harness) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := h.model.Update(msg)
	m, ok := next.(Model)
	require.True(t, ok)
	h.model = m
	return cmd
}

// run executes cmd synchronously and feeds its message back.
func (h *harness) run(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	h.send(t, cmd())
}

func (h *harness) typeText(t *testing.T, s string) {
	t.Helper()
	h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	h.typeText(t, "ada@example.com")
	h.send(t, tea.KeyMsg{Type: tea.KeyTab})
	h.typeText(t, "secret123")
	h.run(t, h.send(t, tea.KeyMsg{Type: tea.KeyEnter}))
}

func TestModel_LoggedOutShowsLogin(t *testing.T) {
	h := newHarness(t, "/archived")

	assert.False(t, h.model.state.Loading)
	assert.Equal(t, RouteLogin, h.model.route)

	h.send(t, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, RouteRegister, h.model.route)

	h.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, RouteLogin, h.model.route)
}

func TestModel_LoginFormIsBound(t *testing.T) {
	h := newHarness(t, "/")

	h.typeText(t, "ada@example.com")
	assert.Equal(t, "ada@example.com", h.model.loginEmail.Value())

	h.send(t, tea.KeyMsg{Type: tea.KeyTab})
	h.typeText(t, "secret123")
	assert.Equal(t, "secret123", h.model.loginPassword.Value())

	h.model.loginEmail.Set("other@example.com")
	h.model.loginForm.refresh()
	assert.Equal(t, "other@example.com", h.model.loginForm.fields[0].input.Value())
}

func TestModel_Login(t *testing.T) {
	h := newHarness(t, "/")
	_, err := h.srv.AddNote("ada@example.com", api.Note{ID: "n1", Title: "Groceries"})
	require.NoError(t, err)

	h.login(t)

	assert.True(t, h.model.state.LoggedIn())
	assert.Equal(t, RouteHome, h.model.route)
	assert.Empty(t, h.model.loginEmail.Value(), "form cleared after login")

	h.send(t, stateMsg(h.ctrl.Snapshot()))
	require.Len(t, h.model.currentList(), 1)
	assert.Contains(t, h.model.View(), "Groceries")
}

func TestModel_SearchUpdatesKeywordAndLocation(t *testing.T) {
	h := newHarness(t, "/")
	for _, title := range []string{"Groceries", "Work", "More groceries"} {
		_, err := h.srv.AddNote("ada@example.com", api.Note{Title: title})
		require.NoError(t, err)
	}
	h.login(t)

	h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.Equal(t, ModeSearch, h.model.mode)
	h.typeText(t, "gro")

	assert.Equal(t, "gro", h.ctrl.Keyword().Value())
	assert.Equal(t, "/?keyword=gro", h.history.Current().String())

	h.send(t, stateMsg(h.ctrl.Snapshot()))
	assert.Len(t, h.model.currentList(), 2)

	h.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeNormal, h.model.mode)
	assert.Equal(t, "gro", h.ctrl.Keyword().Value(), "leaving the field keeps the keyword")
}

func TestModel_DeepLinkKeyword(t *testing.T) {
	h := newHarness(t, "/?keyword=work")
	assert.Equal(t, "work", h.ctrl.Keyword().Value())
	assert.Equal(t, "work", h.model.search.Value())
}

func TestModel_AddNote(t *testing.T) {
	h := newHarness(t, "/")
	h.login(t)

	h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	require.Equal(t, RouteAdd, h.model.route)

	h.typeText(t, "Groceries")
	h.send(t, tea.KeyMsg{Type: tea.KeyTab})
	h.typeText(t, "milk")
	assert.Equal(t, "Groceries", h.model.addForm.titleValue.Value())
	assert.Equal(t, "milk", h.model.addForm.bodyValue.Value())

	h.run(t, h.send(t, tea.KeyMsg{Type: tea.KeyCtrlS}))
	assert.Equal(t, RouteHome, h.model.route)
	assert.Empty(t, h.model.addForm.titleValue.Value())

	notes := h.srv.Notes("ada@example.com")
	require.Len(t, notes, 1)
	assert.Equal(t, "milk", notes[0].Body)
}

func TestModel_OpenDetailAndArchive(t *testing.T) {
	h := newHarness(t, "/")
	_, err := h.srv.AddNote("ada@example.com", api.Note{ID: "n1", Title: "Groceries", Body: "milk"})
	require.NoError(t, err)
	h.login(t)
	h.send(t, stateMsg(h.ctrl.Snapshot()))

	h.run(t, h.send(t, tea.KeyMsg{Type: tea.KeyEnter}))
	require.Equal(t, RouteDetail, h.model.route)
	require.NotNil(t, h.model.detail)
	assert.Equal(t, "milk", h.model.detail.Body)

	h.run(t, h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}))
	assert.Len(t, h.ctrl.Snapshot().Archived, 1)

	h.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, RouteHome, h.model.route)
}

func TestModel_DeleteAsksForConfirmation(t *testing.T) {
	h := newHarness(t, "/")
	_, err := h.srv.AddNote("ada@example.com", api.Note{ID: "n1", Title: "Groceries"})
	require.NoError(t, err)
	h.login(t)
	h.send(t, stateMsg(h.ctrl.Snapshot()))

	h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.Equal(t, ModeConfirmDelete, h.model.mode)

	h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.Equal(t, ModeNormal, h.model.mode)
	assert.Len(t, h.srv.Notes("ada@example.com"), 1)

	h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	h.run(t, h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}))
	assert.Empty(t, h.srv.Notes("ada@example.com"))
	assert.Empty(t, h.ctrl.Snapshot().Active)
}

func TestModel_Logout(t *testing.T) {
	h := newHarness(t, "/")
	h.login(t)

	h.send(t, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.False(t, h.model.state.LoggedIn())
	assert.Equal(t, RouteLogin, h.model.route)
	require.NotNil(t, h.model.snack)
}

func TestModel_Snackbar(t *testing.T) {
	h := newHarness(t, "/")

	h.send(t, notificationMsg{Level: session.LevelError, Message: "boom"})
	require.NotNil(t, h.model.snack)
	assert.Contains(t, h.model.View(), "boom")

	h.send(t, snackExpiredMsg(h.model.snackSeq-1))
	assert.NotNil(t, h.model.snack, "stale expiry is ignored")

	h.send(t, snackExpiredMsg(h.model.snackSeq))
	assert.Nil(t, h.model.snack)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "àèì", truncate("àèìòù", 3))
}
