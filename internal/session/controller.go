// Package session owns authentication state and the note collections, and
// mediates between the presentation layer and the remote notes API.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nzaccagnino/notely/internal/api"
	"github.com/nzaccagnino/notely/internal/binding"
	"github.com/nzaccagnino/notely/internal/i18n"
	"github.com/nzaccagnino/notely/internal/search"
)

const MinPasswordLength = 6

// NotesAPI is the subset of the API gateway client the controller drives.
type NotesAPI interface {
	SetToken(token string)
	Register(ctx context.Context, req api.RegisterRequest) (api.Result[api.RegisterData], error)
	Login(ctx context.Context, req api.LoginRequest) (api.Result[api.LoginData], error)
	GetUserLogged(ctx context.Context) (api.Result[api.User], error)
	GetActiveNotes(ctx context.Context) (api.Result[[]api.Note], error)
	GetArchivedNotes(ctx context.Context) (api.Result[[]api.Note], error)
	GetNote(ctx context.Context, id string) (api.Result[api.Note], error)
	AddNote(ctx context.Context, note api.Note) (api.Result[api.Note], error)
	DeleteNote(ctx context.Context, id string) (api.Result[struct{}], error)
	ArchiveNote(ctx context.Context, id string) (api.Result[struct{}], error)
	UnarchiveNote(ctx context.Context, id string) (api.Result[struct{}], error)
}

// TokenStore is the durable home of the access token.
type TokenStore interface {
	Token() (string, bool, error)
	PutToken(token string) error
	RemoveToken() error
}

type Credentials struct {
	Email    string
	Password string
}

type Registration struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// NoteInput carries the user-supplied fields of a new note. A zero CreatedAt
// is replaced by the current time.
type NoteInput struct {
	Title     string
	Body      string
	CreatedAt time.Time
	Archived  bool
}

// State is a point-in-time copy of everything the presentation layer renders.
type State struct {
	Loading  bool
	User     *api.User
	Active   []api.Note
	Visible  []api.Note
	Archived []api.Note
	Keyword  string
}

func (s State) LoggedIn() bool {
	return s.User != nil
}

type Option func(*Controller)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) {
		c.newID = newID
	}
}

type subscriber struct {
	fn     func(State)
	active atomic.Bool
}

type Controller struct {
	api      NotesAPI
	tokens   TokenStore
	notifier Notifier
	logger   zerolog.Logger
	now      func() time.Time
	newID    func() string

	mu       sync.Mutex
	session  Session
	epoch    uint64
	loading  bool
	archived []api.Note
	view     *search.View

	keyword *binding.Binding[string]

	readyOnce sync.Once
	ready     chan struct{}

	subsMu sync.Mutex
	subs   map[int]*subscriber
	nextID int
}

func NewController(client NotesAPI, tokens TokenStore, notifier Notifier, opts ...Option) *Controller {
	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}
	c := &Controller{
		api:      client,
		tokens:   tokens,
		notifier: notifier,
		logger:   zerolog.Nop(),
		now:      time.Now,
		newID:    newNoteID,
		loading:  true,
		view:     search.NewView(),
		keyword:  binding.New(""),
		ready:    make(chan struct{}),
		subs:     make(map[int]*subscriber),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.keyword.OnChange(func(k string) {
		c.view.SetKeyword(k)
		c.publish()
	})

	return c
}

func newNoteID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "notes-" + uuid.NewString()
	}
	return "notes-" + id.String()
}

// Ready is closed once the controller has left its initial loading state.
func (c *Controller) Ready() <-chan struct{} {
	return c.ready
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Loading:  c.loading,
		Active:   c.view.All(),
		Visible:  c.view.Notes(),
		Archived: c.archived,
		Keyword:  c.view.Keyword(),
	}
	if u, ok := c.session.User(); ok {
		s.User = &u
	}
	return s
}

// Session returns a copy of the current session.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Subscribe registers fn for state changes. After unsubscribe returns, fn is
// not called again.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	sub := &subscriber{fn: fn}
	sub.active.Store(true)

	c.subsMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = sub
	c.subsMu.Unlock()

	return func() {
		sub.active.Store(false)
		c.subsMu.Lock()
		delete(c.subs, id)
		c.subsMu.Unlock()
	}
}

func (c *Controller) publish() {
	state := c.Snapshot()

	c.subsMu.Lock()
	subs := make([]*subscriber, 0, len(c.subs))
	for _, s := range c.subs {
		subs = append(subs, s)
	}
	c.subsMu.Unlock()

	for _, s := range subs {
		if s.active.Load() {
			s.fn(state)
		}
	}
}

func (c *Controller) notify(level Level, message string) {
	c.notifier.Notify(Notification{Level: level, Message: message})
}

// fail logs, notifies and builds the error returned by an operation.
func (c *Controller) fail(kind Kind, op, message string, err error) error {
	c.logger.Warn().Err(err).Str("op", op).Str("kind", string(kind)).Msg(message)
	c.notify(LevelError, message)
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

func (c *Controller) currentEpoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// apply runs fn under the state lock if no login or logout happened since
// epoch was read. Results of requests issued for a previous session are
// dropped.
func (c *Controller) apply(epoch uint64, fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return false
	}
	fn()
	return true
}

func (c *Controller) finishLoading() {
	c.readyOnce.Do(func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
		close(c.ready)
	})
}

// Auth

func (c *Controller) Login(ctx context.Context, creds Credentials) (api.User, error) {
	t := i18n.T()
	const op = "login"

	res, err := c.api.Login(ctx, api.LoginRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return api.User{}, c.fail(KindTransport, op, t.GenericError, err)
	}
	if res.Error || res.Data.AccessToken == "" {
		return api.User{}, c.fail(KindAuth, op, messageOr(res.Message, t.LoginError), nil)
	}

	token := res.Data.AccessToken
	if err := c.tokens.PutToken(token); err != nil {
		return api.User{}, c.fail(KindAuth, op, t.StorageError, err)
	}
	c.api.SetToken(token)

	user, err := c.fetchUser(ctx)
	if err != nil {
		c.api.SetToken("")
		if rmErr := c.tokens.RemoveToken(); rmErr != nil {
			c.logger.Error().Err(rmErr).Msg("failed to remove token after login failure")
		}
		if api.IsTransport(err) {
			return api.User{}, c.fail(KindTransport, op, t.GenericError, err)
		}
		return api.User{}, c.fail(KindAuth, op, messageOr(err.Error(), t.LoginError), nil)
	}

	c.mu.Lock()
	c.epoch++
	c.session.Begin(token, user)
	c.mu.Unlock()
	c.finishLoading()
	c.publish()

	c.logger.Info().Str("user", user.Email).Msg("logged in")
	c.notify(LevelSuccess, fmt.Sprintf(t.LoginSuccess, user.Name))

	_ = c.Refresh(ctx)
	return user, nil
}

type userError string

func (e userError) Error() string { return string(e) }

func (c *Controller) fetchUser(ctx context.Context) (api.User, error) {
	res, err := c.api.GetUserLogged(ctx)
	if err != nil {
		return api.User{}, err
	}
	if res.Error {
		return api.User{}, userError(res.Message)
	}
	return res.Data, nil
}

func (c *Controller) Register(ctx context.Context, reg Registration) error {
	t := i18n.T()
	const op = "register"

	switch {
	case strings.TrimSpace(reg.Name) == "" || strings.TrimSpace(reg.Email) == "" || reg.Password == "":
		return c.fail(KindValidation, op, t.FieldsRequired, nil)
	case len(reg.Password) < MinPasswordLength:
		return c.fail(KindValidation, op, fmt.Sprintf(t.PasswordTooShort, MinPasswordLength), nil)
	case reg.Password != reg.ConfirmPassword:
		return c.fail(KindValidation, op, t.PasswordMismatch, nil)
	}

	res, err := c.api.Register(ctx, api.RegisterRequest{
		Name:     strings.TrimSpace(reg.Name),
		Email:    strings.TrimSpace(reg.Email),
		Password: reg.Password,
	})
	if err != nil {
		return c.fail(KindTransport, op, t.GenericError, err)
	}
	if res.Error {
		return c.fail(KindAuth, op, messageOr(res.Message, t.RegisterError), nil)
	}

	c.notify(LevelSuccess, t.RegisterSuccess)
	return nil
}

// Logout forgets the session and the loaded notes. It never touches the network.
func (c *Controller) Logout() error {
	err := c.tokens.RemoveToken()
	c.api.SetToken("")

	c.mu.Lock()
	c.epoch++
	c.session.Clear()
	c.archived = nil
	c.view.SetNotes(nil)
	c.mu.Unlock()

	c.keyword.Set("")
	c.publish()

	if err != nil {
		c.logger.Error().Err(err).Msg("failed to remove token")
		return &Error{Kind: KindAuth, Op: "logout", Message: i18n.T().StorageError, Err: err}
	}
	c.logger.Info().Msg("logged out")
	return nil
}

// RestoreSession validates a stored token once at startup. Every outcome ends
// the loading state; failures fall back to a logged-out session silently.
func (c *Controller) RestoreSession(ctx context.Context) error {
	epoch := c.currentEpoch()

	token, ok, err := c.tokens.Token()
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to read stored token")
		c.finishLoading()
		c.publish()
		return &Error{Kind: KindAuth, Op: "restore", Message: "failed to read stored token", Err: err}
	}
	if !ok {
		c.finishLoading()
		c.publish()
		return nil
	}

	c.api.SetToken(token)
	user, err := c.fetchUser(ctx)
	if err != nil {
		c.api.SetToken("")
		if !api.IsTransport(err) {
			// The server rejected the token; it will not become valid later.
			if rmErr := c.tokens.RemoveToken(); rmErr != nil {
				c.logger.Error().Err(rmErr).Msg("failed to remove rejected token")
			}
		}
		c.logger.Info().Err(err).Msg("stored session not restored")
		c.finishLoading()
		c.publish()
		return &Error{Kind: KindAuth, Op: "restore", Message: "stored session not restored", Err: err}
	}

	restored := c.apply(epoch, func() {
		c.epoch++
		c.session.Begin(token, user)
	})
	c.finishLoading()
	c.publish()
	if !restored {
		return nil
	}

	c.logger.Info().Str("user", user.Email).Msg("session restored")
	_ = c.Refresh(ctx)
	return nil
}

// Collections

func (c *Controller) LoadActiveNotes(ctx context.Context) error {
	t := i18n.T()
	const op = "load active notes"
	epoch := c.currentEpoch()

	res, err := c.api.GetActiveNotes(ctx)
	if err != nil {
		return c.fail(KindTransport, op, t.GenericError, err)
	}
	if res.Error {
		return c.fail(KindFetch, op, t.FetchNotesError, userError(res.Message))
	}

	if !c.apply(epoch, func() { c.view.SetNotes(res.Data) }) {
		c.logger.Debug().Str("op", op).Msg("discarded result for previous session")
		return nil
	}
	c.publish()
	return nil
}

func (c *Controller) LoadArchivedNotes(ctx context.Context) error {
	t := i18n.T()
	const op = "load archived notes"
	epoch := c.currentEpoch()

	res, err := c.api.GetArchivedNotes(ctx)
	if err != nil {
		return c.fail(KindTransport, op, t.GenericError, err)
	}
	if res.Error {
		return c.fail(KindFetch, op, t.FetchArchivedError, userError(res.Message))
	}

	if !c.apply(epoch, func() { c.archived = res.Data }) {
		c.logger.Debug().Str("op", op).Msg("discarded result for previous session")
		return nil
	}
	c.publish()
	return nil
}

// Refresh reloads both collections concurrently. Each result is applied to
// its own collection as soon as it arrives.
func (c *Controller) Refresh(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return c.LoadActiveNotes(ctx) })
	g.Go(func() error { return c.LoadArchivedNotes(ctx) })
	return g.Wait()
}

// Mutations

// AddNote submits a new note and refreshes both collections. The note is not
// assumed visible until that refresh completes.
func (c *Controller) AddNote(ctx context.Context, in NoteInput) (api.Note, error) {
	t := i18n.T()
	const op = "add note"

	if strings.TrimSpace(in.Title) == "" {
		return api.Note{}, c.fail(KindValidation, op, t.TitleRequired, nil)
	}

	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = c.now()
	}
	note := api.Note{
		ID:        c.newID(),
		Title:     in.Title,
		Body:      in.Body,
		CreatedAt: createdAt,
		Archived:  in.Archived,
	}

	res, err := c.api.AddNote(ctx, note)
	var opErr error
	switch {
	case err != nil:
		opErr = c.fail(KindTransport, op, t.GenericError, err)
	case res.Error:
		opErr = c.fail(KindMutation, op, messageOr(res.Message, t.AddNoteError), nil)
	default:
		if res.Data.ID != "" {
			note = res.Data
		}
		c.logger.Info().Str("id", note.ID).Msg("note added")
		c.notify(LevelSuccess, t.NoteAdded)
	}

	_ = c.Refresh(ctx)
	return note, opErr
}

func (c *Controller) DeleteNote(ctx context.Context, id string) error {
	t := i18n.T()
	return c.mutate(ctx, "delete note", id, c.api.DeleteNote, t.NoteDeleted, t.DeleteNoteError)
}

func (c *Controller) ArchiveNote(ctx context.Context, id string) error {
	t := i18n.T()
	return c.mutate(ctx, "archive note", id, c.api.ArchiveNote, t.NoteArchived, t.ArchiveNoteError)
}

func (c *Controller) UnarchiveNote(ctx context.Context, id string) error {
	t := i18n.T()
	return c.mutate(ctx, "unarchive note", id, c.api.UnarchiveNote, t.NoteUnarchived, t.UnarchiveNoteError)
}

// mutate submits one mutation, reports its outcome and then refreshes both
// collections whatever the outcome was.
func (c *Controller) mutate(
	ctx context.Context,
	op, id string,
	call func(context.Context, string) (api.Result[struct{}], error),
	success, failure string,
) error {
	res, err := call(ctx, id)
	var opErr error
	switch {
	case err != nil:
		opErr = c.fail(KindTransport, op, i18n.T().GenericError, err)
	case res.Error:
		opErr = c.fail(KindMutation, op, failure, userError(res.Message))
	default:
		c.logger.Info().Str("op", op).Str("id", id).Msg("mutation applied")
		c.notify(LevelSuccess, success)
	}

	_ = c.Refresh(ctx)
	return opErr
}

// Note returns the note with id from the loaded collections, asking the
// server when it is not loaded.
func (c *Controller) Note(ctx context.Context, id string) (api.Note, error) {
	c.mu.Lock()
	for _, list := range [][]api.Note{c.view.All(), c.archived} {
		for _, n := range list {
			if n.ID == id {
				c.mu.Unlock()
				return n, nil
			}
		}
	}
	c.mu.Unlock()

	res, err := c.api.GetNote(ctx, id)
	if err != nil {
		c.logger.Warn().Err(err).Str("id", id).Msg("failed to fetch note")
		return api.Note{}, &Error{Kind: KindTransport, Op: "get note", Message: i18n.T().GenericError, Err: err}
	}
	if res.Error {
		return api.Note{}, &Error{Kind: KindFetch, Op: "get note", Message: res.Message, Err: ErrNotFound}
	}
	return res.Data, nil
}

// Search

// Keyword is the search keyword binding; the location sync attaches to it.
func (c *Controller) Keyword() *binding.Binding[string] {
	return c.keyword
}

func (c *Controller) SetKeyword(keyword string) {
	c.keyword.Set(keyword)
}

func (c *Controller) VisibleNotes() []api.Note {
	return c.view.Notes()
}

func messageOr(message, fallback string) string {
	if strings.TrimSpace(message) == "" {
		return fallback
	}
	return message
}
