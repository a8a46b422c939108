package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzaccagnino/notely/internal/api"
	"github.com/nzaccagnino/notely/internal/apitest"
)

const (
	testEmail    = "ada@example.com"
	testPassword = "secret123"
)

func newLoggedInClient(t *testing.T) (*api.Client, *apitest.Server) {
	t.Helper()
	srv, ts := apitest.Start(t)
	_, err := srv.AddUser("Ada", testEmail, testPassword)
	require.NoError(t, err)

	client := api.NewClient(ts.URL)
	res, err := client.Login(context.Background(), api.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	require.False(t, res.Error, res.Message)
	client.SetToken(res.Data.AccessToken)
	return client, srv
}

func TestClient_BaseURL(t *testing.T) {
	assert.Equal(t, api.DefaultBaseURL, api.NewClient("").BaseURL())
	assert.Equal(t, "http://localhost:5000", api.NewClient("http://localhost:5000//").BaseURL())
}

func TestClient_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	_, ts := apitest.Start(t)
	client := api.NewClient(ts.URL)

	reg, err := client.Register(ctx, api.RegisterRequest{Name: "Ada", Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	assert.False(t, reg.Error)
	assert.NotEmpty(t, reg.Data.UserID)

	dup, err := client.Register(ctx, api.RegisterRequest{Name: "Ada", Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	assert.True(t, dup.Error)
	assert.Equal(t, "Email is already in use", dup.Message)

	login, err := client.Login(ctx, api.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	require.False(t, login.Error)
	require.NotEmpty(t, login.Data.AccessToken)

	client.SetToken(login.Data.AccessToken)
	assert.True(t, client.IsAuthenticated())

	me, err := client.GetUserLogged(ctx)
	require.NoError(t, err)
	require.False(t, me.Error)
	assert.Equal(t, "Ada", me.Data.Name)
	assert.Equal(t, testEmail, me.Data.Email)
}

func TestClient_APIFailuresAreResults(t *testing.T) {
	ctx := context.Background()
	srv, ts := apitest.Start(t)
	_, err := srv.AddUser("Ada", testEmail, testPassword)
	require.NoError(t, err)
	client := api.NewClient(ts.URL)

	res, err := client.Login(ctx, api.LoginRequest{Email: testEmail, Password: "wrong-password"})
	require.NoError(t, err)
	assert.True(t, res.Error)
	assert.Equal(t, "Email or password is wrong", res.Message)
	assert.Empty(t, res.Data.AccessToken)

	me, err := client.GetUserLogged(ctx)
	require.NoError(t, err)
	assert.True(t, me.Error)
}

func TestClient_BearerHeader(t *testing.T) {
	var (
		mu  sync.Mutex
		got []string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = append(got, r.Header.Get("Authorization"))
		mu.Unlock()
		w.Write([]byte(`{"status":"success","message":"ok","data":[]}`))
	}))
	t.Cleanup(ts.Close)

	client := api.NewClient(ts.URL)
	ctx := context.Background()

	_, err := client.GetActiveNotes(ctx)
	require.NoError(t, err)

	client.SetToken("tok")
	_, err = client.GetActiveNotes(ctx)
	require.NoError(t, err)

	client.SetToken("")
	_, err = client.GetActiveNotes(ctx)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"", "Bearer tok", ""}, got)
}

func TestClient_EnvelopeForms(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantError   bool
		wantMessage string
		wantNotes   int
	}{
		{
			name:      "status success",
			status:    http.StatusOK,
			body:      `{"status":"success","message":"ok","data":[{"id":"a","title":"A"}]}`,
			wantNotes: 1,
		},
		{
			name:      "error flag false",
			status:    http.StatusOK,
			body:      `{"error":false,"message":"ok","data":[{"id":"a"},{"id":"b"}]}`,
			wantNotes: 2,
		},
		{
			name:        "error flag true",
			status:      http.StatusOK,
			body:        `{"error":true,"message":"nope"}`,
			wantError:   true,
			wantMessage: "nope",
		},
		{
			name:        "status fail",
			status:      http.StatusBadRequest,
			body:        `{"status":"fail","message":"bad"}`,
			wantError:   true,
			wantMessage: "bad",
		},
		{
			name:        "empty body on server error",
			status:      http.StatusInternalServerError,
			body:        ``,
			wantError:   true,
			wantMessage: "request failed with status 500",
		},
		{
			name:        "html error page",
			status:      http.StatusBadGateway,
			body:        `<html>bad gateway</html>`,
			wantError:   true,
			wantMessage: "request failed with status 502",
		},
		{
			name:      "null data",
			status:    http.StatusOK,
			body:      `{"status":"success","message":"ok","data":null}`,
			wantNotes: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			t.Cleanup(ts.Close)

			res, err := api.NewClient(ts.URL).GetActiveNotes(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantError, res.Error)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, res.Message)
			}
			assert.Len(t, res.Data, tt.wantNotes)
		})
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	client, srv := newLoggedInClient(t)
	srv.FailRaw(apitest.RouteActiveNotes, http.StatusOK, `{"status":"success","data":`)

	_, err := client.GetActiveNotes(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsTransport(err))
	assert.ErrorIs(t, err, api.ErrMalformedResponse)

	srv.FailRaw(apitest.RouteActiveNotes, http.StatusOK, `{"status":"success","data":{"id":"x"}}`)
	_, err = client.GetActiveNotes(context.Background())
	assert.ErrorIs(t, err, api.ErrMalformedResponse)
}

func TestClient_EmptySuccessBody(t *testing.T) {
	client, srv := newLoggedInClient(t)
	ctx := context.Background()

	srv.FailRaw(apitest.RouteMe, http.StatusOK, "")
	_, err := client.GetUserLogged(ctx)
	require.Error(t, err)
	assert.True(t, api.IsTransport(err))
	assert.ErrorIs(t, err, api.ErrMalformedResponse)

	srv.FailRaw(apitest.RouteActiveNotes, http.StatusOK, "  \n")
	_, err = client.GetActiveNotes(ctx)
	assert.ErrorIs(t, err, api.ErrMalformedResponse)

	// calls without data may answer with an empty body
	srv.FailRaw(apitest.RouteDeleteNote, http.StatusOK, "")
	res, err := client.DeleteNote(ctx, "n1")
	require.NoError(t, err)
	assert.False(t, res.Error)
}

func TestClient_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	client := api.NewClient(url, api.WithTimeout(time.Second))
	_, err := client.GetUserLogged(context.Background())
	require.Error(t, err)

	var te *api.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "GET /users/me", te.Op)
}

func TestClient_RateLimited(t *testing.T) {
	srv, ts := apitest.Start(t, apitest.WithRateLimit(2, time.Minute))
	_, err := srv.AddUser("Ada", testEmail, testPassword)
	require.NoError(t, err)
	client := api.NewClient(ts.URL)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.Login(ctx, api.LoginRequest{Email: testEmail, Password: testPassword})
		require.NoError(t, err)
	}

	res, err := client.Login(ctx, api.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	assert.True(t, res.Error)
	assert.Equal(t, "rate limit exceeded", res.Message)
}

func TestClient_NoteLifecycle(t *testing.T) {
	ctx := context.Background()
	client, _ := newLoggedInClient(t)

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	add, err := client.AddNote(ctx, api.Note{ID: "notes-1", Title: "Groceries", Body: "milk", CreatedAt: created})
	require.NoError(t, err)
	require.False(t, add.Error, add.Message)
	assert.Equal(t, "notes-1", add.Data.ID)

	active, err := client.GetActiveNotes(ctx)
	require.NoError(t, err)
	require.Len(t, active.Data, 1)
	assert.Equal(t, "Groceries", active.Data[0].Title)
	assert.True(t, created.Equal(active.Data[0].CreatedAt))

	arch, err := client.ArchiveNote(ctx, "notes-1")
	require.NoError(t, err)
	assert.False(t, arch.Error)

	// archiving twice is accepted
	arch, err = client.ArchiveNote(ctx, "notes-1")
	require.NoError(t, err)
	assert.False(t, arch.Error)

	archived, err := client.GetArchivedNotes(ctx)
	require.NoError(t, err)
	require.Len(t, archived.Data, 1)
	assert.True(t, archived.Data[0].Archived)

	active, err = client.GetActiveNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, active.Data)

	unarch, err := client.UnarchiveNote(ctx, "notes-1")
	require.NoError(t, err)
	assert.False(t, unarch.Error)

	note, err := client.GetNote(ctx, "notes-1")
	require.NoError(t, err)
	assert.False(t, note.Data.Archived)

	del, err := client.DeleteNote(ctx, "notes-1")
	require.NoError(t, err)
	assert.False(t, del.Error)

	missing, err := client.GetNote(ctx, "notes-1")
	require.NoError(t, err)
	assert.True(t, missing.Error)

	del, err = client.DeleteNote(ctx, "notes-1")
	require.NoError(t, err)
	assert.True(t, del.Error)
}

func TestClient_EscapesNoteID(t *testing.T) {
	paths := make(chan string, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.EscapedPath()
		w.Write([]byte(`{"status":"success","message":"ok"}`))
	}))
	t.Cleanup(ts.Close)

	_, err := api.NewClient(ts.URL).DeleteNote(context.Background(), "a/b c")
	require.NoError(t, err)
	assert.Equal(t, "/notes/a%2Fb%20c", <-paths)
}
