package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzaccagnino/notely/internal/api"
	"github.com/nzaccagnino/notely/internal/session"
)

func TestCommandRegistry_Execute(t *testing.T) {
	var ran string
	var got []string
	record := func(cmd *Command, args []string) error {
		ran, got = cmd.Name, args
		return nil
	}

	r := NewCommandRegistry()
	r.SetFallback(&Command{Name: "notely", Run: record})
	r.Register(&Command{Name: "notes", Description: "List notes", Run: record})

	tests := []struct {
		args     []string
		wantCmd  string
		wantArgs []string
	}{
		{nil, "notely", nil},
		{[]string{"--open", "/archived"}, "notely", []string{"--open", "/archived"}},
		{[]string{"notes", "--archived"}, "notes", []string{"--archived"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.args), func(t *testing.T) {
			ran, got = "", nil
			require.NoError(t, r.Execute(tt.args))
			assert.Equal(t, tt.wantCmd, ran)
			assert.Equal(t, tt.wantArgs, got)
		})
	}

	err := r.Execute([]string{"bogus"})
	assert.EqualError(t, err, "unknown command: bogus")
}

func TestCommandRegistry_PrintHelp(t *testing.T) {
	r := NewCommandRegistry()
	r.Register(&Command{Name: "login", Description: "Sign in"})
	r.Register(&Command{Name: "logout", Description: "Sign out"})

	var buf bytes.Buffer
	r.PrintHelp(&buf)

	out := buf.String()
	assert.Contains(t, out, "login      Sign in")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("login ")), bytes.Index(buf.Bytes(), []byte("logout ")))
}

func TestUserMessage(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &session.Error{Kind: session.KindAuth, Op: "login", Message: "Email or password is wrong"})
	assert.Equal(t, "Email or password is wrong", userMessage(err))
	assert.Equal(t, "plain", userMessage(errors.New("plain")))
}

func TestPrintUser(t *testing.T) {
	var buf bytes.Buffer
	client := api.NewClient("http://localhost:5000/v1/")
	printUser(&buf, api.User{Name: "Ada", Email: "ada@example.com"}, client.BaseURL())
	assert.Equal(t, "Ada <ada@example.com>\n  http://localhost:5000/v1\n", buf.String())
}
