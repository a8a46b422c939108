package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nzaccagnino/notely/internal/i18n"
	"github.com/nzaccagnino/notely/internal/session"
)

func main() {
	registry := NewCommandRegistry()
	registerCommands(registry)

	if err := registry.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", i18n.T().Error, userMessage(err))
		os.Exit(1)
	}
}

// userMessage prefers the text the controller showed for a failure.
func userMessage(err error) string {
	var se *session.Error
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return err.Error()
}

func registerCommands(r *CommandRegistry) {
	r.SetFallback(&Command{
		Name:        "notely",
		Description: "Open the notes interface",
		Usage:       "notely [--open <location>] [--config <path>]",
		Examples: []string{
			"notely",
			"notely --open /archived",
			"notely --open '/?keyword=groceries'",
		},
		Run: tuiCommand,
	})

	r.Register(&Command{
		Name:        "login",
		Description: "Sign in and store the access token",
		Usage:       "notely login [--email <email>]",
		Examples:    []string{"notely login --email ada@example.com"},
		Run:         loginCommand,
	})
	r.Register(&Command{
		Name:        "register",
		Description: "Create an account",
		Usage:       "notely register --name <name> --email <email>",
		Examples:    []string{"notely register --name Ada --email ada@example.com"},
		Run:         registerCommand,
	})
	r.Register(&Command{
		Name:        "logout",
		Description: "Forget the stored access token",
		Usage:       "notely logout",
		Run:         logoutCommand,
	})
	r.Register(&Command{
		Name:        "whoami",
		Description: "Show the signed-in user",
		Usage:       "notely whoami",
		Run:         whoamiCommand,
	})
	r.Register(&Command{
		Name:        "notes",
		Description: "List notes",
		Usage:       "notely notes [--archived] [--keyword <text>]",
		Examples: []string{
			"notely notes",
			"notely notes --keyword groceries",
			"notely notes --archived",
		},
		Run: notesCommand,
	})
}
