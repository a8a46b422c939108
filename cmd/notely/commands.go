package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/nzaccagnino/notely/internal/api"
	"github.com/nzaccagnino/notely/internal/config"
	"github.com/nzaccagnino/notely/internal/i18n"
	"github.com/nzaccagnino/notely/internal/location"
	"github.com/nzaccagnino/notely/internal/search"
	"github.com/nzaccagnino/notely/internal/session"
	"github.com/nzaccagnino/notely/internal/ui"
)

func tuiCommand(cmd *Command, args []string) error {
	fs, configPath := cmd.NewFlagSet()
	open := fs.String("open", ui.PathHome, "Location to open, e.g. /notes/<id> or /?keyword=<text>")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !config.ConfigExists(*configPath) && term.IsTerminal(int(os.Stdin.Fd())) {
		printLogo(os.Stdout)
		if err := firstTimeSetup(*configPath); err != nil {
			return err
		}
	}

	start, err := location.Parse(*open)
	if err != nil {
		return fmt.Errorf("invalid location %q: %w", *open, err)
	}

	events := ui.NewEvents()
	a, err := newApp(*configPath, events, false)
	if err != nil {
		return err
	}
	defer a.Close()

	history := location.NewHistory(start)
	stop := search.Sync(a.ctrl.Keyword(), history)
	defer stop()

	m := ui.NewModel(a.ctrl, history, events, a.logger)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interface: %w", err)
	}
	return nil
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func loginCommand(cmd *Command, args []string) error {
	fs, configPath := cmd.NewFlagSet()
	email := fs.String("email", "", "Account email")
	verbose := fs.Bool("v", false, "Log to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(*configPath, printNotifier(), *verbose)
	if err != nil {
		return err
	}
	defer a.Close()

	t := i18n.T()
	if *email == "" {
		if *email, err = prompt(t.EmailPrompt); err != nil {
			return err
		}
	}
	password, err := promptPassword(t.PasswordPrompt)
	if err != nil {
		return err
	}

	ctx, cancel := interruptContext()
	defer cancel()

	_, err = a.ctrl.Login(ctx, session.Credentials{Email: *email, Password: password})
	return err
}

func registerCommand(cmd *Command, args []string) error {
	fs, configPath := cmd.NewFlagSet()
	name := fs.String("name", "", "Display name")
	email := fs.String("email", "", "Account email")
	verbose := fs.Bool("v", false, "Log to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(*configPath, printNotifier(), *verbose)
	if err != nil {
		return err
	}
	defer a.Close()

	t := i18n.T()
	if *name == "" {
		if *name, err = prompt(t.NamePrompt); err != nil {
			return err
		}
	}
	if *email == "" {
		if *email, err = prompt(t.EmailPrompt); err != nil {
			return err
		}
	}
	password, err := promptPassword(t.PasswordPrompt)
	if err != nil {
		return err
	}
	confirm, err := promptPassword(t.ConfirmPasswordPrompt)
	if err != nil {
		return err
	}

	ctx, cancel := interruptContext()
	defer cancel()

	return a.ctrl.Register(ctx, session.Registration{
		Name:            *name,
		Email:           *email,
		Password:        password,
		ConfirmPassword: confirm,
	})
}

func logoutCommand(cmd *Command, args []string) error {
	fs, configPath := cmd.NewFlagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(*configPath, printNotifier(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.ctrl.Logout(); err != nil {
		return err
	}
	fmt.Println(i18n.T().LogoutSuccess)
	return nil
}

// restored opens the app and restores the stored session, failing when no
// user is signed in.
func restored(configPath string, verbose bool) (*app, error) {
	a, err := newApp(configPath, printNotifier(), verbose)
	if err != nil {
		return nil, err
	}

	ctx, cancel := interruptContext()
	defer cancel()

	err = a.ctrl.RestoreSession(ctx)
	if !a.ctrl.Snapshot().LoggedIn() {
		a.Close()
		if api.IsTransport(err) {
			return nil, errors.New(i18n.T().GenericError)
		}
		return nil, errors.New(i18n.T().NotLoggedIn)
	}
	return a, nil
}

func whoamiCommand(cmd *Command, args []string) error {
	fs, configPath := cmd.NewFlagSet()
	verbose := fs.Bool("v", false, "Log to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := restored(*configPath, *verbose)
	if err != nil {
		return err
	}
	defer a.Close()

	printUser(os.Stdout, *a.ctrl.Snapshot().User, a.client.BaseURL())
	return nil
}

func printUser(w io.Writer, user api.User, server string) {
	fmt.Fprintf(w, "%s <%s>\n", user.Name, user.Email)
	fmt.Fprintf(w, "  %s\n", server)
}

func notesCommand(cmd *Command, args []string) error {
	fs, configPath := cmd.NewFlagSet()
	archived := fs.Bool("archived", false, "List archived notes")
	keyword := fs.String("keyword", "", "Only notes whose title contains this text")
	verbose := fs.Bool("v", false, "Log to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := restored(*configPath, *verbose)
	if err != nil {
		return err
	}
	defer a.Close()

	t := i18n.T()
	var notes []api.Note
	if *archived {
		notes = a.ctrl.Snapshot().Archived
	} else {
		a.ctrl.SetKeyword(*keyword)
		notes = a.ctrl.VisibleNotes()
	}

	if len(notes) == 0 {
		switch {
		case *archived:
			fmt.Println(t.EmptyArchived)
		case *keyword != "":
			fmt.Printf(t.EmptySearch+"\n", *keyword)
		default:
			fmt.Println(t.EmptyNotes)
		}
		return nil
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", t.TitleLabel, t.CreatedAt)
	for _, n := range notes {
		tbl.Row(n.ID, n.Title, n.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Println(tbl)
	return nil
}
