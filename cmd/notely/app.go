package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/nzaccagnino/notely/internal/api"
	"github.com/nzaccagnino/notely/internal/config"
	"github.com/nzaccagnino/notely/internal/db"
	"github.com/nzaccagnino/notely/internal/i18n"
	"github.com/nzaccagnino/notely/internal/logging"
	"github.com/nzaccagnino/notely/internal/session"
	"github.com/nzaccagnino/notely/internal/ui"
)

// stdin is shared so that consecutive prompts do not lose buffered input.
var stdin = bufio.NewReader(os.Stdin)

// app holds the wiring shared by the interface and the subcommands.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	database *db.DB
	client   *api.Client
	ctrl     *session.Controller
	closeLog func() error
}

// loadConfig reads the config and applies the process-wide settings.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.Language != "" {
		i18n.SetLanguage(i18n.Language(cfg.Language))
	}
	ui.ApplyTheme(cfg.Theme)
	return cfg, nil
}

// newApp opens storage and builds the controller. When verbose is set, log
// records go to stderr instead of the log file.
func newApp(configPath string, notifier session.Notifier, verbose bool) (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, closeLog: func() error { return nil }}
	if verbose {
		a.logger = logging.Console(os.Stderr, "debug")
	} else {
		logger, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		a.logger, a.closeLog = logger, closeLog
	}

	database, err := db.New(cfg.StoragePath)
	if err != nil {
		a.closeLog()
		return nil, err
	}
	a.database = database

	a.client = api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(a.logger),
	)
	a.ctrl = session.NewController(a.client, db.NewTokenStore(database), notifier,
		session.WithLogger(a.logger),
	)

	a.logger.Debug().
		Str("api", cfg.API.BaseURL).
		Str("storage", cfg.StoragePath).
		Msg("notely started")
	return a, nil
}

func (a *app) Close() {
	if err := a.database.Close(); err != nil {
		a.logger.Error().Err(err).Msg("failed to close storage")
	}
	a.closeLog()
}

// printNotifier shows success and info notifications on stdout. Failures
// are reported through the returned error instead.
func printNotifier() session.Notifier {
	return session.NotifierFunc(func(n session.Notification) {
		if n.Level == session.LevelError {
			return
		}
		fmt.Println(n.Message)
	})
}

func firstTimeSetup(configPath string) error {
	fmt.Println("  Welcome to notely! / Benvenuto in notely!")
	fmt.Println()

	fmt.Println("  Select language / Seleziona lingua:")
	fmt.Println("  [1] English")
	fmt.Println("  [2] Italiano")
	fmt.Print("  > ")

	choice, err := stdin.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	cfg := config.Default()
	if strings.TrimSpace(choice) == "2" {
		cfg.Language = string(i18n.Italian)
	}
	i18n.SetLanguage(i18n.Language(cfg.Language))

	fmt.Printf("  API URL [%s]: ", cfg.API.BaseURL)
	url, err := stdin.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if url = strings.TrimSpace(url); url != "" {
		cfg.API.BaseURL = url
	}

	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	if cfg.Language == string(i18n.Italian) {
		fmt.Println("  Configurazione creata!")
		fmt.Println("  Modifica config.yml per personalizzare.")
	} else {
		fmt.Println("  Configuration created!")
		fmt.Println("  Edit config.yml to customize.")
	}
	fmt.Println()

	return nil
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when stdin is a terminal.
func promptPassword(label string) (string, error) {
	fmt.Print(label)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}

	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
