package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nzaccagnino/notely/internal/config"
)

// Command is a notely subcommand.
type Command struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Run         func(cmd *Command, args []string) error
}

// NewFlagSet returns a flag set carrying the shared -config flag.
func (c *Command) NewFlagSet() (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(c.Name, flag.ExitOnError)
	fs.Usage = func() { c.PrintUsage(fs) }
	configPath := fs.String("config", config.DefaultConfigPath(), "Path to config.yml")
	return fs, configPath
}

func (c *Command) PrintUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, "%s\n\n", c.Description)
	fmt.Fprintf(os.Stderr, "USAGE:\n    %s\n\n", c.Usage)
	fmt.Fprintln(os.Stderr, "FLAGS:")
	fs.PrintDefaults()
	if len(c.Examples) > 0 {
		fmt.Fprintf(os.Stderr, "\nEXAMPLES:\n")
		for _, example := range c.Examples {
			fmt.Fprintf(os.Stderr, "    %s\n", example)
		}
	}
}

// CommandRegistry dispatches os.Args to a registered command. With no
// command, or when the first argument is a flag, the fallback runs.
type CommandRegistry struct {
	commands map[string]*Command
	order    []string
	fallback *Command
}

func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{commands: make(map[string]*Command)}
}

func (r *CommandRegistry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	r.order = append(r.order, cmd.Name)
}

func (r *CommandRegistry) SetFallback(cmd *Command) {
	r.fallback = cmd
}

func (r *CommandRegistry) Execute(args []string) error {
	if len(args) == 0 || (strings.HasPrefix(args[0], "-") && !isHelp(args[0])) {
		return r.fallback.Run(r.fallback, args)
	}

	name := args[0]
	if isHelp(name) {
		r.PrintHelp(os.Stdout)
		return nil
	}

	cmd, ok := r.commands[name]
	if !ok {
		r.PrintHelp(os.Stderr)
		return fmt.Errorf("unknown command: %s", name)
	}
	return cmd.Run(cmd, args[1:])
}

func isHelp(arg string) bool {
	switch arg {
	case "help", "-h", "--help":
		return true
	}
	return false
}

func (r *CommandRegistry) PrintHelp(w io.Writer) {
	printLogo(w)
	fmt.Fprintln(w, "notely - terminal client for the notes API")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "    notely [--open <location>]      start the interface")
	fmt.Fprintln(w, "    notely <command> [arguments]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "COMMANDS:")
	for _, name := range r.order {
		cmd := r.commands[name]
		fmt.Fprintf(w, "    %-10s %s\n", cmd.Name, cmd.Description)
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'notely <command> --help' for more information on a command.")
}

func printLogo(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  ███╗   ██╗ ██████╗ ████████╗███████╗██╗  ██╗   ██╗")
	fmt.Fprintln(w, "  ████╗  ██║██╔═══██╗╚══██╔══╝██╔════╝██║  ╚██╗ ██╔╝")
	fmt.Fprintln(w, "  ██╔██╗ ██║██║   ██║   ██║   █████╗  ██║   ╚████╔╝ ")
	fmt.Fprintln(w, "  ██║╚██╗██║██║   ██║   ██║   ██╔══╝  ██║    ╚██╔╝  ")
	fmt.Fprintln(w, "  ██║ ╚████║╚██████╔╝   ██║   ███████╗███████╗██║   ")
	fmt.Fprintln(w, "  ╚═╝  ╚═══╝ ╚═════╝    ╚═╝   ╚══════╝╚══════╝╚═╝   ")
	fmt.Fprintln(w)
}
