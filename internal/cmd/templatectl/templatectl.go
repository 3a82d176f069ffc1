// Package templatectl parses templatectl flags and runs the template actions
// from a terminal.
package templatectl

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/text/message"

	entrypoint "github.com/louisbranch/templatedesk/internal/platform/cmd"
	apperrors "github.com/louisbranch/templatedesk/internal/platform/errors"
	"github.com/louisbranch/templatedesk/internal/platform/i18n"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/actions"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/api"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/storage/sqlite"
)

// ErrActionFailed reports that an action ran and failed. Whatever the user
// should see has already been written; callers only set the exit status.
var ErrActionFailed = errors.New("action failed")

// Config holds templatectl configuration. Environment variables carry the
// TEMPLATEDESK_ prefix.
type Config struct {
	BaseURL   string        `env:"BASE_URL" envDefault:"http://localhost:8000"`
	SessionID string        `env:"SESSION_ID"`
	CSRFToken string        `env:"CSRF_TOKEN"`
	DBPath    string        `env:"DB_PATH" envDefault:"data/templatedesk.db"`
	Lang      string        `env:"LANG" envDefault:"en-US"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"0s"`

	AssumeYes bool
	NoJournal bool
	Verbose   bool

	Command string
	Args    []string
}

// ParseConfig parses environment and global flags into Config. The first
// remaining argument names the subcommand.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Console base URL")
	fs.StringVar(&cfg.SessionID, "session", cfg.SessionID, "Console session id")
	fs.StringVar(&cfg.CSRFToken, "csrf-token", cfg.CSRFToken, "Console CSRF token")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Action journal path")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "Language for prompts: "+supportedLanguages())
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Bound on each action (0 = none)")
	fs.BoolVar(&cfg.AssumeYes, "yes", false, "Pick the affirmative choice in every dialog")
	fs.BoolVar(&cfg.NoJournal, "no-journal", false, "Do not record outcomes")
	fs.BoolVar(&cfg.Verbose, "v", false, "Log failures to stderr")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return Config{}, fmt.Errorf("command is required: %s", strings.Join(commandNames(), ", "))
	}
	cfg.Command = rest[0]
	cfg.Args = rest[1:]
	return cfg, nil
}

// Stdio bundles the streams a command talks through.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// OSStdio returns the process streams.
func OSStdio() Stdio {
	return Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Run executes the configured subcommand.
func Run(ctx context.Context, cfg Config, stdio Stdio) error {
	cmd, ok := commands[cfg.Command]
	if !ok {
		return fmt.Errorf("unknown command %q: want one of %s", cfg.Command, strings.Join(commandNames(), ", "))
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTemplatectl, func(ctx context.Context) error {
		env := &runtime{cfg: cfg, stdio: stdio, printer: i18n.Printer(i18n.ResolveTag(cfg.Lang))}
		defer env.close()
		return cmd.run(ctx, env, cfg.Args)
	})
}

// runtime holds what subcommands share. The client, journal and controller
// are built on first use so commands that need none of them stay offline.
type runtime struct {
	cfg     Config
	stdio   Stdio
	printer *message.Printer

	store   *sqlite.Store
	dialogs *terminalDialogs
	page    *terminalPage
}

func (r *runtime) logger() *log.Logger {
	if r.cfg.Verbose {
		return log.New(r.stdio.Err, log.Prefix(), log.Flags())
	}
	return log.New(io.Discard, "", 0)
}

func (r *runtime) client() (*api.Client, error) {
	return api.NewClient(api.Config{
		BaseURL:   r.cfg.BaseURL,
		SessionID: r.cfg.SessionID,
		CSRFToken: r.cfg.CSRFToken,
	})
}

func (r *runtime) journalStore(ctx context.Context) (*sqlite.Store, error) {
	if r.store != nil {
		return r.store, nil
	}
	store, err := sqlite.Open(ctx, r.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	r.store = store
	return store, nil
}

// controller wires an actions controller to the terminal. answers pre-fills
// dialog fields the user would otherwise type.
func (r *runtime) controller(ctx context.Context, answers map[string]string) (*actions.Controller, error) {
	client, err := r.client()
	if err != nil {
		return nil, err
	}
	r.dialogs = newTerminalDialogs(r.stdio.In, r.stdio.Out, r.printer, r.cfg.AssumeYes, answers)
	r.page = newTerminalPage(r.stdio.Out, r.stdio.Err, r.printer, client.BaseURL())
	cfg := actions.Config{
		API:     client,
		Dialogs: r.dialogs,
		Page:    r.page,
		Logger:  r.logger(),
	}
	if !r.cfg.NoJournal {
		store, err := r.journalStore(ctx)
		if err != nil {
			return nil, err
		}
		cfg.Journal = actions.NewStoreJournal(store)
	}
	return actions.New(cfg)
}

// actionContext bounds ctx by the configured timeout.
func (r *runtime) actionContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, r.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

func (r *runtime) close() {
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			log.Printf("close journal: %v", err)
		}
	}
}

// finish turns an outcome into the command result. Failures found before any
// request was sent are reported; console and transport failures stay silent
// apart from the exit status.
func finish(outcome actions.Outcome) error {
	if !outcome.Failed() {
		return nil
	}
	if apperrors.CodeOf(outcome.Err).Local() {
		return outcome.Err
	}
	return ErrActionFailed
}

func supportedLanguages() string {
	tags := i18n.Supported()
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.String())
	}
	return strings.Join(names, ", ")
}
