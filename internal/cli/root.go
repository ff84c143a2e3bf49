package cli

import (
	"database/sql"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/lt/internal/cli/formatter"
	"github.com/alexanderramin/lt/internal/config"
	"github.com/alexanderramin/lt/internal/credentials"
	"github.com/alexanderramin/lt/internal/service"
	"github.com/alexanderramin/lt/internal/tracker"
	"github.com/spf13/cobra"
)

// TrackerFactory creates the Jira and Tempo clients once the instance and
// token are known.
type TrackerFactory func(cfg tracker.Config, observer tracker.Observer, loc *time.Location) (tracker.Jira, tracker.Tempo, error)

// DefaultTrackers creates the REST clients.
func DefaultTrackers(cfg tracker.Config, observer tracker.Observer, loc *time.Location) (tracker.Jira, tracker.Tempo, error) {
	jira, err := tracker.NewJiraClient(cfg, observer)
	if err != nil {
		return nil, nil, err
	}
	return jira, tracker.NewTempoClient(cfg, observer, loc), nil
}

// App holds the dependencies shared by all commands. Services that talk to
// Jira are created per invocation by connect.
type App struct {
	Paths         config.Paths
	Env           config.Env
	DB            *sql.DB
	Keyring       credentials.Store
	Prompter      Prompter
	Trackers      TrackerFactory
	Now           func() time.Time
	IsInteractive func() bool
	UseColors     bool
	Version       string

	opts     globalOptions
	logger   *slog.Logger
	observer service.UseCaseObserver
	session  *session
}

type globalOptions struct {
	verbose  int
	token    string
	instance string
	noCache  bool
}

// NewRootCmd creates the top-level "lt" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "lt",
		Short:         "Log time to Jira/Tempo",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.session = nil
			app.setupLogging(cmd.ErrOrStderr())
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.CountVarP(&app.opts.verbose, "verbose", "v", "show logging output (-vv for debug)")
	flags.StringVar(&app.opts.token, "token", "", "Jira personal access token (default $"+config.EnvToken+", keyring, prompt)")
	flags.StringVar(&app.opts.instance, "instance", "", "Jira URL (default $"+string(config.JiraInstance)+")")
	flags.BoolVar(&app.opts.noCache, "no-cache", false, "do not fill the issue cache automatically")

	root.AddCommand(
		newLogCmd(app),
		newLogManyCmd(app),
		newListCmd(app),
		newStatsCmd(app),
		newIssuesCmd(app),
		newProjectsCmd(app),
		newBudgetCmd(app),
		newInitCmd(app),
		newAliasCmd(app),
		newConfigCmd(app),
		newResetCmd(app),
	)

	return root
}

func (a *App) setupLogging(w io.Writer) {
	if a.opts.verbose == 0 {
		a.logger = slog.New(slog.DiscardHandler)
		a.observer = service.NoopUseCaseObserver{}
		return
	}
	level := slog.LevelInfo
	if a.opts.verbose > 1 {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	a.observer = service.NewSlogUseCaseObserver(a.logger)
}

func (a *App) printer(cmd *cobra.Command) *formatter.Printer {
	return formatter.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), a.UseColors)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
