package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lt/internal/app"
	"github.com/alexanderramin/lt/internal/cli/formatter"
	"github.com/alexanderramin/lt/internal/config"
	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/timefmt"
	"github.com/spf13/cobra"
)

type logFlags struct {
	day     dateValue
	start   timeValue
	end     timeValue
	lunch   durationValue
	message string
	yes     bool
}

func (f *logFlags) register(cmd *cobra.Command, withEnd bool) {
	flags := cmd.Flags()
	flags.Var(&f.day, "day", "day to log on (today, yesterday, dd.mm, dd.mm.yyyy)")
	flags.Var(&f.start, "start", "start time (default: end of the last worklog that day, else $LT_LOG_START)")
	if withEnd {
		flags.Var(&f.end, "end", "end time, overrides the duration")
		flags.Var(&f.lunch, "lunch", "time to subtract for a lunch break")
	}
	flags.StringVarP(&f.message, "message", "m", "", "worklog comment (default $LT_LOG_MESSAGE)")
	flags.BoolVarP(&f.yes, "yes", "y", false, "log without confirmation")
}

func (f *logFlags) request(rc app.RunContext) (app.LogRequest, error) {
	day, err := f.day.resolve(rc.Today, rc.Today)
	if err != nil {
		return app.LogRequest{}, err
	}
	return app.LogRequest{
		Day:     day,
		Start:   f.start.t,
		End:     f.end.t,
		Lunch:   f.lunch.d,
		Message: f.message,
		Yes:     f.yes,
	}, nil
}

// splitLogArgs sorts "[duration] [issue]" arguments. A single argument that
// is not a duration is taken as the issue.
func splitLogArgs(args []string, defaults app.Defaults) (time.Duration, string, error) {
	duration, issue := defaults.Duration, defaults.Issue
	switch len(args) {
	case 1:
		if d, err := timefmt.ParseDuration(args[0]); err == nil {
			duration = d
		} else {
			issue = args[0]
		}
	case 2:
		d, err := timefmt.ParseDuration(args[0])
		if err != nil {
			return 0, "", err
		}
		duration, issue = d, args[1]
	}
	if issue == "" {
		return 0, "", fmt.Errorf("no issue given and %s is not set", config.LogIssue)
	}
	return duration, issue, nil
}

func newLogCmd(app *App) *cobra.Command {
	var f logFlags

	cmd := &cobra.Command{
		Use:   "log [duration] [issue]",
		Short: "Log time to an issue",
		Long: `Log time to a Jira issue or alias.

The duration defaults to $LT_LOG_DURATION (8h) and the issue to $LT_LOG_ISSUE.
The worklog starts where the last worklog of the day ended.`,
		Example: `  lt log 2h opt
  lt log 1h30m TSI-7 --start 9 -m "review"
  lt log TSI-7 --start 9 --end 17:30 --lunch 30m`,
		Args:              cobra.MaximumNArgs(2),
		ValidArgsFunction: app.completeLogArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.connect(cmd, true)
			if err != nil {
				return err
			}
			req, err := f.request(s.rc)
			if err != nil {
				return err
			}
			req.Duration, req.Issue, err = splitLogArgs(args, s.rc.Defaults)
			if err != nil {
				return err
			}

			res, err := s.worklogs.Log(cmd.Context(), s.rc, req, app.logPrompter(cmd))
			if errors.Is(err, domain.ErrAborted) {
				return nil
			}
			var unresolved *domain.IssueResolutionError
			if errors.As(err, &unresolved) && len(unresolved.Candidates) > 1 {
				app.printer(cmd).Warn("Similar issues:\n%s", strings.TrimRight(formatter.FormatCandidates(unresolved.Candidates), "\n"))
			}
			if err != nil {
				return err
			}
			app.printer(cmd).Success("%s", formatter.FormatLogged(*res))
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}

func newLogManyCmd(app *App) *cobra.Command {
	var f logFlags

	cmd := &cobra.Command{
		Use:   "logm <entries>",
		Short: "Log time to several issues at once",
		Long: `Log several worklogs in one go. Entries are "issue:duration" separated by
commas; several arguments are joined. Each entry starts where the previous
one ended.`,
		Example: `  lt logm "opt:2h,proj:5h30m,admin:30m"
  lt logm opt:2h proj:6h --day yesterday --start 8`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.connect(cmd, true)
			if err != nil {
				return err
			}
			base, err := f.request(s.rc)
			if err != nil {
				return err
			}

			results, err := s.worklogs.LogMany(cmd.Context(), s.rc, strings.Join(args, ","), base, app.logPrompter(cmd))
			p := app.printer(cmd)
			logged := 0
			for _, r := range results {
				switch {
				case r.Result != nil:
					logged++
					p.Success("%s", formatter.FormatLogged(*r.Result))
				case r.Skipped:
					p.Info("Skipped %s.", r.Raw)
				case r.Err != nil:
					p.Error("%s: %v", r.Raw, r.Err)
				}
			}
			if err != nil {
				return fmt.Errorf("%d of %d entries failed", failedEntries(results), len(results))
			}
			if logged > 1 {
				p.Info("Logged %d worklogs.", logged)
			}
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}

func failedEntries(results []app.EntryResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
