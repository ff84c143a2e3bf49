package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/lt/internal/cli/formatter"
	"github.com/alexanderramin/lt/internal/daterange"
	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/report"
	"github.com/alexanderramin/lt/internal/timefmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// rangeFlags selects the reporting period: a named range argument, or
// --from/--to which take precedence over it.
type rangeFlags struct {
	from dateValue
	to   dateValue
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().Var(&f.from, "from", "first day of the period (default: --to)")
	cmd.Flags().Var(&f.to, "to", "last day of the period (default: today)")
}

// period resolves the range and the label shown for it.
func (f *rangeFlags) period(s *session, args []string, fallback daterange.Name) (string, domain.DateRange, error) {
	today := s.rc.Today
	if f.from.text != "" || f.to.text != "" {
		to, err := f.to.resolve(today, today)
		if err != nil {
			return "", domain.DateRange{}, err
		}
		from, err := f.from.resolve(today, to)
		if err != nil {
			return "", domain.DateRange{}, err
		}
		rng := domain.NewDateRange(from, to)
		return rng.String(), rng, nil
	}

	input := string(fallback)
	if len(args) > 0 {
		input = args[0]
	}
	name, rng, err := s.ranges.ResolveRange(input, today)
	if err != nil {
		return "", domain.DateRange{}, err
	}
	return string(name), rng, nil
}

func newListCmd(app *App) *cobra.Command {
	var (
		rf     rangeFlags
		output string
	)

	cmd := &cobra.Command{
		Use:               "list [range]",
		Short:             "List worklogs of a period (default: week)",
		Example:           "  lt list\n  lt list lm\n  lt list --from 01.03 --to 15.03 -o json",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: app.completeRanges,
		RunE: func(cmd *cobra.Command, args []string) error {
			output = strings.ToLower(output)
			if err := validateOutput(output); err != nil {
				return err
			}
			s, err := app.connect(cmd, true)
			if err != nil {
				return err
			}
			_, rng, err := rf.period(s, args, daterange.Week)
			if err != nil {
				return err
			}
			worklogs, err := s.reports.List(cmd.Context(), s.rc, rng)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch output {
			case "json":
				return writeJSON(w, listRecords(worklogs, s.rc.Aliases))
			case "yaml":
				return writeYAML(w, listRecords(worklogs, s.rc.Aliases))
			}
			total := timefmt.FormatDuration(timeOf(report.TotalSeconds(worklogs)))
			footer := fmt.Sprintf("You have logged %s from %s to %s.", total,
				timefmt.FormatDateRelative(rng.From, s.rc.Today),
				timefmt.FormatDateRelative(rng.To, s.rc.Today))
			return formatter.WriteList(w, report.BuildListRows(worklogs, s.rc.Aliases), footer)
		},
	}
	rf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	_ = cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions([]string{"table", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	var (
		rf        rangeFlags
		verbose   int
		sparkline bool
		noSpark   bool
	)

	cmd := &cobra.Command{
		Use:   "stats [range]",
		Short: "Show logged time per project (default: month)",
		Long: `Show logged time per project as workdays and hours, with a sparkline of
the daily hours. Use -v to list each day with its comments.`,
		Example:           "  lt stats\n  lt stats lw -v\n  lt stats year --no-sparkline",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: app.completeRanges,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.connect(cmd, true)
			if err != nil {
				return err
			}
			name, rng, err := rf.period(s, args, daterange.Month)
			if err != nil {
				return err
			}
			rep, err := s.reports.Stats(cmd.Context(), s.rc, rng)
			if err != nil {
				return err
			}
			view := report.BuildStatsView(rep, report.StatsOptions{
				Sparkline: sparkline && !noSpark,
				Verbose:   verbose,
			})
			_, err = io.WriteString(cmd.OutOrStdout(), formatter.FormatStats(name, view))
			return err
		},
	}
	rf.register(cmd)
	flags := cmd.Flags()
	flags.CountVarP(&verbose, "verbose", "v", "list logged days with their comments")
	flags.BoolVar(&sparkline, "sparkline", true, "show a sparkline of the daily hours")
	flags.BoolVar(&noSpark, "no-sparkline", false, "hide the sparkline")
	return cmd
}

type listRecord struct {
	Started string `json:"started" yaml:"started"`
	Seconds int64  `json:"seconds" yaml:"seconds"`
	Issue   string `json:"issue" yaml:"issue"`
	Project string `json:"project" yaml:"project"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

func listRecords(worklogs []domain.Worklog, namer report.ProjectNamer) []listRecord {
	out := make([]listRecord, len(worklogs))
	for i, w := range worklogs {
		out[i] = listRecord{
			Started: w.Started.Format("2006-01-02T15:04:05-07:00"),
			Seconds: w.Seconds,
			Issue:   w.Issue.Key,
			Project: namer.DisplayName(w.Issue.Key),
			Comment: w.Comment,
		}
	}
	return out
}

func validateOutput(output string) error {
	switch output {
	case "table", "json", "yaml":
		return nil
	}
	return fmt.Errorf("unknown output format %q (valid: table, json, yaml)", output)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func timeOf(seconds int64) time.Duration {
	return time.Duration(seconds) * time.Second
}
