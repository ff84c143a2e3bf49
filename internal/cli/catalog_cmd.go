package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/lt/internal/cli/formatter"
	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/repository"
	"github.com/spf13/cobra"
)

func newBudgetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "budget [issue]",
		Short: "Show estimate, used and remaining time of an issue",
		Long: `Show the time budget of an issue or alias, split by person. Without an
argument the issue you logged on most recently is used.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: app.completeIssues,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.connect(cmd, true)
			if err != nil {
				return err
			}
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			b, err := s.budgets.Budget(cmd.Context(), s.rc, input)
			if err != nil {
				return err
			}
			if b.AutoSelected {
				app.printer(cmd).Info("Showing the budget of %s, the issue you logged on last.",
					formatter.IssueLabel(b.Issue.Key, b.Alias))
			}
			return formatter.WriteBudget(cmd.OutOrStdout(), b)
		},
	}
}

func newIssuesCmd(app *App) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:               "issues [project]",
		Short:             "List cached issues, optionally of one project",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: app.completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.connect(cmd, !refresh)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			project := ""
			if len(args) > 0 {
				project = args[0]
			}

			var issues []domain.Issue
			switch {
			case refresh && project != "":
				issues, err = s.catalog.RefreshProject(ctx, project)
			case refresh:
				if _, err = s.catalog.Refresh(ctx); err == nil {
					issues, err = s.catalog.Issues(ctx, "")
				}
			default:
				issues, err = s.catalog.Issues(ctx, project)
			}
			if err != nil {
				return err
			}
			if len(issues) == 0 {
				app.printer(cmd).Info("No issues cached. Run: lt issues --refresh")
				return nil
			}

			rows := make([][]string, len(issues))
			for i, issue := range issues {
				alias, _ := s.rc.Aliases.AliasFor(issue.Key)
				rows[i] = []string{issue.Key, alias, issue.Summary}
			}
			if err := formatter.RenderTable(cmd.OutOrStdout(), []string{"Issue", "Alias", "Summary"}, rows); err != nil {
				return err
			}
			return app.printCacheAge(cmd, s)
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch issues from Jira first")
	return cmd
}

func newProjectsCmd(app *App) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List cached projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.connect(cmd, !refresh)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if refresh {
				if _, err := s.catalog.Refresh(ctx); err != nil {
					return err
				}
			}
			projects, err := s.catalog.Projects(ctx)
			if err != nil {
				return err
			}
			rows := make([][]string, len(projects))
			for i, p := range projects {
				rows[i] = []string{p.Key, p.Name}
			}
			if err := formatter.RenderTable(cmd.OutOrStdout(), []string{"Key", "Name"}, rows); err != nil {
				return err
			}
			return app.printCacheAge(cmd, s)
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch projects from Jira first")
	return cmd
}

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Authenticate and fill the project and issue cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.connect(cmd, false)
			if err != nil {
				return err
			}
			stop := app.spinner(cmd, "Fetching projects and issues...")
			res, err := s.catalog.Refresh(cmd.Context())
			stop()
			if err != nil {
				return err
			}
			p := app.printer(cmd)
			p.Success("Logged in as %s.", s.rc.User.DisplayName)
			p.Success("Cached %s and %s.", plural(res.Projects, "project"), plural(res.Issues, "issue"))
			return nil
		},
	}
}

// printCacheAge notes when the listed cache was filled.
func (a *App) printCacheAge(cmd *cobra.Command, s *session) error {
	at, err := s.catalog.LastRefresh(cmd.Context())
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	n, err := s.catalog.Cached(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("\nCached %s and %s on %s, refresh with --refresh.",
		plural(n.Projects, "project"), plural(n.Issues, "issue"), at.In(s.rc.Location).Format("2006-01-02 15:04"))))
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
