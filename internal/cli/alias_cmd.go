package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/lt/internal/cli/formatter"
	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/repository"
	"github.com/alexanderramin/lt/internal/service"
	"github.com/spf13/cobra"
)

func newAliasCmd(app *App) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "alias [issue] [alias]",
		Short: "Manage issue aliases",
		Long: `Give an issue a short name that can be used wherever an issue is expected.
Without arguments all aliases are listed.`,
		Example: `  lt alias TSI-7 opt
  lt alias
  lt alias --remove opt`,
		Args:              cobra.MaximumNArgs(2),
		ValidArgsFunction: app.completeAliasArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			aliases := app.aliasService()
			p := app.printer(cmd)

			if remove {
				if len(args) != 1 {
					return errors.New("usage: lt alias --remove <alias>")
				}
				if err := aliases.Remove(ctx, args[0]); err != nil {
					return err
				}
				p.Success("Removed alias %s.", args[0])
				return nil
			}

			if len(args) == 0 {
				all, err := aliases.List(ctx)
				if err != nil {
					return err
				}
				if len(all) == 0 {
					p.Info("No aliases defined. Create one with: lt alias <issue> <alias>")
					return nil
				}
				rows := make([][]string, 0, len(all))
				for _, name := range all.Names() {
					rows = append(rows, []string{name, all[name]})
				}
				return formatter.RenderTable(cmd.OutOrStdout(), []string{"Alias", "Issue"}, rows)
			}

			issue := args[0]
			var name string
			if len(args) == 2 {
				name = args[1]
			} else {
				if !app.interactive() {
					return errors.New("no alias given")
				}
				var err error
				name, err = app.Prompter.Input(fmt.Sprintf("Alias for %s", issue), "", nil)
				if errors.Is(err, domain.ErrAborted) {
					return nil
				}
				if err != nil {
					return err
				}
			}

			err := aliases.Set(ctx, name, issue, false)
			var exists *service.AliasExistsError
			if errors.As(err, &exists) && app.interactive() {
				ok, promptErr := app.Prompter.Confirm(fmt.Sprintf("Alias %s points to %s. Overwrite?", exists.Name, exists.IssueKey), false)
				if errors.Is(promptErr, domain.ErrAborted) || (promptErr == nil && !ok) {
					return nil
				}
				if promptErr != nil {
					return promptErr
				}
				err = aliases.Set(ctx, name, issue, true)
			}
			if err != nil {
				return err
			}
			key := strings.ToUpper(issue)
			if cached, err := repository.NewSQLiteIssueRepo(app.DB).GetByKey(ctx, key); err == nil {
				key += " (" + cached.Summary + ")"
			}
			p.Success("%s is now an alias for %s.", name, key)
			return nil
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "remove the given alias")
	return cmd
}
