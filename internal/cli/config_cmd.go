package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/lt/internal/config"
	"github.com/alexanderramin/lt/internal/credentials"
	"github.com/alexanderramin/lt/internal/db"
	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/repository"
	"github.com/alexanderramin/lt/internal/service"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	var system, local, unset bool

	cmd := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "Get and set configuration options",
		Long: `Read and write options in the .lt configuration files.

Without --system or --local, reads merge the nearest local file with the
system file, and writes go to the nearest file that exists.`,
		Example: `  lt config
  lt config LT_LOG_ISSUE opt --local
  lt config LT_LOG_START 8:30
  lt config LT_LOG_MESSAGE --unset`,
		Args:              cobra.MaximumNArgs(2),
		ValidArgsFunction: completeConfigOptions,
		RunE: func(cmd *cobra.Command, args []string) error {
			if system && local {
				return errors.New("--system and --local are mutually exclusive")
			}
			scope := config.ScopeMerged
			switch {
			case system:
				scope = config.ScopeSystem
			case local:
				scope = config.ScopeLocal
			}
			store := config.NewStore(app.Paths)
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				if unset {
					return errors.New("--unset needs a key")
				}
				values, err := store.All(scope)
				if err != nil {
					return err
				}
				for _, o := range config.Options {
					if v, ok := values[string(o)]; ok {
						fmt.Fprintf(out, "%s=%s\n", o, v)
					}
				}
				return nil
			}

			key, err := config.ParseOption(args[0])
			if err != nil {
				return err
			}

			switch {
			case unset:
				if len(args) > 1 {
					return errors.New("--unset takes no value")
				}
				file, err := store.Unset(key, scope)
				if err != nil {
					return err
				}
				if file != "" {
					app.logger.Info("config unset", "key", key, "file", file)
				}
				return nil
			case len(args) == 1:
				value, ok, err := store.Get(key, scope)
				if err != nil {
					return err
				}
				if ok {
					fmt.Fprintln(out, value)
				}
				return nil
			default:
				if err := config.ValidateOption(key, args[1]); err != nil {
					return err
				}
				return store.Set(key, args[1], scope)
			}
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&system, "system", false, "use the system config file")
	flags.BoolVar(&local, "local", false, "use the local .lt file")
	flags.BoolVar(&unset, "unset", false, "remove the option")
	return cmd
}

func newResetCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the cache, the stored token and the configuration",
		Long: `Delete the cached projects, issues and identity, the API token stored in
the keyring, and all configuration files. Aliases are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := app.printer(cmd)
			confirm := func(title string) (bool, error) {
				if force {
					return true, nil
				}
				if !app.interactive() {
					return false, errors.New("refusing to reset without confirmation, pass --force")
				}
				return app.Prompter.Confirm(title, false)
			}

			ok, err := confirm("Delete cache?")
			if err != nil {
				return abortedIsNil(err)
			}
			if ok {
				if err := db.Reset(ctx, app.DB); err != nil {
					return err
				}
				p.Success("Cache deleted.")
			}

			store := config.NewStore(app.Paths)
			user, _, err := store.Get(config.JiraUser, config.ScopeMerged)
			if err != nil {
				return err
			}
			if user != "" {
				ok, err := confirm(fmt.Sprintf("Delete API token of %s from keyring?", user))
				if err != nil {
					return abortedIsNil(err)
				}
				if ok {
					switch err := app.Keyring.DeleteToken(user); {
					case errors.Is(err, credentials.ErrNoToken):
						p.Info("No token stored for %s.", user)
					case err != nil:
						p.Warn("Warning: %v", err)
					default:
						p.Success("Token deleted.")
					}
					identity := service.NewIdentityService(nil, repository.NewSQLiteIdentityRepo(app.DB), app.observer)
					if err := identity.Forget(ctx); err != nil {
						return err
					}
				}
			}

			files := store.Existing(config.ScopeMerged)
			if len(files) == 0 {
				return nil
			}
			ok, err = confirm("Delete configuration files?")
			if err != nil {
				return abortedIsNil(err)
			}
			if !ok {
				return nil
			}
			for _, f := range files {
				if err := store.Remove(f); err != nil {
					return err
				}
				p.Success("Removed %s.", f)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "do not ask for confirmation")
	return cmd
}

func abortedIsNil(err error) error {
	if errors.Is(err, domain.ErrAborted) {
		return nil
	}
	return err
}
