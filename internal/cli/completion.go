package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/lt/internal/config"
	"github.com/alexanderramin/lt/internal/daterange"
	"github.com/alexanderramin/lt/internal/repository"
	"github.com/spf13/cobra"
)

// Completions only read the local cache; they never call Jira.

const noFiles = cobra.ShellCompDirectiveNoFileComp

func completionContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// issueCandidates returns aliases followed by cached issue keys, each with
// a description.
func (a *App) issueCandidates(cmd *cobra.Command, toComplete string) []string {
	if a.DB == nil {
		return nil
	}
	ctx := completionContext(cmd)
	var out []string

	aliases, err := repository.NewSQLiteAliasRepo(a.DB).All(ctx)
	if err == nil {
		for _, name := range aliases.Names() {
			if strings.HasPrefix(name, toComplete) {
				out = append(out, name+"\t"+aliases[name])
			}
		}
	}

	issues, err := repository.NewSQLiteIssueRepo(a.DB).List(ctx)
	if err == nil {
		upper := strings.ToUpper(toComplete)
		for _, i := range issues {
			if strings.HasPrefix(i.Key, upper) {
				out = append(out, i.Key+"\t"+i.Summary)
			}
		}
	}
	return out
}

func (a *App) completeIssues(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, noFiles
	}
	return a.issueCandidates(cmd, toComplete), noFiles
}

func (a *App) completeLogArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 1 {
		return nil, noFiles
	}
	return a.issueCandidates(cmd, toComplete), noFiles
}

func (a *App) completeAliasArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	remove, _ := cmd.Flags().GetBool("remove")
	if len(args) > 0 || a.DB == nil {
		return nil, noFiles
	}
	if remove {
		aliases, err := repository.NewSQLiteAliasRepo(a.DB).All(completionContext(cmd))
		if err != nil {
			return nil, noFiles
		}
		var out []string
		for _, name := range aliases.Names() {
			if strings.HasPrefix(name, toComplete) {
				out = append(out, name+"\t"+aliases[name])
			}
		}
		return out, noFiles
	}
	return a.issueCandidates(cmd, toComplete), noFiles
}

func (a *App) completeProjects(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || a.DB == nil {
		return nil, noFiles
	}
	projects, err := repository.NewSQLiteProjectRepo(a.DB).List(completionContext(cmd))
	if err != nil {
		return nil, noFiles
	}
	upper := strings.ToUpper(toComplete)
	var out []string
	for _, p := range projects {
		if strings.HasPrefix(p.Key, upper) {
			out = append(out, p.Key+"\t"+p.Name)
		}
	}
	return out, noFiles
}

func (a *App) completeRanges(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, noFiles
	}
	resolver := daterange.DefaultResolver()
	if cfg, err := a.loadConfig(); err == nil {
		if r, err := cfg.RangeResolver(); err == nil {
			resolver = r
		}
	}
	var out []string
	for _, name := range daterange.Names {
		if strings.HasPrefix(string(name), toComplete) {
			out = append(out, string(name)+"\t"+strings.Join(resolver.Abbreviations(name), ", "))
		}
	}
	return out, noFiles
}

func completeConfigOptions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, noFiles
	}
	return config.CompleteOptions(toComplete), noFiles
}
