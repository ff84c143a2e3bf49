package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/alexanderramin/lt/internal/app"
	"github.com/alexanderramin/lt/internal/cli/formatter"
	"github.com/alexanderramin/lt/internal/config"
	"github.com/alexanderramin/lt/internal/credentials"
	"github.com/alexanderramin/lt/internal/daterange"
	"github.com/alexanderramin/lt/internal/db"
	"github.com/alexanderramin/lt/internal/repository"
	"github.com/alexanderramin/lt/internal/service"
	"github.com/alexanderramin/lt/internal/tracker"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	errNoInstance = errors.New("no Jira instance configured, run: lt config " + string(config.JiraInstance) + " https://jira.example.com")
	errNoToken    = errors.New("no API token, pass --token or set " + config.EnvToken)
)

// session is everything a Jira-backed command needs, built once per
// invocation.
type session struct {
	cfg      config.Config
	rc       app.RunContext
	ranges   *daterange.Resolver
	worklogs service.WorklogService
	reports  service.ReportService
	budgets  service.BudgetService
	catalog  service.CatalogService
}

func (a *App) loadConfig() (config.Config, error) {
	return config.Load(a.Paths, a.Env)
}

func (a *App) aliasService() service.AliasService {
	return service.NewAliasService(repository.NewSQLiteAliasRepo(a.DB), a.observer)
}

func (a *App) catalogService(jira tracker.Jira) service.CatalogService {
	return service.NewCatalogService(jira, db.NewSQLiteUnitOfWork(a.DB),
		repository.NewSQLiteIssueRepo(a.DB),
		repository.NewSQLiteProjectRepo(a.DB),
		repository.NewSQLiteCacheMetaRepo(a.DB),
		a.observer)
}

// connect authenticates against Jira and wires the tracker-backed
// services. With warm set, empty caches are filled unless --no-cache.
func (a *App) connect(cmd *cobra.Command, warm bool) (*session, error) {
	if a.session != nil {
		return a.session, nil
	}
	ctx := cmd.Context()

	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	instance, err := a.resolveInstance(cmd, cfg)
	if err != nil {
		return nil, err
	}
	token, fromKeyring, err := a.resolveToken(cmd, cfg, instance)
	if err != nil {
		return nil, err
	}

	trackerCfg := tracker.DefaultConfig(instance, token)
	trackerCfg.RequestID = uuid.NewString()
	now := a.now()
	jira, tempo, err := a.Trackers(trackerCfg, tracker.NewSlogObserver(a.logger), now.Location())
	if err != nil {
		return nil, err
	}
	a.logger.Debug("session", "instance", instance, "request_id", trackerCfg.RequestID)

	identity := service.NewIdentityService(jira, repository.NewSQLiteIdentityRepo(a.DB), a.observer)
	user, err := identity.Authenticate(ctx, instance, !fromKeyring)
	if err != nil {
		if tracker.IsConnectionError(err) {
			return nil, fmt.Errorf("could not connect to %s: %w", instance, err)
		}
		return nil, fmt.Errorf("could not authenticate: %w", err)
	}
	if cfg.User != user.Name {
		if err := config.NewStore(a.Paths).Set(config.JiraUser, user.Name, config.ScopeSystem); err != nil {
			return nil, err
		}
	}
	if !fromKeyring {
		if err := a.Keyring.SaveToken(user.Name, token); err != nil {
			a.logger.Warn("token not saved", "error", err)
		} else {
			a.logger.Info("saved token to keyring", "user", user.Name)
		}
	}

	aliases, err := a.aliasService().List(ctx)
	if err != nil {
		return nil, err
	}
	defaults, err := logDefaults(cfg)
	if err != nil {
		return nil, err
	}
	ranges, err := cfg.RangeResolver()
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:      cfg,
		rc:       app.NewRunContext(user, instance, now, aliases, a.opts.verbose, defaults),
		ranges:   ranges,
		worklogs: service.NewWorklogService(jira, tempo, repository.NewSQLiteIssueRepo(a.DB), a.observer),
		reports:  service.NewReportService(tempo, a.observer),
		budgets:  service.NewBudgetService(jira, tempo, a.observer),
		catalog:  a.catalogService(jira),
	}

	if warm && !a.opts.noCache {
		stop := a.spinner(cmd, "Filling issue cache...")
		_, err := s.catalog.EnsureWarm(ctx)
		stop()
		if err != nil {
			return nil, err
		}
	}

	a.session = s
	return s, nil
}

func logDefaults(cfg config.Config) (app.Defaults, error) {
	start, err := cfg.StartTime()
	if err != nil {
		return app.Defaults{}, err
	}
	duration, err := cfg.Duration()
	if err != nil {
		return app.Defaults{}, err
	}
	return app.Defaults{
		Issue:    cfg.LogIssue,
		Start:    start,
		Duration: duration,
		Message:  cfg.LogMessage,
	}, nil
}

func (a *App) resolveInstance(cmd *cobra.Command, cfg config.Config) (string, error) {
	if a.opts.instance != "" {
		return a.opts.instance, nil
	}
	if cfg.Instance != "" {
		return cfg.Instance, nil
	}
	if !a.interactive() {
		return "", errNoInstance
	}
	instance, err := a.Prompter.Input("Jira instance URL", "https://jira.example.com", validateURL)
	if err != nil {
		return "", err
	}
	if err := config.NewStore(a.Paths).Set(config.JiraInstance, instance, config.ScopeSystem); err != nil {
		return "", err
	}
	return instance, nil
}

// resolveToken returns the token and whether it came from the keyring.
func (a *App) resolveToken(cmd *cobra.Command, cfg config.Config, instance string) (string, bool, error) {
	if a.opts.token != "" {
		return a.opts.token, false, nil
	}
	if cfg.Token != "" {
		return cfg.Token, false, nil
	}
	token, err := a.Keyring.Token(cfg.User)
	if err == nil {
		a.logger.Debug("token read from keyring")
		return token, true, nil
	}
	if !errors.Is(err, credentials.ErrNoToken) {
		a.logger.Warn("reading keyring failed", "error", err)
	}
	if !a.interactive() {
		return "", false, errNoToken
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Create your personal access token here:")
	fmt.Fprintln(cmd.ErrOrStderr(), instance+"/secure/ViewProfile.jspa?selectedTab=com.atlassian.pats.pats-plugin:jira-user-personal-access-tokens")
	token, err = a.Prompter.Password("JIRA API token")
	if err != nil {
		return "", false, err
	}
	if token == "" {
		return "", false, errNoToken
	}
	return token, false, nil
}

func (a *App) spinner(cmd *cobra.Command, message string) func() {
	if !a.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), message)
}

func validateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("enter a URL like https://jira.example.com")
	}
	return nil
}
