package tracker

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/alexanderramin/lt/internal/domain"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	issueCacheSize = 256
	searchPageSize = 100
)

// Jira provides the Jira REST calls the CLI needs.
type Jira interface {
	// Myself returns the account the token belongs to.
	Myself(ctx context.Context) (domain.User, error)
	Issue(ctx context.Context, key string) (domain.Issue, error)
	// SearchIssues runs jql and follows pagination until all issues are read.
	SearchIssues(ctx context.Context, jql string) ([]domain.Issue, error)
	Projects(ctx context.Context) ([]domain.Project, error)
	IssueWorklogs(ctx context.Context, key string) ([]domain.IssueWorklog, error)
}

type jiraClient struct {
	rest   *restClient
	issues *lru.Cache[string, domain.Issue]
}

// NewJiraClient creates a Jira client for cfg.BaseURL.
func NewJiraClient(cfg Config, observer Observer) (Jira, error) {
	cache, err := lru.New[string, domain.Issue](issueCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating issue cache: %w", err)
	}
	return &jiraClient{rest: newRESTClient("jira", cfg, observer), issues: cache}, nil
}

type jiraUser struct {
	Name        string `json:"name"`
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
}

type jiraIssue struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
		Project struct {
			Key string `json:"key"`
		} `json:"project"`
		TimeTracking struct {
			OriginalEstimateSeconds  int64 `json:"originalEstimateSeconds"`
			RemainingEstimateSeconds int64 `json:"remainingEstimateSeconds"`
			TimeSpentSeconds         int64 `json:"timeSpentSeconds"`
		} `json:"timetracking"`
	} `json:"fields"`
}

func (j jiraIssue) toDomain() domain.Issue {
	projectKey := j.Fields.Project.Key
	if projectKey == "" {
		projectKey, _ = domain.ProjectKeyOf(j.Key)
	}
	return domain.Issue{
		ID:         j.ID,
		Key:        j.Key,
		Summary:    j.Fields.Summary,
		ProjectKey: projectKey,
		TimeTracking: domain.TimeTracking{
			OriginalEstimateSeconds:  j.Fields.TimeTracking.OriginalEstimateSeconds,
			RemainingEstimateSeconds: j.Fields.TimeTracking.RemainingEstimateSeconds,
			TimeSpentSeconds:         j.Fields.TimeTracking.TimeSpentSeconds,
		},
	}
}

type jiraSearchPage struct {
	StartAt    int         `json:"startAt"`
	MaxResults int         `json:"maxResults"`
	Total      int         `json:"total"`
	Issues     []jiraIssue `json:"issues"`
}

type jiraProject struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type jiraWorklogPage struct {
	Worklogs []struct {
		Author           jiraUser `json:"author"`
		TimeSpentSeconds int64    `json:"timeSpentSeconds"`
	} `json:"worklogs"`
}

func (c *jiraClient) Myself(ctx context.Context) (domain.User, error) {
	var u jiraUser
	if err := c.rest.do(ctx, http.MethodGet, "/rest/api/2/myself", nil, nil, &u); err != nil {
		return domain.User{}, fmt.Errorf("fetching current user: %w", err)
	}
	return domain.User{Name: u.Name, Key: u.Key, DisplayName: u.DisplayName}, nil
}

func (c *jiraClient) Issue(ctx context.Context, key string) (domain.Issue, error) {
	key = strings.ToUpper(strings.TrimSpace(key))
	if issue, ok := c.issues.Get(key); ok {
		return issue, nil
	}
	var ji jiraIssue
	query := url.Values{"fields": {"summary,project,timetracking"}}
	if err := c.rest.do(ctx, http.MethodGet, "/rest/api/2/issue/"+url.PathEscape(key), query, nil, &ji); err != nil {
		return domain.Issue{}, fmt.Errorf("fetching issue %s: %w", key, err)
	}
	issue := ji.toDomain()
	c.issues.Add(key, issue)
	return issue, nil
}

func (c *jiraClient) SearchIssues(ctx context.Context, jql string) ([]domain.Issue, error) {
	var out []domain.Issue
	startAt := 0
	for {
		query := url.Values{
			"jql":        {jql},
			"fields":     {"summary,project"},
			"startAt":    {strconv.Itoa(startAt)},
			"maxResults": {strconv.Itoa(searchPageSize)},
		}
		var page jiraSearchPage
		if err := c.rest.do(ctx, http.MethodGet, "/rest/api/2/search", query, nil, &page); err != nil {
			return nil, fmt.Errorf("searching issues: %w", err)
		}
		for _, ji := range page.Issues {
			out = append(out, ji.toDomain())
		}
		startAt += len(page.Issues)
		if len(page.Issues) == 0 || startAt >= page.Total {
			return out, nil
		}
	}
}

func (c *jiraClient) Projects(ctx context.Context) ([]domain.Project, error) {
	var raw []jiraProject
	if err := c.rest.do(ctx, http.MethodGet, "/rest/api/2/project", nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("fetching projects: %w", err)
	}
	projects := make([]domain.Project, len(raw))
	for i, p := range raw {
		projects[i] = domain.Project{Key: p.Key, Name: p.Name}
	}
	return projects, nil
}

func (c *jiraClient) IssueWorklogs(ctx context.Context, key string) ([]domain.IssueWorklog, error) {
	var page jiraWorklogPage
	path := "/rest/api/2/issue/" + url.PathEscape(strings.ToUpper(key)) + "/worklog"
	if err := c.rest.do(ctx, http.MethodGet, path, nil, nil, &page); err != nil {
		return nil, fmt.Errorf("fetching worklogs of %s: %w", key, err)
	}
	out := make([]domain.IssueWorklog, len(page.Worklogs))
	for i, w := range page.Worklogs {
		out[i] = domain.IssueWorklog{AuthorName: domain.CoalesceStr(w.Author.DisplayName, w.Author.Name), Seconds: w.TimeSpentSeconds}
	}
	return out, nil
}

// ProjectIssuesJQL returns the JQL for all issues of one project, or of all
// projects when projectKey is empty.
func ProjectIssuesJQL(projectKey string) string {
	if projectKey == "" {
		return "order by key asc"
	}
	return fmt.Sprintf("project = %q order by key asc", projectKey)
}
