package tracker

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/alexanderramin/lt/internal/domain"
)

const (
	tempoDateLayout    = "2006-01-02"
	tempoStartedLayout = "2006-01-02 15:04:05.000"
	// StartedLayout is ISO-8601 with milliseconds, as Tempo expects on create.
	StartedLayout = "2006-01-02T15:04:05.000"
)

// Tempo provides the Tempo timesheets calls the CLI needs.
type Tempo interface {
	// Worklogs returns the worker's worklogs from..to inclusive, oldest first.
	Worklogs(ctx context.Context, workerKey string, from, to domain.Date) ([]domain.Worklog, error)
	CreateWorklog(ctx context.Context, req domain.NewWorklog) (domain.Worklog, error)
}

type tempoClient struct {
	rest     *restClient
	location *time.Location
}

// NewTempoClient creates a Tempo client for cfg.BaseURL. Worklog start
// times are interpreted in loc.
func NewTempoClient(cfg Config, observer Observer, loc *time.Location) Tempo {
	if loc == nil {
		loc = time.Local
	}
	return &tempoClient{rest: newRESTClient("tempo", cfg, observer), location: loc}
}

type tempoSearchRequest struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Worker []string `json:"worker"`
}

type tempoCreateRequest struct {
	Worker           string `json:"worker"`
	OriginTaskID     string `json:"originTaskId"`
	Started          string `json:"started"`
	TimeSpentSeconds int64  `json:"timeSpentSeconds"`
	Comment          string `json:"comment,omitempty"`
}

type tempoWorklog struct {
	TempoWorklogID int64 `json:"tempoWorklogId"`
	Issue          struct {
		ID         int64  `json:"id"`
		Key        string `json:"key"`
		Summary    string `json:"summary"`
		ProjectKey string `json:"projectKey"`
	} `json:"issue"`
	Started          string `json:"started"`
	TimeSpentSeconds int64  `json:"timeSpentSeconds"`
	Comment          string `json:"comment"`
	Worker           string `json:"worker"`
}

func (w tempoWorklog) toDomain(loc *time.Location) (domain.Worklog, error) {
	started, err := time.ParseInLocation(tempoStartedLayout, w.Started, loc)
	if err != nil {
		started, err = time.ParseInLocation(StartedLayout, w.Started, loc)
		if err != nil {
			return domain.Worklog{}, fmt.Errorf("parsing start of worklog %d: %w", w.TempoWorklogID, err)
		}
	}
	return domain.Worklog{
		ID:      strconv.FormatInt(w.TempoWorklogID, 10),
		Started: started,
		Seconds: w.TimeSpentSeconds,
		Issue: domain.IssueRef{
			ID:         strconv.FormatInt(w.Issue.ID, 10),
			Key:        w.Issue.Key,
			Summary:    w.Issue.Summary,
			ProjectKey: w.Issue.ProjectKey,
		},
		Author:  w.Worker,
		Comment: w.Comment,
	}, nil
}

func (c *tempoClient) Worklogs(ctx context.Context, workerKey string, from, to domain.Date) ([]domain.Worklog, error) {
	body := tempoSearchRequest{
		From:   from.Format(tempoDateLayout),
		To:     to.Format(tempoDateLayout),
		Worker: []string{workerKey},
	}
	var raw []tempoWorklog
	if err := c.rest.do(ctx, http.MethodPost, "/rest/tempo-timesheets/4/worklogs/search", nil, body, &raw); err != nil {
		return nil, fmt.Errorf("searching worklogs: %w", err)
	}
	out := make([]domain.Worklog, 0, len(raw))
	for _, tw := range raw {
		w, err := tw.toDomain(c.location)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Started.Before(out[j].Started) })
	return out, nil
}

func (c *tempoClient) CreateWorklog(ctx context.Context, req domain.NewWorklog) (domain.Worklog, error) {
	body := tempoCreateRequest{
		Worker:           req.WorkerKey,
		OriginTaskID:     req.IssueID,
		Started:          req.Started.In(c.location).Format(StartedLayout),
		TimeSpentSeconds: req.Seconds,
		Comment:          req.Comment,
	}
	var raw []tempoWorklog
	if err := c.rest.do(ctx, http.MethodPost, "/rest/tempo-timesheets/4/worklogs", nil, body, &raw); err != nil {
		return domain.Worklog{}, fmt.Errorf("creating worklog on %s: %w", req.IssueKey, err)
	}
	if len(raw) == 0 {
		return domain.Worklog{
			Started: req.Started,
			Seconds: req.Seconds,
			Issue:   domain.IssueRef{ID: req.IssueID, Key: req.IssueKey},
			Author:  req.WorkerKey,
			Comment: req.Comment,
		}, nil
	}
	return raw[0].toDomain(c.location)
}
