package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lt/internal/app"
	"github.com/alexanderramin/lt/internal/booking"
	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/repository"
	"github.com/alexanderramin/lt/internal/tracker"
)

// maxSuggestionRounds bounds the "did you mean" loop.
const maxSuggestionRounds = 3

type worklogService struct {
	jira     tracker.Jira
	tempo    tracker.Tempo
	issues   repository.IssueRepo
	dailyCap time.Duration
	observer UseCaseObserver
}

func NewWorklogService(
	jira tracker.Jira,
	tempo tracker.Tempo,
	issues repository.IssueRepo,
	observers ...UseCaseObserver,
) WorklogService {
	return &worklogService{
		jira:     jira,
		tempo:    tempo,
		issues:   issues,
		dailyCap: booking.DailyCap,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *worklogService) Log(ctx context.Context, rc app.RunContext, req app.LogRequest, prompter app.LogPrompter) (result *app.LogResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"issue": req.Issue, "day": req.Day.String()}
	defer observe(ctx, s.observer, "log", startedAt, &err, fields)

	issue, alias, err := s.resolveIssue(ctx, rc, req.Issue, prompter)
	if err != nil {
		return nil, err
	}
	fields["issue_key"] = issue.Key

	dayWorklogs, err := s.tempo.Worklogs(ctx, rc.User.Key, req.Day, req.Day)
	if err != nil {
		return nil, fmt.Errorf("reading worklogs of %s: %w", req.Day, err)
	}

	iv, err := booking.ComputeInterval(booking.IntervalRequest{
		Day:          req.Day,
		Location:     rc.Location,
		Start:        req.Start,
		End:          req.End,
		Duration:     req.Duration,
		Lunch:        req.Lunch,
		DefaultStart: rc.Defaults.Start,
	}, dayWorklogs)
	if err != nil {
		return nil, err
	}

	warnings := booking.DetectOverlaps(iv, dayWorklogs)
	for _, w := range warnings {
		prompter.Warn(ctx, w)
	}
	fields["overlaps"] = len(warnings)

	if err := booking.CheckDailyCap(dayWorklogs, iv.Duration(), s.dailyCap); err != nil {
		return nil, err
	}

	preview := app.LogPreview{
		Issue:       issue,
		Alias:       alias,
		Start:       iv.Start,
		End:         iv.End,
		Day:         req.Day,
		Today:       rc.Today,
		Logged:      time.Duration(booking.LoggedSeconds(dayWorklogs)) * time.Second,
		Warnings:    warnings,
		Description: domain.CoalesceStr(req.Message, rc.Defaults.Message),
	}

	if !req.Yes {
		ok, err := prompter.ConfirmLog(ctx, preview)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrAborted
		}
	}

	created, err := s.tempo.CreateWorklog(ctx, domain.NewWorklog{
		WorkerKey: rc.User.Key,
		IssueID:   issue.ID,
		IssueKey:  issue.Key,
		Started:   iv.Start,
		Seconds:   int64(iv.Duration() / time.Second),
		Comment:   preview.Description,
	})
	if err != nil {
		return nil, err
	}
	fields["seconds"] = created.Seconds
	return &app.LogResult{Preview: preview, Worklog: created}, nil
}

// resolveIssue maps input to an issue, offering a single close match for
// confirmation when the issue does not exist.
func (s *worklogService) resolveIssue(ctx context.Context, rc app.RunContext, input string, prompter app.LogPrompter) (domain.Issue, string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return domain.Issue{}, "", &domain.ParseError{Kind: "issue", Input: input, Reason: "no issue given"}
	}

	for round := 0; ; round++ {
		target := booking.ResolveTarget(input, rc.Aliases)
		issue, err := s.jira.Issue(ctx, target.Key)
		if err == nil {
			return issue, target.Alias, nil
		}
		if !errors.Is(err, tracker.ErrNotFound) {
			return domain.Issue{}, "", err
		}

		cached, cacheErr := s.issues.List(ctx)
		if cacheErr != nil {
			cached = nil
		}
		candidates := booking.Suggest(target.Key, rc.Aliases, cached)
		if len(candidates) != 1 || round >= maxSuggestionRounds {
			return domain.Issue{}, "", &domain.IssueResolutionError{Input: input, Candidates: candidates, Err: err}
		}

		ok, promptErr := prompter.ConfirmSuggestion(ctx, input, candidates[0])
		if promptErr != nil {
			return domain.Issue{}, "", promptErr
		}
		if !ok {
			return domain.Issue{}, "", domain.ErrAborted
		}
		input = candidates[0].Key
	}
}

func (s *worklogService) LogMany(ctx context.Context, rc app.RunContext, entries string, base app.LogRequest, prompter app.LogPrompter) (results []app.EntryResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"day": base.Day.String()}
	defer observe(ctx, s.observer, "logm", startedAt, &err, fields)

	parsed := booking.ParseEntries(entries)
	if len(parsed) == 0 {
		return nil, &domain.ParseError{Kind: "entry", Input: entries, Reason: "no entries"}
	}
	fields["entries"] = len(parsed)

	var errs []error
	chained := false
	for _, e := range parsed {
		res := app.EntryResult{Raw: e.Raw}
		if e.Err != nil {
			res.Err = e.Err
			errs = append(errs, e.Err)
			results = append(results, res)
			continue
		}

		req := base
		req.Issue = e.Issue
		req.Duration = e.Duration
		req.End = nil
		if chained {
			req.Start = nil
		}

		logged, logErr := s.Log(ctx, rc, req, prompter)
		switch {
		case errors.Is(logErr, domain.ErrAborted):
			res.Skipped = true
		case logErr != nil:
			res.Err = logErr
			errs = append(errs, fmt.Errorf("%s: %w", e.Raw, logErr))
		default:
			res.Result = logged
			chained = true
		}
		results = append(results, res)
	}
	fields["failed"] = len(errs)
	return results, errors.Join(errs...)
}
