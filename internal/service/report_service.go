package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/lt/internal/app"
	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/report"
	"github.com/alexanderramin/lt/internal/tracker"
)

type reportService struct {
	tempo    tracker.Tempo
	observer UseCaseObserver
}

func NewReportService(tempo tracker.Tempo, observers ...UseCaseObserver) ReportService {
	return &reportService{tempo: tempo, observer: useCaseObserverOrNoop(observers)}
}

func (s *reportService) Stats(ctx context.Context, rc app.RunContext, rng domain.DateRange) (rep report.Report, err error) {
	startedAt := time.Now()
	fields := map[string]any{"range": rng.String()}
	defer observe(ctx, s.observer, "stats", startedAt, &err, fields)

	worklogs, err := s.List(ctx, rc, rng)
	if err != nil {
		return report.Report{}, err
	}
	rep = report.Aggregate(rng, worklogs, rc.Aliases)
	fields["projects"] = len(rep.Projects)
	fields["seconds"] = rep.Seconds
	return rep, nil
}

func (s *reportService) List(ctx context.Context, rc app.RunContext, rng domain.DateRange) ([]domain.Worklog, error) {
	worklogs, err := s.tempo.Worklogs(ctx, rc.User.Key, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("reading worklogs %s: %w", rng, err)
	}
	return worklogs, nil
}
