package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/repository"
	"github.com/alexanderramin/lt/internal/tracker"
)

type identityService struct {
	jira     tracker.Jira
	identity repository.IdentityRepo
	observer UseCaseObserver
}

func NewIdentityService(jira tracker.Jira, identity repository.IdentityRepo, observers ...UseCaseObserver) IdentityService {
	return &identityService{jira: jira, identity: identity, observer: useCaseObserverOrNoop(observers)}
}

func (s *identityService) Authenticate(ctx context.Context, instance string, verify bool) (user domain.User, err error) {
	startedAt := time.Now()
	fields := map[string]any{"instance": instance, "verify": verify}
	defer observe(ctx, s.observer, "authenticate", startedAt, &err, fields)

	if !verify {
		user, err = s.identity.Get(ctx, instance)
		if err == nil {
			fields["cached"] = true
			return user, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, err
		}
	}

	user, err = s.jira.Myself(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("authenticating against %s: %w", instance, err)
	}
	if err := s.identity.Upsert(ctx, instance, user); err != nil {
		return domain.User{}, err
	}
	fields["cached"] = false
	return user, nil
}

func (s *identityService) Forget(ctx context.Context) error {
	return s.identity.Clear(ctx)
}
