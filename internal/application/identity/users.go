package identity

import (
	"context"

	"github.com/jeenmata/impex/internal/domain/identity"
	"github.com/jeenmata/impex/internal/domain/shared"
)

// findUserByEmail returns the user with the given email, or nil when none exists
func findUserByEmail(ctx context.Context, repo identity.UserRepository, email string) (*identity.User, error) {
	users, err := repo.List(ctx, shared.NewQuery("", 1).Where("email", identity.NormalizeEmail(email)))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func publish(ctx context.Context, events shared.EventPublisher, evts []shared.DomainEvent) error {
	if events == nil || len(evts) == 0 {
		return nil
	}
	return events.Publish(ctx, evts...)
}
