package repository

import (
	"context"
	"fmt"

	"github.com/aetherdigital/backend/internal/domain"
	"github.com/aetherdigital/backend/internal/storage"
)

type userRepository struct {
	doc *document[domain.UserRecord]
}

func newUserRepository(backend storage.Backend, name string) *userRepository {
	return &userRepository{
		doc: newDocument[domain.UserRecord](backend, name),
	}
}

// Append stores user unless it collides with an existing record on username, either
// email slot or normalized tax id, in which case a *domain.DuplicateFieldError is returned.
func (r *userRepository) Append(ctx context.Context, user *domain.UserRecord) error {
	const op = "repository.user.Append"

	if err := user.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := r.doc.update(ctx, func(users []domain.UserRecord) ([]domain.UserRecord, bool, error) {
		for i := range users {
			if field := user.Collides(&users[i]); field != "" {
				return nil, false, &domain.DuplicateFieldError{Field: field}
			}
		}

		return append(users, *user), true, nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *userRepository) LoadAll(ctx context.Context) ([]domain.UserRecord, error) {
	users, err := r.doc.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.user.LoadAll: %w", err)
	}

	return users, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.UserRecord, error) {
	users, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}

	return nil, domain.ErrNotFound
}
