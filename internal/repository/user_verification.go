package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aetherdigital/backend/internal/domain"
	"github.com/aetherdigital/backend/internal/storage"
)

type verificationRepository struct {
	doc *document[domain.VerificationEntry]
	now func() time.Time
}

func newVerificationRepository(backend storage.Backend, name string) *verificationRepository {
	return &verificationRepository{
		doc: newDocument[domain.VerificationEntry](backend, name),
		now: time.Now,
	}
}

// Resync merges users into the projection. Entries follow the order of users; a username
// that is already present keeps its verification state, new usernames start unverified.
// Existing entries missing from users are kept after them, so a resync fed a stale
// snapshot never drops a row another resync already added.
func (r *verificationRepository) Resync(ctx context.Context, users []domain.UserRecord) ([]domain.VerificationEntry, error) {
	const op = "repository.userVerification.Resync"

	var result []domain.VerificationEntry
	err := r.doc.update(ctx, func(current []domain.VerificationEntry) ([]domain.VerificationEntry, bool, error) {
		byUsername := make(map[string]domain.VerificationEntry, len(current))
		for _, entry := range current {
			byUsername[entry.Username] = entry
		}

		merged := make([]domain.VerificationEntry, 0, len(users)+len(current))
		seen := make(map[string]struct{}, len(users))
		for _, user := range users {
			if user.Username == "" || user.Email1 == "" {
				continue
			}
			if _, dup := seen[user.Username]; dup {
				continue
			}
			seen[user.Username] = struct{}{}

			entry := domain.VerificationEntry{Username: user.Username, Email: user.Email1}
			if prev, ok := byUsername[user.Username]; ok && prev.Verified {
				entry.Verified = true
				entry.VerifiedAt = prev.VerifiedAt
			}
			merged = append(merged, entry)
		}

		for _, entry := range current {
			if _, ok := seen[entry.Username]; !ok {
				seen[entry.Username] = struct{}{}
				merged = append(merged, entry)
			}
		}

		result = merged
		return merged, true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

func (r *verificationRepository) List(ctx context.Context) ([]domain.VerificationEntry, error) {
	entries, err := r.doc.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.userVerification.List: %w", err)
	}

	return entries, nil
}

// SetVerified marks username verified. Confirming an already verified user succeeds
// without touching verified_at.
func (r *verificationRepository) SetVerified(ctx context.Context, username string) (*domain.VerificationEntry, error) {
	const op = "repository.userVerification.SetVerified"

	var result *domain.VerificationEntry
	err := r.doc.update(ctx, func(entries []domain.VerificationEntry) ([]domain.VerificationEntry, bool, error) {
		for i := range entries {
			if entries[i].Username != username {
				continue
			}

			changed := !entries[i].Verified
			if changed {
				now := r.now().UTC()
				entries[i].Verified = true
				entries[i].VerifiedAt = &now
			}

			entry := entries[i]
			result = &entry
			return entries, changed, nil
		}

		return nil, false, domain.ErrNotFound
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// IsVerified reports whether an entry matching username, or email case-insensitively,
// is verified.
func (r *verificationRepository) IsVerified(ctx context.Context, username string, email string) (bool, error) {
	entries, err := r.List(ctx)
	if err != nil {
		return false, err
	}

	for i := range entries {
		if !entries[i].Verified {
			continue
		}
		if username != "" && entries[i].Username == username {
			return true, nil
		}
		if entries[i].MatchesEmail(email) {
			return true, nil
		}
	}

	return false, nil
}
