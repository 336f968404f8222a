package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aetherdigital/backend/internal/domain"
	"github.com/aetherdigital/backend/internal/storage"
)

type usedTokenRepository struct {
	doc *document[string]
}

func newUsedTokenRepository(backend storage.Backend, name string) *usedTokenRepository {
	return &usedTokenRepository{
		doc: newDocument[string](backend, name),
	}
}

func (r *usedTokenRepository) IsUsed(ctx context.Context, nonce string) (bool, error) {
	nonces, err := r.doc.read(ctx)
	if err != nil {
		return false, fmt.Errorf("repository.usedToken.IsUsed: %w", err)
	}

	for _, used := range nonces {
		if used == nonce {
			return true, nil
		}
	}

	return false, nil
}

// MarkUsed adds nonce to the set. The set is stored sorted and only grows.
// A nonce that is already present yields domain.ErrDuplicateEntry, so of several
// writers racing on one nonce exactly one succeeds.
func (r *usedTokenRepository) MarkUsed(ctx context.Context, nonce string) error {
	if nonce == "" {
		return errors.New("repository.usedToken.MarkUsed: empty nonce")
	}

	err := r.doc.update(ctx, func(nonces []string) ([]string, bool, error) {
		// documents written by hand or by older versions may not be sorted
		if !sort.StringsAreSorted(nonces) {
			sort.Strings(nonces)
		}

		i := sort.SearchStrings(nonces, nonce)
		if i < len(nonces) && nonces[i] == nonce {
			return nil, false, domain.ErrDuplicateEntry
		}

		nonces = append(nonces, "")
		copy(nonces[i+1:], nonces[i:])
		nonces[i] = nonce
		return nonces, true, nil
	})
	if err != nil {
		return fmt.Errorf("repository.usedToken.MarkUsed: %w", err)
	}

	return nil
}

func (r *usedTokenRepository) Count(ctx context.Context) (int, error) {
	nonces, err := r.doc.read(ctx)
	if err != nil {
		return 0, fmt.Errorf("repository.usedToken.Count: %w", err)
	}

	return len(nonces), nil
}
