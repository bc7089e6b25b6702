package store

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/CyberCatD/youtube-to-list-app/internal/domain"
)

// maxConflictRetries bounds how often a list update is replayed after a
// concurrent write to the same keys.
const maxConflictRetries = 10

// CreateGroceryList stores a new list. The list must already have an id.
func (s *BadgerStore) CreateGroceryList(ctx context.Context, list *domain.GroceryList) error {
	now := time.Now()
	if list.CreatedAt.IsZero() {
		list.CreatedAt = now
	}
	list.UpdatedAt = now

	if err := s.groceryLists.Create(ctx, list.ID, list); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return err
		}
		return wrapf(err, "create grocery list")
	}

	s.logger.Debug("Grocery list created", "list_id", list.ID, "items", len(list.Items))
	return nil
}

// GetGroceryList returns a list with its items.
func (s *BadgerStore) GetGroceryList(ctx context.Context, id string) (*domain.GroceryList, error) {
	l, err := s.groceryLists.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, GroceryListNotFound(id)
	}
	if err != nil {
		return nil, wrapf(err, "get grocery list %s", id)
	}
	return l, nil
}

// ListGroceryLists returns all lists, most recently updated first.
func (s *BadgerStore) ListGroceryLists(ctx context.Context) ([]*domain.GroceryList, error) {
	var out []*domain.GroceryList
	for l, err := range s.groceryLists.List(ctx) {
		if err != nil {
			return nil, wrapf(err, "list grocery lists")
		}
		out = append(out, l)
	}
	sortByUpdatedDesc(out)
	return out, nil
}

// UpdateGroceryList replaces a stored list and bumps its UpdatedAt.
func (s *BadgerStore) UpdateGroceryList(ctx context.Context, list *domain.GroceryList) error {
	list.Touch()
	err := s.groceryLists.Update(ctx, list.ID, list)
	if errors.Is(err, ErrNotFound) {
		return GroceryListNotFound(list.ID)
	}
	if err != nil {
		return wrapf(err, "update grocery list %s", list.ID)
	}
	return nil
}

// UpdateGroceryListFunc applies fn to the stored list inside one badger
// transaction. List updates are serialized within the process and a commit
// conflict with any other writer replays fn on a fresh copy.
func (s *BadgerStore) UpdateGroceryListFunc(ctx context.Context, id string, fn func(*domain.GroceryList) error) (*domain.GroceryList, error) {
	s.listMu.Lock()
	defer s.listMu.Unlock()

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var (
			updated *domain.GroceryList
			fnErr   error
		)
		err := s.db.Update(func(txn *badger.Txn) error {
			l, err := s.groceryLists.load(txn, id)
			if errors.Is(err, ErrNotFound) {
				return GroceryListNotFound(id)
			}
			if err != nil {
				return err
			}
			if fnErr = fn(l); fnErr != nil {
				return fnErr
			}
			l.Touch()
			if err := s.groceryLists.UpdateTxn(txn, id, l); err != nil {
				return err
			}
			updated = l
			return nil
		})

		switch {
		case fnErr != nil:
			return nil, fnErr
		case err == nil:
			return updated, nil
		case errors.Is(err, badger.ErrConflict) && attempt < maxConflictRetries:
			s.logger.Debug("Grocery list update conflict, retrying", "list_id", id, "attempt", attempt+1)
			continue
		case errors.Is(err, ErrNotFound):
			return nil, err
		default:
			return nil, wrapf(err, "update grocery list %s", id)
		}
	}
}

// DeleteGroceryList removes a list and its items.
func (s *BadgerStore) DeleteGroceryList(ctx context.Context, id string) error {
	if _, err := s.GetGroceryList(ctx, id); err != nil {
		return err
	}
	if err := s.groceryLists.Delete(ctx, id); err != nil {
		return wrapf(err, "delete grocery list %s", id)
	}
	s.logger.Debug("Grocery list deleted", "list_id", id)
	return nil
}

func sortByUpdatedDesc(lists []*domain.GroceryList) {
	slices.SortStableFunc(lists, func(a, b *domain.GroceryList) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
