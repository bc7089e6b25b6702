package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/CyberCatD/youtube-to-list-app/internal/domain"
	"github.com/CyberCatD/youtube-to-list-app/internal/store"
	"github.com/CyberCatD/youtube-to-list-app/internal/units"
)

// groceryListColumns must match the scan order in scanGroceryList.
const groceryListColumns = `id, name, recipe_ids, created_at, updated_at`

// itemColumns must match the scan order in scanItem.
const itemColumns = `list_id, id, name, quantity, unit, category, recipe_ids,
	retail_package, retail_package_count, exact_amount, is_checked`

func scanGroceryList(scanner interface{ Scan(dest ...any) error }) (*domain.GroceryList, error) {
	var l domain.GroceryList
	var recipeIDs, createdAt, updated string
	if err := scanner.Scan(&l.ID, &l.Name, &recipeIDs, &createdAt, &updated); err != nil {
		return nil, err
	}

	var err error
	if l.RecipeIDs, err = decodeIDs(recipeIDs); err != nil {
		return nil, err
	}
	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if l.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	l.Items = []domain.GroceryListItem{}
	return &l, nil
}

func scanItem(scanner interface{ Scan(dest ...any) error }) (string, domain.GroceryListItem, error) {
	var (
		listID    string
		it        domain.GroceryListItem
		qty       sql.NullFloat64
		unit      string
		recipeIDs string
	)
	err := scanner.Scan(
		&listID,
		&it.ID,
		&it.Name,
		&qty,
		&unit,
		&it.Category,
		&recipeIDs,
		&it.RetailPackage,
		&it.RetailPackageCount,
		&it.ExactAmount,
		&it.IsChecked,
	)
	if err != nil {
		return "", it, err
	}
	it.Quantity = floatPtr(qty)
	it.Unit = units.Unit(unit)
	if it.RecipeIDs, err = decodeIDs(recipeIDs); err != nil {
		return "", it, err
	}
	return listID, it, nil
}

// CreateGroceryList inserts a list with its items. The list must already
// have an id.
func (s *Store) CreateGroceryList(ctx context.Context, list *domain.GroceryList) error {
	now := time.Now()
	if list.CreatedAt.IsZero() {
		list.CreatedAt = now
	}
	list.UpdatedAt = now

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		recipeIDs, err := encodeIDs(list.RecipeIDs)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO grocery_lists (id, name, recipe_ids, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			list.ID, list.Name, recipeIDs, formatTime(list.CreatedAt), formatTime(list.UpdatedAt),
		); err != nil {
			return err
		}
		return insertItems(ctx, tx, list)
	})
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	if err != nil {
		return wrapf(err, "create grocery list")
	}

	s.logger.Debug("Grocery list created", "list_id", list.ID, "items", len(list.Items))
	return nil
}

// GetGroceryList returns a list with its items in list order.
func (s *Store) GetGroceryList(ctx context.Context, id string) (*domain.GroceryList, error) {
	return getGroceryList(ctx, s.db, id)
}

// ListGroceryLists returns all lists, most recently updated first.
func (s *Store) ListGroceryLists(ctx context.Context) ([]*domain.GroceryList, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+groceryListColumns+` FROM grocery_lists ORDER BY updated_at DESC, id ASC`)
	if err != nil {
		return nil, wrapf(err, "list grocery lists")
	}
	defer rows.Close()

	var lists []*domain.GroceryList
	byID := make(map[string]*domain.GroceryList)
	for rows.Next() {
		l, err := scanGroceryList(rows)
		if err != nil {
			return nil, wrapf(err, "scan grocery list")
		}
		lists = append(lists, l)
		byID[l.ID] = l
	}
	if err := rows.Err(); err != nil {
		return nil, wrapf(err, "list grocery lists")
	}
	rows.Close()

	if err := loadItems(ctx, s.db, byID,
		`SELECT `+itemColumns+` FROM grocery_list_items ORDER BY list_id, position ASC`); err != nil {
		return nil, err
	}
	return lists, nil
}

// UpdateGroceryList replaces a stored list and its items and bumps UpdatedAt.
func (s *Store) UpdateGroceryList(ctx context.Context, list *domain.GroceryList) error {
	list.Touch()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return writeGroceryList(ctx, tx, list)
	})
	if errors.Is(err, store.ErrNotFound) {
		return store.GroceryListNotFound(list.ID)
	}
	if err != nil {
		return wrapf(err, "update grocery list %s", list.ID)
	}
	return nil
}

// UpdateGroceryListFunc applies fn to the stored list inside one transaction.
// Transactions begin IMMEDIATE, so concurrent updates of a list queue on the
// write lock instead of reading the same version.
func (s *Store) UpdateGroceryListFunc(ctx context.Context, id string, fn func(*domain.GroceryList) error) (*domain.GroceryList, error) {
	var (
		updated *domain.GroceryList
		fnErr   error
	)
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		l, err := getGroceryList(ctx, tx, id)
		if err != nil {
			return err
		}
		if fnErr = fn(l); fnErr != nil {
			return fnErr
		}
		l.Touch()
		if err := writeGroceryList(ctx, tx, l); err != nil {
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
	case errors.Is(err, store.ErrNotFound):
		return nil, err
	default:
		return nil, wrapf(err, "update grocery list %s", id)
	}
}

// DeleteGroceryList removes a list. Its items go with it.
func (s *Store) DeleteGroceryList(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM grocery_lists WHERE id = ?`, id)
	if err != nil {
		return wrapf(err, "delete grocery list %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapf(err, "delete grocery list %s", id)
	}
	if n == 0 {
		return store.GroceryListNotFound(id)
	}

	s.logger.Debug("Grocery list deleted", "list_id", id)
	return nil
}

func insertItems(ctx context.Context, tx *sql.Tx, list *domain.GroceryList) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO grocery_list_items (`+itemColumns+`, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, it := range list.Items {
		recipeIDs, err := encodeIDs(it.RecipeIDs)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx,
			list.ID,
			it.ID,
			it.Name,
			nullFloat(it.Quantity),
			string(it.Unit),
			it.Category,
			recipeIDs,
			it.RetailPackage,
			it.RetailPackageCount,
			it.ExactAmount,
			it.IsChecked,
			i,
		); err != nil {
			return err
		}
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getGroceryList(ctx context.Context, q querier, id string) (*domain.GroceryList, error) {
	l, err := scanGroceryList(q.QueryRowContext(ctx,
		`SELECT `+groceryListColumns+` FROM grocery_lists WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.GroceryListNotFound(id)
	}
	if err != nil {
		return nil, wrapf(err, "get grocery list %s", id)
	}

	if err := loadItems(ctx, q, map[string]*domain.GroceryList{l.ID: l},
		`SELECT `+itemColumns+` FROM grocery_list_items WHERE list_id = ? ORDER BY position ASC`, id); err != nil {
		return nil, err
	}
	return l, nil
}

// writeGroceryList overwrites the list row and replaces its items. It
// returns store.ErrNotFound when the list row is gone.
func writeGroceryList(ctx context.Context, tx *sql.Tx, list *domain.GroceryList) error {
	recipeIDs, err := encodeIDs(list.RecipeIDs)
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `
		UPDATE grocery_lists SET name = ?, recipe_ids = ?, updated_at = ? WHERE id = ?`,
		list.Name, recipeIDs, formatTime(list.UpdatedAt), list.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return store.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM grocery_list_items WHERE list_id = ?`, list.ID); err != nil {
		return err
	}
	return insertItems(ctx, tx, list)
}

// loadItems attaches the items returned by query to their lists.
func loadItems(ctx context.Context, q querier, lists map[string]*domain.GroceryList, query string, args ...any) error {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return wrapf(err, "load grocery list items")
	}
	defer rows.Close()

	for rows.Next() {
		listID, it, err := scanItem(rows)
		if err != nil {
			return wrapf(err, "scan grocery list item")
		}
		if l, ok := lists[listID]; ok {
			l.Items = append(l.Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return wrapf(err, "load grocery list items")
	}
	return nil
}
