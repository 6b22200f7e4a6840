package storage

import (
	"context"
	"fmt"

	"fintrack/internal/core"
)

// CreateCategory persists a new category.
func (s *Store) CreateCategory(ctx context.Context, name string, userID int64) (core.Category, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (name, user_id) VALUES (?, ?)", name, userID)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: last insert id: %w", err)
	}
	return core.Category{ID: id, Name: name, UserID: userID}, nil
}

// GetCategoryForOwner returns the category only when it exists and is owned
// by userID.
func (s *Store) GetCategoryForOwner(ctx context.Context, id, userID int64) (core.Category, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, user_id FROM categories WHERE id = ? AND user_id = ?",
		id, userID,
	)

	var c core.Category
	if err := row.Scan(&c.ID, &c.Name, &c.UserID); err != nil {
		return core.Category{}, notFoundErr(err, "get category")
	}
	return c, nil
}

// ListCategoriesForOwner returns all categories owned by userID sorted by
// name ascending. The ordering is contractual.
func (s *Store) ListCategoriesForOwner(ctx context.Context, userID int64) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, user_id FROM categories WHERE user_id = ? ORDER BY name ASC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.UserID); err != nil {
			return nil, fmt.Errorf("list categories: scan: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DeleteCategoryForOwner removes the category if owned by userID.
func (s *Store) DeleteCategoryForOwner(ctx context.Context, id, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM categories WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete category: %w", core.ErrNotFound)
	}
	return nil
}
