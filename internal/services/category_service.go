package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// CategoryStore is the owner-scoped persistence capability categories need.
type CategoryStore interface {
	CreateCategory(ctx context.Context, name string, userID int64) (core.Category, error)
	GetCategoryForOwner(ctx context.Context, id, userID int64) (core.Category, error)
	ListCategoriesForOwner(ctx context.Context, userID int64) ([]core.Category, error)
	DeleteCategoryForOwner(ctx context.Context, id, userID int64) error
}

type CategoryService struct {
	store CategoryStore
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

// List returns all categories owned by userID sorted by name ascending.
func (s *CategoryService) List(ctx context.Context, userID int64) ([]core.Category, error) {
	categories, err := s.store.ListCategoriesForOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Create persists a new category for userID.
func (s *CategoryService) Create(ctx context.Context, name string, userID int64) (core.Category, error) {
	c := core.Category{Name: strings.TrimSpace(name), UserID: userID}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	created, err := s.store.CreateCategory(ctx, c.Name, userID)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	slog.InfoContext(ctx, "Category created", log.FieldCategoryID, created.ID, log.FieldUserID, userID)
	return created, nil
}

// Delete removes the category if it exists and is owned by userID.
func (s *CategoryService) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.store.GetCategoryForOwner(ctx, id, userID); err != nil {
		return err
	}
	if err := s.store.DeleteCategoryForOwner(ctx, id, userID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Category deleted", log.FieldCategoryID, id, log.FieldUserID, userID)
	return nil
}
