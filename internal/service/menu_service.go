package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/taydongtruong/CoffeeShopManagerApp/internal/domain"
)

type MenuService struct {
	repo  MenuRepository
	cache MenuCache
}

func NewMenuService(repo MenuRepository, cache MenuCache) *MenuService {
	return &MenuService{repo: repo, cache: cache}
}

// List returns the menu in insertion order, serving from the cache when a
// fresh snapshot is available.
func (s *MenuService) List(ctx context.Context) ([]domain.MenuItem, error) {
	if s.cache != nil {
		if items, err := s.cache.Get(ctx); err == nil {
			return items, nil
		}
	}

	items, err := s.repo.ListMenuItems()
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, items); err != nil {
			log.Printf("Warning: failed to cache menu snapshot: %v", err)
		}
	}
	return items, nil
}

// GetByName resolves a menu item by its display name, taking the oldest row
// when names collide.
func (s *MenuService) GetByName(ctx context.Context, name string) (*domain.MenuItem, error) {
	item, err := s.repo.GetMenuItemByName(name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return item, nil
}

func (s *MenuService) Create(ctx context.Context, item *domain.MenuItem) error {
	if item.Name == "" || item.Price < 0 {
		return ErrInvalidItem
	}
	if err := s.repo.CreateMenuItem(item); err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *MenuService) Update(ctx context.Context, id int, patch domain.MenuItemPatch) (*domain.MenuItem, error) {
	if patch.Name != nil && *patch.Name == "" {
		return nil, ErrInvalidItem
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, ErrInvalidItem
	}

	item, err := s.repo.UpdateMenuItem(id, patch)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	s.invalidate(ctx)
	return item, nil
}

func (s *MenuService) UpdateImage(ctx context.Context, id int, imageURL string) error {
	rows, err := s.repo.UpdateMenuItemImage(id, imageURL)
	if err != nil {
		return fmt.Errorf("update menu item image: %w", err)
	}
	if rows == 0 {
		return ErrItemNotFound
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes the item permanently. Orders keep their frozen summaries,
// so no cascade is needed.
func (s *MenuService) Delete(ctx context.Context, id int) error {
	rows, err := s.repo.DeleteMenuItem(id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if rows == 0 {
		return ErrItemNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *MenuService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("Warning: failed to invalidate menu cache: %v", err)
	}
}

var _ MenuServiceInterface = (*MenuService)(nil)
