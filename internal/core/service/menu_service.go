package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/cafe/internal/core/domain"
	"github.com/rl1809/cafe/internal/port"
)

var ErrImageStoreDisabled = errors.New("image uploads are not configured")

type MenuService struct {
	menu   port.MenuRepository
	images port.ImageStore
	logger *zap.Logger
	now    func() time.Time
}

// NewMenuService builds the catalog service. images may be nil, in which case
// UploadImage returns ErrImageStoreDisabled.
func NewMenuService(menu port.MenuRepository, images port.ImageStore, logger *zap.Logger) *MenuService {
	return &MenuService{
		menu:   menu,
		images: images,
		logger: logger,
		now:    time.Now,
	}
}

func (s *MenuService) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := s.menu.ListMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	return items, nil
}

func (s *MenuService) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	return s.menu.GetMenuItem(ctx, id)
}

func (s *MenuService) CreateMenuItem(ctx context.Context, in domain.MenuItemInput) (*domain.MenuItem, error) {
	item, err := domain.NewMenuItem(in, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.menu.CreateMenuItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}

	s.logger.Info("menu item created",
		zap.String("menu_item_id", item.ID),
		zap.String("name", item.Name))
	return item, nil
}

func (s *MenuService) UpdateMenuItem(ctx context.Context, id string, patch domain.MenuItemPatch) (*domain.MenuItem, error) {
	if id == "" {
		return nil, domain.NewValidationError("_id", "Menu item ID is required for updating.")
	}

	item, err := s.menu.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := item.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.menu.UpdateMenuItem(ctx, *item); err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}

	s.logger.Info("menu item updated", zap.String("menu_item_id", id))
	return item, nil
}

func (s *MenuService) DeleteMenuItem(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidationError("_id", "Menu item ID is required for deletion.")
	}

	if err := s.menu.DeleteMenuItem(ctx, id); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}

	s.logger.Info("menu item deleted", zap.String("menu_item_id", id))
	return nil
}

func (s *MenuService) UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	if s.images == nil {
		return "", ErrImageStoreDisabled
	}

	url, err := s.images.UploadImage(ctx, filename, contentType, body)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	s.logger.Info("menu image uploaded", zap.String("url", url))
	return url, nil
}
