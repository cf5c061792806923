package port

import (
	"context"

	"github.com/rl1809/cafe/internal/core/domain"
)

type MenuRepository interface {
	// ListMenuItems returns every menu item sorted by category, then name
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)

	// GetMenuItem returns a *domain.NotFoundError when the id is unknown
	GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error)

	// GetMenuItems resolves a batch of ids; unknown ids are left out of the map
	GetMenuItems(ctx context.Context, ids []string) (map[string]domain.MenuItem, error)

	// CreateMenuItem stores the item and assigns its ID
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error

	UpdateMenuItem(ctx context.Context, item domain.MenuItem) error

	DeleteMenuItem(ctx context.Context, id string) error
}
