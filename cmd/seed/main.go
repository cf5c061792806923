package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/cafe/internal/app"
	"github.com/rl1809/cafe/internal/config"
	"github.com/rl1809/cafe/internal/core/domain"
	"github.com/rl1809/cafe/internal/core/service"
	"github.com/rl1809/cafe/internal/logger"
)

func price(v float64) *float64 { return &v }

var defaultMenu = []domain.MenuItemInput{
	{Name: "Espresso Elegance", Description: "A rich, full-bodied single-origin espresso.", Price: price(4.50), Category: string(domain.CategoryHotCoffee)},
	{Name: "Velvet Latte", Description: "Our signature latte with a smooth, velvety texture.", Price: price(5.25), Category: string(domain.CategoryHotCoffee)},
	{Name: "Cappuccino", Description: "Espresso with steamed milk and a deep layer of foam.", Price: price(4.75), Category: string(domain.CategoryHotCoffee)},
	{Name: "Cold Brew", Description: "Steeped for eighteen hours, served over ice.", Price: price(4.95), Category: string(domain.CategoryColdCoffee)},
	{Name: "Iced Caramel Macchiato", Description: "Vanilla, milk and espresso finished with caramel.", Price: price(5.50), Category: string(domain.CategoryColdCoffee)},
	{Name: "Artisan Croissant", Description: "Flaky, buttery, and baked to golden perfection.", Price: price(3.75), Category: string(domain.CategoryPastries)},
	{Name: "Blueberry Muffin", Description: "Baked each morning with wild blueberries.", Price: price(3.25), Category: string(domain.CategoryPastries)},
	{Name: "Turkey Pesto Panini", Description: "Roast turkey, basil pesto and mozzarella on ciabatta.", Price: price(8.95), Category: string(domain.CategorySandwiches)},
	{Name: "Caprese Sandwich", Description: "Tomato, fresh mozzarella and basil on focaccia.", Price: price(7.95), Category: string(domain.CategorySandwiches)},
	{Name: "Jasmine Green Tea", Description: "Delicate green tea scented with jasmine blossoms.", Price: price(3.50), Category: string(domain.CategoryTea)},
	{Name: "Chai Latte", Description: "Spiced black tea with steamed milk.", Price: price(4.25), Category: string(domain.CategoryTea)},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer lg.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, closeStore, err := app.OpenStore(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to open store", zap.Error(err))
	}
	defer closeStore()

	menuService := service.NewMenuService(store, nil, lg)

	created, skipped, err := seedMenu(ctx, menuService, defaultMenu)
	if err != nil {
		lg.Fatal("seed failed", zap.Error(err))
	}

	lg.Info("menu seeded", zap.Int("created", created), zap.Int("skipped", skipped))
}

// seedMenu creates the items whose names are not on the menu yet.
func seedMenu(ctx context.Context, menu *service.MenuService, items []domain.MenuItemInput) (created, skipped int, err error) {
	existing, err := menu.ListMenu(ctx)
	if err != nil {
		return 0, 0, err
	}

	names := make(map[string]bool, len(existing))
	for _, it := range existing {
		names[it.Name] = true
	}

	for _, in := range items {
		if names[in.Name] {
			skipped++
			continue
		}
		if _, err := menu.CreateMenuItem(ctx, in); err != nil {
			return created, skipped, err
		}
		names[in.Name] = true
		created++
	}
	return created, skipped, nil
}
