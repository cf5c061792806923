package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryHotCoffee  Category = "Hot Coffee"
	CategoryColdCoffee Category = "Cold Coffee"
	CategoryPastries   Category = "Pastries"
	CategorySandwiches Category = "Sandwiches"
	CategoryTea        Category = "Tea"
)

var Categories = []Category{
	CategoryHotCoffee,
	CategoryColdCoffee,
	CategoryPastries,
	CategorySandwiches,
	CategoryTea,
}

type MenuItem struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    Category
	Image       string
	CreatedAt   time.Time
}

// MenuItemInput is the admin-supplied shape of a menu item.
type MenuItemInput struct {
	Name        string   `json:"name" validate:"required,max=50"`
	Description string   `json:"description" validate:"required,max=200"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required,oneof='Hot Coffee' 'Cold Coffee' Pastries Sandwiches Tea"`
	Image       string   `json:"image" validate:"max=2048"`
}

// MenuItemPatch carries the fields of a partial menu item update; nil means
// unchanged.
type MenuItemPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
}

var menuItemMessages = map[string]string{
	"name.required":        "Menu item name is required.",
	"name.max":             "Menu item name cannot be more than 50 characters.",
	"description.required": "Menu item description is required.",
	"description.max":      "Menu item description cannot be more than 200 characters.",
	"price.required":       "Menu item price is required.",
	"price.gte":            "Price cannot be negative.",
	"category.required":    "Menu item category is required.",
	"category.oneof":       "Menu item category must be one of Hot Coffee, Cold Coffee, Pastries, Sandwiches, Tea.",
	"image.max":            "Menu item image URL is too long.",
}

func (in *MenuItemInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Image = strings.TrimSpace(in.Image)
}

// NewMenuItem validates the input and builds an unsaved menu item.
func NewMenuItem(in MenuItemInput, now time.Time) (*MenuItem, error) {
	in.normalize()
	if err := validateStruct(in, menuItemMessages); err != nil {
		return nil, err
	}

	return &MenuItem{
		Name:        in.Name,
		Description: in.Description,
		Price:       decimal.NewFromFloat(*in.Price),
		Category:    Category(in.Category),
		Image:       in.Image,
		CreatedAt:   now,
	}, nil
}

// Apply overlays the patch on the item and re-validates the result.
func (m *MenuItem) Apply(p MenuItemPatch) error {
	price := m.Price.InexactFloat64()
	in := MenuItemInput{
		Name:        m.Name,
		Description: m.Description,
		Price:       &price,
		Category:    string(m.Category),
		Image:       m.Image,
	}
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Description != nil {
		in.Description = *p.Description
	}
	if p.Price != nil {
		in.Price = p.Price
	}
	if p.Category != nil {
		in.Category = *p.Category
	}
	if p.Image != nil {
		in.Image = *p.Image
	}

	in.normalize()
	if err := validateStruct(in, menuItemMessages); err != nil {
		return err
	}

	m.Name = in.Name
	m.Description = in.Description
	if p.Price != nil {
		m.Price = decimal.NewFromFloat(*p.Price)
	}
	m.Category = Category(in.Category)
	m.Image = in.Image
	return nil
}
