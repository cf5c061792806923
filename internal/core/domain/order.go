package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DeliveryMethod string

const (
	DeliveryMethodDineIn   DeliveryMethod = "Dine-in"
	DeliveryMethodDelivery DeliveryMethod = "Delivery"
)

func (m DeliveryMethod) Valid() bool {
	return m == DeliveryMethodDineIn || m == DeliveryMethodDelivery
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusReady     OrderStatus = "Ready for pickup/delivery"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// LineItem is a menu item as it was priced when the order was placed.
type LineItem struct {
	MenuItemID string
	Name       string
	Price      decimal.Decimal
	Quantity   int
}

func (l LineItem) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Order struct {
	ID              string
	CustomerName    string
	ContactNumber   string
	Email           string
	DeliveryMethod  DeliveryMethod
	TableNumber     int // set only for dine-in
	DeliveryAddress string
	Items           []LineItem
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	CreatedAt       time.Time
}

// OrderLine is one requested (menu item, quantity) pair.
type OrderLine struct {
	MenuItemID string
	Quantity   int
}

type OrderRequest struct {
	CustomerName    string
	ContactNumber   string
	Email           string
	DeliveryMethod  DeliveryMethod
	TableNumber     int
	DeliveryAddress string
	Lines           []OrderLine
}

// LineItemView pairs a stored line with the menu item as it is now; Current
// is nil when the menu item has since been deleted.
type LineItemView struct {
	LineItem
	Current *MenuItem
}

type OrderView struct {
	Order
	Lines []LineItemView
}

type OrderEventType string

const (
	OrderEventStatusChanged OrderEventType = "status_changed"
	OrderEventDeleted       OrderEventType = "deleted"
)

type OrderEvent struct {
	Type       OrderEventType
	OrderID    string
	Status     OrderStatus
	OccurredAt time.Time
}
