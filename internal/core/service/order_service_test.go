package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/cafe/internal/core/domain"
)

func cafeMenu() *mockMenuRepo {
	return newMockMenuRepo(
		domain.MenuItem{ID: "espresso", Name: "Espresso", Price: decimal.RequireFromString("4.50"), Category: domain.CategoryHotCoffee},
		domain.MenuItem{ID: "croissant", Name: "Croissant", Price: decimal.RequireFromString("3.75"), Category: domain.CategoryPastries},
		domain.MenuItem{ID: "latte", Name: "Iced Latte", Price: decimal.RequireFromString("5.10"), Category: domain.CategoryColdCoffee},
	)
}

func dineInRequest(lines ...domain.OrderLine) domain.OrderRequest {
	return domain.OrderRequest{
		CustomerName:   "Ada",
		ContactNumber:  "555-0100",
		Email:          "ada@example.com",
		DeliveryMethod: domain.DeliveryMethodDineIn,
		TableNumber:    4,
		Lines:          lines,
	}
}

func newTestOrderService(menu *mockMenuRepo, orders *mockOrderRepo) *OrderService {
	return NewOrderService(menu, orders, zap.NewNop(), 100)
}

func TestPlaceOrder_Success(t *testing.T) {
	orders := newMockOrderRepo()
	svc := newTestOrderService(cafeMenu(), orders)
	defer svc.Close()

	order, err := svc.PlaceOrder(context.Background(), dineInRequest(
		domain.OrderLine{MenuItemID: "espresso", Quantity: 2},
		domain.OrderLine{MenuItemID: "croissant", Quantity: 1},
	))
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if !order.TotalAmount.Equal(decimal.RequireFromString("12.75")) {
		t.Errorf("expected total 12.75, got %s", order.TotalAmount)
	}
	if order.Status != domain.OrderStatusPending {
		t.Errorf("expected Pending status, got %s", order.Status)
	}
	if order.ID == "" {
		t.Error("expected non-empty order ID")
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(order.Items))
	}

	first := order.Items[0]
	if first.MenuItemID != "espresso" || first.Name != "Espresso" || first.Quantity != 2 {
		t.Errorf("unexpected first line snapshot: %+v", first)
	}
	if !first.Price.Equal(decimal.RequireFromString("4.50")) {
		t.Errorf("expected snapshot price 4.50, got %s", first.Price)
	}

	if orders.count() != 1 {
		t.Errorf("expected 1 stored order, got %d", orders.count())
	}
}

func TestPlaceOrder_UsesCurrentCatalogPrice(t *testing.T) {
	menu := cafeMenu()
	svc := newTestOrderService(menu, newMockOrderRepo())
	defer svc.Close()

	menu.items["espresso"] = domain.MenuItem{ID: "espresso", Name: "Espresso", Price: decimal.RequireFromString("5.25")}

	order, err := svc.PlaceOrder(context.Background(), dineInRequest(
		domain.OrderLine{MenuItemID: "espresso", Quantity: 3},
	))
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if !order.TotalAmount.Equal(decimal.RequireFromString("15.75")) {
		t.Errorf("expected total 15.75, got %s", order.TotalAmount)
	}
}

func TestPlaceOrder_ExactDecimalTotal(t *testing.T) {
	menu := newMockMenuRepo(
		domain.MenuItem{ID: "a", Name: "A", Price: decimal.RequireFromString("0.10")},
		domain.MenuItem{ID: "b", Name: "B", Price: decimal.RequireFromString("0.20")},
	)
	svc := newTestOrderService(menu, newMockOrderRepo())
	defer svc.Close()

	order, err := svc.PlaceOrder(context.Background(), dineInRequest(
		domain.OrderLine{MenuItemID: "a", Quantity: 1},
		domain.OrderLine{MenuItemID: "b", Quantity: 1},
	))
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if order.TotalAmount.String() != "0.3" {
		t.Errorf("expected total 0.3, got %s", order.TotalAmount)
	}
}

func TestPlaceOrder_DuplicateLinesKeptSeparate(t *testing.T) {
	menu := cafeMenu()
	svc := newTestOrderService(menu, newMockOrderRepo())
	defer svc.Close()

	order, err := svc.PlaceOrder(context.Background(), dineInRequest(
		domain.OrderLine{MenuItemID: "espresso", Quantity: 1},
		domain.OrderLine{MenuItemID: "espresso", Quantity: 2},
	))
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if len(order.Items) != 2 {
		t.Fatalf("expected 2 separate lines, got %d", len(order.Items))
	}
	if order.Items[0].Quantity != 1 || order.Items[1].Quantity != 2 {
		t.Errorf("expected quantities 1 and 2, got %d and %d", order.Items[0].Quantity, order.Items[1].Quantity)
	}
	if !order.TotalAmount.Equal(decimal.RequireFromString("13.50")) {
		t.Errorf("expected total 13.50, got %s", order.TotalAmount)
	}
	if menu.reads != 2 {
		t.Errorf("expected one catalog read per line, got %d", menu.reads)
	}
}

func TestPlaceOrder_UnknownMenuItem(t *testing.T) {
	orders := newMockOrderRepo()
	svc := newTestOrderService(cafeMenu(), orders)
	defer svc.Close()

	_, err := svc.PlaceOrder(context.Background(), dineInRequest(
		domain.OrderLine{MenuItemID: "espresso", Quantity: 1},
		domain.OrderLine{MenuItemID: "missing-item", Quantity: 1},
	))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}

	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.ID != "missing-item" {
		t.Errorf("expected not found error naming missing-item, got: %v", err)
	}

	if orders.count() != 0 {
		t.Errorf("expected no stored orders, got %d", orders.count())
	}
}

func TestPlaceOrder_StoreFailure(t *testing.T) {
	orders := newMockOrderRepo()
	orders.failErr = errors.New("connection reset")
	svc := newTestOrderService(cafeMenu(), orders)
	defer svc.Close()

	_, err := svc.PlaceOrder(context.Background(), dineInRequest(
		domain.OrderLine{MenuItemID: "espresso", Quantity: 1},
	))
	if err == nil {
		t.Fatal("expected error when the store fails")
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) || errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected unexpected error, got classified error: %v", err)
	}
}

func TestPlaceOrder_Validation(t *testing.T) {
	valid := func() domain.OrderRequest {
		return dineInRequest(domain.OrderLine{MenuItemID: "espresso", Quantity: 1})
	}

	tests := []struct {
		name  string
		edit  func(r *domain.OrderRequest)
		field string
	}{
		{"missing name", func(r *domain.OrderRequest) { r.CustomerName = "  " }, "name"},
		{"missing contact number", func(r *domain.OrderRequest) { r.ContactNumber = "" }, "contactNumber"},
		{"missing email", func(r *domain.OrderRequest) { r.Email = "" }, "email"},
		{"malformed email", func(r *domain.OrderRequest) { r.Email = "ada-at-example" }, "email"},
		{"missing delivery method", func(r *domain.OrderRequest) { r.DeliveryMethod = "" }, "deliveryMethod"},
		{"unknown delivery method", func(r *domain.OrderRequest) { r.DeliveryMethod = "Takeout" }, "deliveryMethod"},
		{"empty item list", func(r *domain.OrderRequest) { r.Lines = nil }, "order"},
		{"dine-in without table", func(r *domain.OrderRequest) { r.TableNumber = 0 }, "tableNumber"},
		{"negative table", func(r *domain.OrderRequest) { r.TableNumber = -2 }, "tableNumber"},
		{"delivery with table but no address", func(r *domain.OrderRequest) {
			r.DeliveryMethod = domain.DeliveryMethodDelivery
			r.TableNumber = 3
		}, "deliveryAddress"},
		{"zero quantity", func(r *domain.OrderRequest) { r.Lines[0].Quantity = 0 }, "order[0].quantity"},
		{"blank menu item", func(r *domain.OrderRequest) { r.Lines[0].MenuItemID = "" }, "order[0].menuItem"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menu := cafeMenu()
			orders := newMockOrderRepo()
			svc := newTestOrderService(menu, orders)
			defer svc.Close()

			req := valid()
			tt.edit(&req)

			_, err := svc.PlaceOrder(context.Background(), req)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got: %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q (%s)", tt.field, verr.Field, verr.Message)
			}
			if orders.count() != 0 {
				t.Errorf("expected no stored orders, got %d", orders.count())
			}
			if menu.reads != 0 {
				t.Errorf("expected no catalog reads before validation passes, got %d", menu.reads)
			}
		})
	}
}

func TestPlaceOrder_KeepsOnlyMethodField(t *testing.T) {
	svc := newTestOrderService(cafeMenu(), newMockOrderRepo())
	defer svc.Close()

	req := dineInRequest(domain.OrderLine{MenuItemID: "latte", Quantity: 1})
	req.DeliveryAddress = "12 Harbour Road"
	order, err := svc.PlaceOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.TableNumber != 4 || order.DeliveryAddress != "" {
		t.Errorf("dine-in order should keep only the table, got table=%d address=%q", order.TableNumber, order.DeliveryAddress)
	}

	req = dineInRequest(domain.OrderLine{MenuItemID: "latte", Quantity: 1})
	req.DeliveryMethod = domain.DeliveryMethodDelivery
	req.DeliveryAddress = "12 Harbour Road"
	order, err = svc.PlaceOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.TableNumber != 0 || order.DeliveryAddress != "12 Harbour Road" {
		t.Errorf("delivery order should keep only the address, got table=%d address=%q", order.TableNumber, order.DeliveryAddress)
	}
}

func TestListOrders_JoinsCurrentMenuWithoutTouchingSnapshot(t *testing.T) {
	menu := cafeMenu()
	svc := newTestOrderService(menu, newMockOrderRepo())
	defer svc.Close()

	ctx := context.Background()
	placed, err := svc.PlaceOrder(ctx, dineInRequest(
		domain.OrderLine{MenuItemID: "espresso", Quantity: 2},
		domain.OrderLine{MenuItemID: "croissant", Quantity: 1},
	))
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	// Reprice one item and delete the other.
	menu.items["espresso"] = domain.MenuItem{ID: "espresso", Name: "Espresso Doppio", Price: decimal.RequireFromString("6.00")}
	delete(menu.items, "croissant")

	views, err := svc.ListOrders(ctx)
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 order, got %d", len(views))
	}

	v := views[0]
	if v.ID != placed.ID {
		t.Errorf("expected order %s, got %s", placed.ID, v.ID)
	}
	if !v.TotalAmount.Equal(decimal.RequireFromString("12.75")) {
		t.Errorf("expected stored total 12.75, got %s", v.TotalAmount)
	}

	espresso := v.Lines[0]
	if !espresso.Price.Equal(decimal.RequireFromString("4.50")) || espresso.Name != "Espresso" {
		t.Errorf("expected snapshot Espresso@4.50, got %s@%s", espresso.Name, espresso.Price)
	}
	if espresso.Current == nil || !espresso.Current.Price.Equal(decimal.RequireFromString("6.00")) {
		t.Errorf("expected current price 6.00, got %+v", espresso.Current)
	}

	if v.Lines[1].Current != nil {
		t.Errorf("expected nil current menu item for deleted croissant, got %+v", v.Lines[1].Current)
	}
}

func TestUpdateStatus_AnyTransitionIsAllowed(t *testing.T) {
	svc := newTestOrderService(cafeMenu(), newMockOrderRepo())
	defer svc.Close()

	ctx := context.Background()
	order, err := svc.PlaceOrder(ctx, dineInRequest(domain.OrderLine{MenuItemID: "espresso", Quantity: 1}))
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	sequence := []domain.OrderStatus{
		domain.OrderStatusCompleted,
		domain.OrderStatusPending,
		domain.OrderStatusCancelled,
		domain.OrderStatusConfirmed,
		domain.OrderStatusReady,
		domain.OrderStatusPreparing,
	}
	for _, status := range sequence {
		for i := 0; i < 2; i++ {
			updated, err := svc.UpdateStatus(ctx, order.ID, status)
			if err != nil {
				t.Fatalf("update to %s failed: %v", status, err)
			}
			if updated.Status != status {
				t.Errorf("expected status %s, got %s", status, updated.Status)
			}
			if !updated.TotalAmount.Equal(order.TotalAmount) {
				t.Errorf("status update changed total: %s", updated.TotalAmount)
			}
		}
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := newTestOrderService(cafeMenu(), newMockOrderRepo())
	defer svc.Close()

	_, err := svc.UpdateStatus(context.Background(), "nope", domain.OrderStatusConfirmed)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}

	select {
	case ev := <-svc.GetEventQueue():
		t.Errorf("expected no event for failed update, got %+v", ev)
	default:
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := newTestOrderService(cafeMenu(), newMockOrderRepo())
	defer svc.Close()

	_, err := svc.UpdateStatus(context.Background(), "order-1", "Shipped")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got: %v", err)
	}
}

func TestUpdateStatus_EnqueuesEvent(t *testing.T) {
	svc := newTestOrderService(cafeMenu(), newMockOrderRepo())
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	ctx := context.Background()
	order, err := svc.PlaceOrder(ctx, dineInRequest(domain.OrderLine{MenuItemID: "espresso", Quantity: 1}))
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	select {
	case ev := <-svc.GetEventQueue():
		t.Fatalf("placing an order must not emit events, got %+v", ev)
	default:
	}

	if _, err := svc.UpdateStatus(ctx, order.ID, domain.OrderStatusConfirmed); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	ev := <-svc.GetEventQueue()
	if ev.Type != domain.OrderEventStatusChanged || ev.OrderID != order.ID || ev.Status != domain.OrderStatusConfirmed {
		t.Errorf("unexpected event: %+v", ev)
	}
	if !ev.OccurredAt.Equal(now) {
		t.Errorf("expected event time %v, got %v", now, ev.OccurredAt)
	}

	svc.Close()
}

func TestUpdateStatus_FullQueueDoesNotBlock(t *testing.T) {
	svc := NewOrderService(cafeMenu(), newMockOrderRepo(), zap.NewNop(), 1)
	defer svc.Close()

	ctx := context.Background()
	order, err := svc.PlaceOrder(ctx, dineInRequest(domain.OrderLine{MenuItemID: "espresso", Quantity: 1}))
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5; i++ {
			if _, err := svc.UpdateStatus(ctx, order.ID, domain.OrderStatusPreparing); err != nil {
				t.Errorf("update failed: %v", err)
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("status updates blocked on a full event queue")
	}
}

func TestDeleteOrder(t *testing.T) {
	svc := newTestOrderService(cafeMenu(), newMockOrderRepo())
	defer svc.Close()

	ctx := context.Background()
	keep, _ := svc.PlaceOrder(ctx, dineInRequest(domain.OrderLine{MenuItemID: "espresso", Quantity: 1}))
	drop, _ := svc.PlaceOrder(ctx, dineInRequest(domain.OrderLine{MenuItemID: "latte", Quantity: 1}))

	if err := svc.DeleteOrder(ctx, drop.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	views, err := svc.ListOrders(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 1 || views[0].ID != keep.ID {
		t.Errorf("expected only order %s to remain, got %+v", keep.ID, views)
	}

	ev := <-svc.GetEventQueue()
	if ev.Type != domain.OrderEventDeleted || ev.OrderID != drop.ID {
		t.Errorf("unexpected event: %+v", ev)
	}

	err = svc.DeleteOrder(ctx, drop.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got: %v", err)
	}
}
