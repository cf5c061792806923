package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rl1809/cafe/internal/core/domain"
)

const idempotencyHeader = "Idempotency-Key"

// FlexInt accepts a JSON number or a numeric string; form inputs post the
// table number as a string.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return errors.New("not an integer")
		}
		*n = FlexInt(v)
		return nil
	}

	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = FlexInt(v)
	return nil
}

type OrderLineRequest struct {
	MenuItem string  `json:"menuItem"`
	Quantity FlexInt `json:"quantity"`
}

// PlaceOrderRequest carries no price fields, so client-sent prices and
// totals are dropped while decoding.
type PlaceOrderRequest struct {
	Name            string             `json:"name"`
	ContactNumber   string             `json:"contactNumber"`
	Email           string             `json:"email"`
	DeliveryMethod  string             `json:"deliveryMethod"`
	TableNumber     FlexInt            `json:"tableNumber"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Order           []OrderLineRequest `json:"order"`
}

func (r PlaceOrderRequest) toDomain() domain.OrderRequest {
	lines := make([]domain.OrderLine, 0, len(r.Order))
	for _, l := range r.Order {
		lines = append(lines, domain.OrderLine{MenuItemID: l.MenuItem, Quantity: int(l.Quantity)})
	}
	return domain.OrderRequest{
		CustomerName:    r.Name,
		ContactNumber:   r.ContactNumber,
		Email:           r.Email,
		DeliveryMethod:  domain.DeliveryMethod(r.DeliveryMethod),
		TableNumber:     int(r.TableNumber),
		DeliveryAddress: r.DeliveryAddress,
		Lines:           lines,
	}
}

type UpdateOrderStatusRequest struct {
	ID     string `json:"_id"`
	Status string `json:"status"`
}

type idRequest struct {
	ID string `json:"_id"`
}

type MenuItemRef struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

type LineItemMessage struct {
	// MenuItem is the referenced id, or in listings the current menu item
	// (null once deleted).
	MenuItem any     `json:"menuItem"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type OrderMessage struct {
	ID              string            `json:"_id"`
	Name            string            `json:"name"`
	ContactNumber   string            `json:"contactNumber"`
	Email           string            `json:"email"`
	DeliveryMethod  string            `json:"deliveryMethod"`
	TableNumber     int               `json:"tableNumber,omitempty"`
	DeliveryAddress string            `json:"deliveryAddress,omitempty"`
	Order           []LineItemMessage `json:"order"`
	TotalAmount     float64           `json:"totalAmount"`
	Status          string            `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
}

func newOrderMessage(o domain.Order) OrderMessage {
	lines := make([]LineItemMessage, 0, len(o.Items))
	for _, li := range o.Items {
		lines = append(lines, LineItemMessage{
			MenuItem: li.MenuItemID,
			Name:     li.Name,
			Price:    li.Price.InexactFloat64(),
			Quantity: li.Quantity,
		})
	}

	return OrderMessage{
		ID:              o.ID,
		Name:            o.CustomerName,
		ContactNumber:   o.ContactNumber,
		Email:           o.Email,
		DeliveryMethod:  string(o.DeliveryMethod),
		TableNumber:     o.TableNumber,
		DeliveryAddress: o.DeliveryAddress,
		Order:           lines,
		TotalAmount:     o.TotalAmount.InexactFloat64(),
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
	}
}

func newOrderViewMessage(v domain.OrderView) OrderMessage {
	resp := newOrderMessage(v.Order)
	for i, line := range v.Lines {
		if line.Current == nil {
			resp.Order[i].MenuItem = nil
			continue
		}
		resp.Order[i].MenuItem = MenuItemRef{
			ID:    line.Current.ID,
			Name:  line.Current.Name,
			Price: line.Current.Price.InexactFloat64(),
			Image: line.Current.Image,
		}
	}
	return resp
}

// PlaceOrder honours an optional Idempotency-Key header.
func (h *HTTPHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadBody(c)
		return
	}

	ctx := c.Request.Context()
	order, err := placeOnce(ctx, h.idempotency, c.GetHeader(idempotencyHeader), h.logger, func() (*domain.Order, error) {
		return h.orderService.PlaceOrder(ctx, req.toDomain())
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	writeData(c, http.StatusCreated, newOrderMessage(*order))
}

func (h *HTTPHandler) ListOrders(c *gin.Context) {
	views, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]OrderMessage, 0, len(views))
	for _, v := range views {
		resp = append(resp, newOrderViewMessage(v))
	}
	writeData(c, http.StatusOK, resp)
}

// UpdateOrder changes only the status; other fields in the body are ignored.
func (h *HTTPHandler) UpdateOrder(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadBody(c)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), req.ID, domain.OrderStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}

	writeData(c, http.StatusOK, newOrderMessage(*order))
}

func (h *HTTPHandler) DeleteOrder(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadBody(c)
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), req.ID); err != nil {
		h.writeError(c, err)
		return
	}

	writeData(c, http.StatusOK, gin.H{})
}
