package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rl1809/cafe/internal/core/domain"
	"github.com/rl1809/cafe/internal/core/service"
	"github.com/rl1809/cafe/internal/port"
)

// CookieConfig describes the admin session cookie.
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

type HTTPHandler struct {
	orderService       *service.OrderService
	menuService        *service.MenuService
	reservationService *service.ReservationService
	contactService     *service.ContactService
	authService        *service.AuthService
	idempotency        port.IdempotencyStore // nil disables Idempotency-Key handling
	cookie             CookieConfig
	logger             *zap.Logger
}

type HTTPHandlerDeps struct {
	Orders       *service.OrderService
	Menu         *service.MenuService
	Reservations *service.ReservationService
	Contacts     *service.ContactService
	Auth         *service.AuthService
	Idempotency  port.IdempotencyStore
	Cookie       CookieConfig
	Logger       *zap.Logger
}

func NewHTTPHandler(deps HTTPHandlerDeps) *HTTPHandler {
	return &HTTPHandler{
		orderService:       deps.Orders,
		menuService:        deps.Menu,
		reservationService: deps.Reservations,
		contactService:     deps.Contacts,
		authService:        deps.Auth,
		idempotency:        deps.Idempotency,
		cookie:             deps.Cookie,
		logger:             deps.Logger,
	}
}

func (h *HTTPHandler) Router() *gin.Engine {
	router := gin.New()
	router.Use(Recovery(h.logger))
	router.Use(RequestID())
	router.Use(RequestLogger(h.logger))

	router.GET("/health", h.HealthCheck)

	router.POST("/orders", h.PlaceOrder)
	router.GET("/menu", h.ListMenu)
	router.POST("/reservations", h.CreateReservation)
	router.POST("/contact", h.SubmitContact)
	router.POST("/admin/login", h.Login)
	router.POST("/admin/logout", h.Logout)

	admin := router.Group("/", h.RequireAdmin)
	{
		admin.GET("/orders", h.ListOrders)
		admin.PUT("/orders", h.UpdateOrder)
		admin.DELETE("/orders", h.DeleteOrder)

		admin.POST("/menu", h.CreateMenuItem)
		admin.PUT("/menu", h.UpdateMenuItem)
		admin.DELETE("/menu", h.DeleteMenuItem)
		admin.POST("/menu/upload", h.UploadMenuImage)

		admin.GET("/reservations", h.ListReservations)
		admin.PUT("/reservations", h.UpdateReservation)
		admin.DELETE("/reservations", h.DeleteReservation)

		admin.GET("/contact", h.ListContacts)
		admin.PUT("/contact", h.UpdateContact)
		admin.DELETE("/contact", h.DeleteContact)
	}

	return router
}

func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeData(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func writeFailure(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Error: message})
}

func writeBadBody(c *gin.Context) {
	writeFailure(c, http.StatusBadRequest, "invalid request body")
}

// writeError maps a service error to its status code. Unexpected errors are
// logged and reported with a generic message.
func (h *HTTPHandler) writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	var nf *domain.NotFoundError

	switch {
	case errors.As(err, &verr):
		writeFailure(c, http.StatusBadRequest, verr.Message)
	case errors.As(err, &nf):
		writeFailure(c, http.StatusNotFound, nf.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeFailure(c, http.StatusNotFound, "not found")
	case errors.Is(err, ErrDuplicateRequest):
		writeFailure(c, http.StatusConflict, "duplicate request")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeFailure(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrUnauthorized):
		writeFailure(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, service.ErrImageStoreDisabled):
		writeFailure(c, http.StatusInternalServerError, "Image upload is not configured")
	default:
		h.logger.Error("request failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		writeFailure(c, http.StatusInternalServerError, "internal error")
	}
}
