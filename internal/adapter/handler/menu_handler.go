package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rl1809/cafe/internal/core/domain"
)

type menuItemResponse struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newMenuItemResponse(it domain.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price.InexactFloat64(),
		Category:    string(it.Category),
		Image:       it.Image,
		CreatedAt:   it.CreatedAt,
	}
}

type updateMenuItemRequest struct {
	ID string `json:"_id"`
	domain.MenuItemPatch
}

func (h *HTTPHandler) ListMenu(c *gin.Context) {
	items, err := h.menuService.ListMenu(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]menuItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, newMenuItemResponse(it))
	}
	writeData(c, http.StatusOK, resp)
}

func (h *HTTPHandler) CreateMenuItem(c *gin.Context) {
	var in domain.MenuItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBadBody(c)
		return
	}

	item, err := h.menuService.CreateMenuItem(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	writeData(c, http.StatusCreated, newMenuItemResponse(*item))
}

func (h *HTTPHandler) UpdateMenuItem(c *gin.Context) {
	var req updateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadBody(c)
		return
	}

	item, err := h.menuService.UpdateMenuItem(c.Request.Context(), req.ID, req.MenuItemPatch)
	if err != nil {
		h.writeError(c, err)
		return
	}

	writeData(c, http.StatusOK, newMenuItemResponse(*item))
}

func (h *HTTPHandler) DeleteMenuItem(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadBody(c)
		return
	}

	if err := h.menuService.DeleteMenuItem(c.Request.Context(), req.ID); err != nil {
		h.writeError(c, err)
		return
	}

	writeData(c, http.StatusOK, gin.H{})
}

func (h *HTTPHandler) UploadMenuImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		writeFailure(c, http.StatusBadRequest, "No file provided")
		return
	}

	f, err := header.Open()
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer f.Close()

	url, err := h.menuService.UploadImage(c.Request.Context(), header.Filename, header.Header.Get("Content-Type"), f)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}
