package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rl1809/cafe/internal/core/domain"
)

type contactResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newContactResponse(m domain.ContactMessage) contactResponse {
	return contactResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (h *HTTPHandler) SubmitContact(c *gin.Context) {
	var in domain.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBadBody(c)
		return
	}

	m, err := h.contactService.SubmitMessage(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	writeData(c, http.StatusCreated, newContactResponse(*m))
}

func (h *HTTPHandler) ListContacts(c *gin.Context) {
	msgs, err := h.contactService.ListMessages(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]contactResponse, 0, len(msgs))
	for _, m := range msgs {
		resp = append(resp, newContactResponse(m))
	}
	writeData(c, http.StatusOK, resp)
}

// UpdateContact and DeleteContact take the id from the query string.
func (h *HTTPHandler) UpdateContact(c *gin.Context) {
	var patch domain.ContactPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeBadBody(c)
		return
	}

	m, err := h.contactService.UpdateMessage(c.Request.Context(), c.Query("id"), patch)
	if err != nil {
		h.writeError(c, err)
		return
	}

	writeData(c, http.StatusOK, newContactResponse(*m))
}

func (h *HTTPHandler) DeleteContact(c *gin.Context) {
	if err := h.contactService.DeleteMessage(c.Request.Context(), c.Query("id")); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Contact deleted successfully"})
}
