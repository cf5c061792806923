package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rl1809/cafe/internal/core/domain"
)

type reservationResponse struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	PartySize     int       `json:"partySize"`
	ContactNumber string    `json:"contactNumber"`
	Email         string    `json:"email"`
	Date          time.Time `json:"date"`
	Time          string    `json:"time"`
	Table         string    `json:"table,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

func newReservationResponse(r domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:            r.ID,
		Name:          r.Name,
		PartySize:     r.PartySize,
		ContactNumber: r.ContactNumber,
		Email:         r.Email,
		Date:          r.Date,
		Time:          r.Time,
		Table:         r.Table,
		Notes:         r.Notes,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
	}
}

type updateReservationRequest struct {
	ID string `json:"_id"`
	domain.ReservationPatch
}

func (h *HTTPHandler) CreateReservation(c *gin.Context) {
	var in domain.ReservationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBadBody(c)
		return
	}

	r, err := h.reservationService.CreateReservation(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	writeData(c, http.StatusCreated, newReservationResponse(*r))
}

func (h *HTTPHandler) ListReservations(c *gin.Context) {
	list, err := h.reservationService.ListReservations(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]reservationResponse, 0, len(list))
	for _, r := range list {
		resp = append(resp, newReservationResponse(r))
	}
	writeData(c, http.StatusOK, resp)
}

func (h *HTTPHandler) UpdateReservation(c *gin.Context) {
	var req updateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadBody(c)
		return
	}

	r, err := h.reservationService.UpdateReservation(c.Request.Context(), req.ID, req.ReservationPatch)
	if err != nil {
		h.writeError(c, err)
		return
	}

	writeData(c, http.StatusOK, newReservationResponse(*r))
}

func (h *HTTPHandler) DeleteReservation(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadBody(c)
		return
	}

	if err := h.reservationService.DeleteReservation(c.Request.Context(), req.ID); err != nil {
		h.writeError(c, err)
		return
	}

	writeData(c, http.StatusOK, gin.H{})
}
