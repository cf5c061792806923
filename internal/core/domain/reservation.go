package domain

import (
	"strings"
	"time"
)

const reservationDateLayout = "2006-01-02"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

type Reservation struct {
	ID            string
	Name          string
	PartySize     int
	ContactNumber string
	Email         string
	Date          time.Time
	Time          string
	Table         string
	Notes         string
	Status        ReservationStatus
	CreatedAt     time.Time
}

type ReservationInput struct {
	Name          string `json:"name" validate:"required"`
	PartySize     int    `json:"partySize" validate:"required,min=1"`
	ContactNumber string `json:"contactNumber" validate:"required"`
	Email         string `json:"email" validate:"required"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string `json:"time" validate:"required"`
	Table         string `json:"table"`
	Notes         string `json:"notes"`
	Status        string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

type ReservationPatch struct {
	Name          *string `json:"name"`
	PartySize     *int    `json:"partySize"`
	ContactNumber *string `json:"contactNumber"`
	Email         *string `json:"email"`
	Date          *string `json:"date"`
	Time          *string `json:"time"`
	Table         *string `json:"table"`
	Notes         *string `json:"notes"`
	Status        *string `json:"status"`
}

var reservationMessages = map[string]string{
	"name.required":          "Please provide the customer name.",
	"partySize.required":     "Please provide the number of people.",
	"partySize.min":          "Party size must be at least 1.",
	"contactNumber.required": "Please provide a contact number.",
	"email.required":         "Please provide an email address.",
	"date.required":          "Please provide the reservation date.",
	"date.datetime":          "Reservation date must be formatted as YYYY-MM-DD.",
	"time.required":          "Please provide the reservation time.",
	"status.oneof":           "Reservation status must be one of pending, confirmed, cancelled, completed.",
}

func (in *ReservationInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
}

func NewReservation(in ReservationInput, now time.Time) (*Reservation, error) {
	r := &Reservation{Status: ReservationStatusPending, CreatedAt: now}
	if err := r.assign(in); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reservation) Apply(p ReservationPatch) error {
	in := r.input()
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.PartySize != nil {
		in.PartySize = *p.PartySize
	}
	if p.ContactNumber != nil {
		in.ContactNumber = *p.ContactNumber
	}
	if p.Email != nil {
		in.Email = *p.Email
	}
	if p.Date != nil {
		in.Date = *p.Date
	}
	if p.Time != nil {
		in.Time = *p.Time
	}
	if p.Table != nil {
		in.Table = *p.Table
	}
	if p.Notes != nil {
		in.Notes = *p.Notes
	}
	if p.Status != nil {
		in.Status = *p.Status
	}
	return r.assign(in)
}

func (r *Reservation) input() ReservationInput {
	return ReservationInput{
		Name:          r.Name,
		PartySize:     r.PartySize,
		ContactNumber: r.ContactNumber,
		Email:         r.Email,
		Date:          r.Date.Format(reservationDateLayout),
		Time:          r.Time,
		Table:         r.Table,
		Notes:         r.Notes,
		Status:        string(r.Status),
	}
}

func (r *Reservation) assign(in ReservationInput) error {
	in.normalize()
	if err := validateStruct(in, reservationMessages); err != nil {
		return err
	}

	date, err := time.Parse(reservationDateLayout, in.Date)
	if err != nil {
		return NewValidationError("date", reservationMessages["date.datetime"])
	}

	r.Name = in.Name
	r.PartySize = in.PartySize
	r.ContactNumber = in.ContactNumber
	r.Email = in.Email
	r.Date = date
	r.Time = in.Time
	r.Table = in.Table
	r.Notes = in.Notes
	if in.Status != "" {
		r.Status = ReservationStatus(in.Status)
	}
	return nil
}
