package domain

import (
	"strings"
	"time"
)

type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ContactInput struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=5"`
}

type ContactPatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Message *string `json:"message"`
}

var contactMessages = map[string]string{
	"name.required":    "Name is required",
	"name.min":         "Name must be at least 2 characters long",
	"email.required":   "Email is required",
	"email.email":      "Please use a valid email address",
	"message.required": "Message is required",
	"message.min":      "Message must be at least 5 characters long",
}

func (in *ContactInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

func NewContactMessage(in ContactInput, now time.Time) (*ContactMessage, error) {
	in.normalize()
	if err := validateStruct(in, contactMessages); err != nil {
		return nil, err
	}

	return &ContactMessage{
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (c *ContactMessage) Apply(p ContactPatch, now time.Time) error {
	in := ContactInput{Name: c.Name, Email: c.Email, Message: c.Message}
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Email != nil {
		in.Email = *p.Email
	}
	if p.Message != nil {
		in.Message = *p.Message
	}

	in.normalize()
	if err := validateStruct(in, contactMessages); err != nil {
		return err
	}

	c.Name = in.Name
	c.Email = in.Email
	c.Message = in.Message
	c.UpdatedAt = now
	return nil
}
