package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

// Normalize trims the free-text fields.
func (r *OrderRequest) Normalize() {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.ContactNumber = strings.TrimSpace(r.ContactNumber)
	r.Email = strings.TrimSpace(r.Email)
	r.DeliveryMethod = DeliveryMethod(strings.TrimSpace(string(r.DeliveryMethod)))
	r.DeliveryAddress = strings.TrimSpace(r.DeliveryAddress)
	for i := range r.Lines {
		r.Lines[i].MenuItemID = strings.TrimSpace(r.Lines[i].MenuItemID)
	}
}

func ValidateOrderRequest(r OrderRequest) error {
	if err := validateOrderContact(r); err != nil {
		return err
	}

	if err := validateDeliveryMethod(r); err != nil {
		return err
	}

	return validateOrderLines(r.Lines)
}

func validateOrderContact(r OrderRequest) error {
	if r.CustomerName == "" {
		return NewValidationError("name", "Customer name is required.")
	}
	if r.ContactNumber == "" {
		return NewValidationError("contactNumber", "Contact number is required.")
	}
	if r.Email == "" {
		return NewValidationError("email", "Email is required.")
	}
	if r.DeliveryMethod == "" {
		return NewValidationError("deliveryMethod", "Delivery method is required.")
	}
	if len(r.Lines) == 0 {
		return NewValidationError("order", "Order items are required.")
	}
	if !emailPattern.MatchString(r.Email) {
		return NewValidationError("email", "Please enter a valid email address.")
	}
	return nil
}

func validateDeliveryMethod(r OrderRequest) error {
	switch r.DeliveryMethod {
	case DeliveryMethodDineIn:
		if r.TableNumber == 0 {
			return NewValidationError("tableNumber", "Table number is required for dine-in orders.")
		}
		if r.TableNumber < 1 {
			return NewValidationError("tableNumber", "Table number must be at least 1.")
		}
	case DeliveryMethodDelivery:
		if r.DeliveryAddress == "" {
			return NewValidationError("deliveryAddress", "Delivery address is required for delivery orders.")
		}
	default:
		return NewValidationError("deliveryMethod",
			fmt.Sprintf("Delivery method must be %q or %q.", DeliveryMethodDineIn, DeliveryMethodDelivery))
	}
	return nil
}

func validateOrderLines(lines []OrderLine) error {
	for i, line := range lines {
		if line.MenuItemID == "" {
			return NewValidationError(fmt.Sprintf("order[%d].menuItem", i), "Menu item ID is required.")
		}
		if line.Quantity < 1 {
			return NewValidationError(fmt.Sprintf("order[%d].quantity", i), "Quantity must be at least 1.")
		}
	}
	return nil
}
