// Package contact defines the address-book record and its validation rules.
package contact

import (
	"fmt"
	"strings"
)

// Contact is a single address-book record. A zero ID marks a record that
// has not been stored yet; the storage layer assigns IDs and never reuses
// them. Plain value, copy freely.
type Contact struct {
	ID          int64  `json:"id,omitempty"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// New builds a transient Contact from raw form or CSV input. Name fields
// are trimmed. No validation happens here, call Validate before handing
// the record to storage.
func New(firstName, lastName, phoneNumber, email string) Contact {
	return Contact{
		FirstName:   strings.TrimSpace(firstName),
		LastName:    strings.TrimSpace(lastName),
		PhoneNumber: phoneNumber,
		Email:       email,
	}
}

// FromRow decodes a stored row in its fixed column order
// (id, name, surname, phone, email).
func FromRow(id int64, name, surname, phone, email string) (Contact, error) {
	if id <= 0 {
		return Contact{}, &ValidationError{Field: "id", Kind: InvalidID}
	}

	c := New(name, surname, phone, email)
	c.ID = id
	return c, nil
}

// Validate reports the first rule the record breaks, checking fields in
// the order first name, last name, phone, email. A nil result means the
// record is safe to persist.
func (c Contact) Validate() error {
	return DefaultValidator().Validate(c)
}

// Values returns the four data fields in storage binding order.
func (c Contact) Values() []interface{} {
	return []interface{}{c.FirstName, c.LastName, c.PhoneNumber, c.Email}
}

// Map returns every field keyed by name, ID included.
func (c Contact) Map() map[string]interface{} {
	return map[string]interface{}{
		"id":           c.ID,
		"first_name":   c.FirstName,
		"last_name":    c.LastName,
		"phone_number": c.PhoneNumber,
		"email":        c.Email,
	}
}

// FullName is the display form used by exports and calendar events.
func (c Contact) FullName() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}
