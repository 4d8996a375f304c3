// Package book is the service layer the CLI and the HTTP API talk to. It
// validates records through the contact package and persists them through
// the storage gateway.
package book

import (
	"github.com/agendadev/agenda/contact"
	"github.com/agendadev/agenda/store"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrMissingID flags update/delete calls that arrive without a stored
// contact id. A caller bug, never logged.
var ErrMissingID = errors.New("a stored contact id is required")

const (
	updateSQL = `UPDATE contacts SET name = ?, surname = ?, phone = ?, email = ? WHERE id = ?`
	deleteSQL = `DELETE FROM contacts WHERE id = ?`
	searchSQL = `SELECT id, name, surname, phone, email FROM contacts
		WHERE name LIKE ? OR surname LIKE ? OR email LIKE ?`
)

// Book exposes every operation the presentation layer may perform on the
// contact list.
type Book struct {
	store *store.Store
	logg  *zap.SugaredLogger
}

func New(s *store.Store, logg *zap.SugaredLogger) *Book {
	return &Book{store: s, logg: logg}
}

// Add validates c and inserts it; the store assigns the new id.
func (b *Book) Add(c contact.Contact) error {
	if err := c.Validate(); err != nil {
		return err
	}

	b.logg.Debugf("adding contact %v", c.Map())

	return b.store.Insert(c)
}

// Update overwrites every field of the stored record c.ID. There is no
// partial update.
func (b *Book) Update(c contact.Contact) error {
	if c.ID <= 0 {
		return ErrMissingID
	}

	if err := c.Validate(); err != nil {
		return err
	}

	b.logg.Debugf("updating contact %v", c.Map())

	params := append(c.Values(), c.ID)
	return b.store.Execute(updateSQL, params...)
}

// Delete removes the record with the given id. Deleting an id that does
// not exist succeeds silently.
func (b *Book) Delete(id int64) error {
	if id <= 0 {
		return ErrMissingID
	}

	return b.store.Execute(deleteSQL, id)
}

// Get returns the stored contact with the given id, nil when absent.
func (b *Book) Get(id int64) (*contact.Contact, error) {
	return b.store.FetchByID(id)
}

// Search matches term as a substring of name, surname or email. Phone
// numbers are deliberately not searched. LIKE makes the match
// case-insensitive for ascii. A storage failure degrades to an empty
// result; the gateway has already logged the cause.
func (b *Book) Search(term string) []contact.Contact {
	pattern := "%" + term + "%"

	contacts, err := b.store.Query(searchSQL, pattern, pattern, pattern)
	if err != nil {
		return []contact.Contact{}
	}

	return contacts
}

// ListAll returns every contact, with the same empty-on-failure policy as
// Search: the list view never crashes.
func (b *Book) ListAll() []contact.Contact {
	contacts, err := b.store.FetchAll()
	if err != nil {
		return []contact.Contact{}
	}

	return contacts
}
