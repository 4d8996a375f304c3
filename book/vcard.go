package book

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// ExportToVCard writes one version 3.0 block per stored contact, blocks
// back to back. Field values pass through as-is: no line folding, no
// escaping of ';' ',' or newlines. Storage failures propagate.
func (b *Book) ExportToVCard(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "vcard export")
	}

	if err := b.WriteVCard(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// WriteVCard streams the vcard export to w.
func (b *Book) WriteVCard(w io.Writer) error {
	contacts, err := b.store.FetchAll()
	if err != nil {
		return err
	}

	for _, c := range contacts {
		block := fmt.Sprintf(
			"BEGIN:VCARD\nVERSION:3.0\nFN:%s\nTEL:%s\nEMAIL:%s\nEND:VCARD\n",
			c.FullName(), c.PhoneNumber, c.Email)

		if _, err := io.WriteString(w, block); err != nil {
			return errors.Wrap(err, "vcard export")
		}
	}

	return nil
}
