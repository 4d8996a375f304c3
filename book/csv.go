package book

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/agendadev/agenda/contact"
	"github.com/pkg/errors"
)

// csvHeader is the localized header row written by exports. The importer
// recognizes it (and the id column that comes with it) so a file written
// by ExportToCSV can be read back in unchanged.
var csvHeader = []string{"ID", "Nombre", "Apellido", "Teléfono", "Email"}

// ImportFromCSV loads contacts from a csv file holding one
// name,surname,phone,email row per contact, no header. Rows in the
// exporter's own shape (leading header row, id first column) are accepted
// too; the stored id is dropped because the store assigns fresh ones.
//
// The import aborts on the first row that cannot be parsed, validated or
// stored, returning how many contacts made it in. Statements commit one
// by one, so rows imported before the bad one stay.
func (b *Book) ImportFromCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, "csv import")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Column counts are checked per row below, so the exporter's
	// 5-column shape and the plain 4-column shape can share a file.
	reader.FieldsPerRecord = -1

	imported := 0
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, errors.Wrapf(err, "csv import aborted at row %v", row)
		}

		if row == 1 && isExportHeader(record) {
			continue
		}

		c, ok := contactFromRecord(record)
		if !ok {
			return imported, errors.Errorf(
				"csv import aborted at row %v: expected 4 columns (name,surname,phone,email), got %v", row, len(record))
		}

		if err := c.Validate(); err != nil {
			return imported, errors.Wrapf(err, "csv import aborted at row %v", row)
		}

		if err := b.store.Insert(c); err != nil {
			return imported, errors.Wrapf(err, "csv import aborted at row %v", row)
		}
		imported++
	}

	return imported, nil
}

// ExportToCSV writes the localized header row followed by one row per
// stored contact, in the order the store yields them. Unlike the bulk
// reads, a storage failure here propagates; the file may be left
// partially written.
func (b *Book) ExportToCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "csv export")
	}

	if err := b.WriteCSV(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// WriteCSV streams the csv export to w. The http api uses this to serve
// downloads without a temp file.
func (b *Book) WriteCSV(w io.Writer) error {
	contacts, err := b.store.FetchAll()
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return errors.Wrap(err, "csv export")
	}

	for _, c := range contacts {
		record := []string{strconv.FormatInt(c.ID, 10), c.FirstName, c.LastName, c.PhoneNumber, c.Email}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "csv export")
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "csv export")
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func contactFromRecord(record []string) (contact.Contact, bool) {
	switch len(record) {
	case 4:
		return contact.New(record[0], record[1], record[2], record[3]), true
	case 5:
		// Exported rows carry the stored id first; drop it.
		return contact.New(record[1], record[2], record[3], record[4]), true
	}

	return contact.Contact{}, false
}

func isExportHeader(record []string) bool {
	if len(record) != len(csvHeader) {
		return false
	}

	for i, value := range record {
		if value != csvHeader[i] {
			return false
		}
	}

	return true
}
