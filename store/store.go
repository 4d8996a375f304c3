// Package store owns the sqlite database behind the contact book. It is
// the only package holding the connection; everything above it goes
// through Execute/Query or the typed helpers.
package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	sqliteEncrypt "github.com/Daskott/gorm-sqlite-cipher"
	"github.com/agendadev/agenda/contact"
	"github.com/agendadev/agenda/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const DEFAULT_DB_NAME = "default.db"

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	name    TEXT NOT NULL,
	surname TEXT NOT NULL,
	phone   TEXT NOT NULL,
	email   TEXT NOT NULL
)`

const (
	insertSQL     = `INSERT INTO contacts (name, surname, phone, email) VALUES (?, ?, ?, ?)`
	selectAllSQL  = `SELECT id, name, surname, phone, email FROM contacts`
	selectByIDSQL = `SELECT id, name, surname, phone, email FROM contacts WHERE id = ?`
)

// ErrBlankStatement rejects calls that reach the raw entry points without
// an actual statement. A caller bug, never logged.
var ErrBlankStatement = errors.New("a non-empty sql statement is required")

// StorageError is the one error type callers see for database failures.
// The original cause went to the error log; callers should not branch on
// anything more specific than this type.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

// Config locates the database file. An empty PassPhrase opens a plain
// sqlite file; a non-empty one encrypts the file at rest.
type Config struct {
	Dir        string
	Name       string
	PassPhrase string
}

// Store is the storage gateway for contact records. The logger passed at
// construction receives one timestamped line per storage failure; hand it
// a file-backed logger in production and an observer core in tests.
type Store struct {
	db   *gorm.DB
	logg *zap.SugaredLogger
}

// New opens (creating if absent) the configured database file and makes
// sure the contacts table exists. Both steps are idempotent, so opening
// the same file twice neither fails nor duplicates anything.
func New(cfg Config, logg *zap.SugaredLogger) (*Store, error) {
	s := &Store{logg: logg}

	if cfg.Name == "" {
		cfg.Name = DEFAULT_DB_NAME
	}

	if cfg.Dir != "" {
		if err := utils.CreateDirIfNotExist(cfg.Dir); err != nil {
			return nil, s.fail("create db directory", err)
		}
	}

	db, err := gorm.Open(sqliteEncrypt.Open(dsn(cfg)), &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				LogLevel:                  gormLogger.Silent,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, s.fail("open database", err)
	}
	s.db = db

	sqlDB, err := db.DB()
	if err != nil {
		return nil, s.fail("open database", err)
	}

	// The gateway owns a single long-lived connection.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec(schema).Error; err != nil {
		return nil, s.fail("create schema", err)
	}

	return s, nil
}

// Execute runs one parameterized non-row-returning statement. Statements
// commit immediately; there is no transaction spanning calls.
func (s *Store) Execute(statement string, params ...interface{}) error {
	if strings.TrimSpace(statement) == "" {
		return ErrBlankStatement
	}

	if err := s.db.Exec(statement, params...).Error; err != nil {
		return s.fail("execute", err)
	}

	return nil
}

// Query runs a row-returning statement and decodes every row into a
// Contact. Rows must carry the five contact columns in their fixed order.
func (s *Store) Query(query string, params ...interface{}) ([]contact.Contact, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrBlankStatement
	}

	rows, err := s.db.Raw(query, params...).Rows()
	if err != nil {
		return nil, s.fail("query", err)
	}
	defer rows.Close()

	contacts := []contact.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, s.fail("decode row", err)
		}
		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, s.fail("query", err)
	}

	return contacts, nil
}

// Insert persists a new contact. The record is validated again here so a
// malformed value can never reach the table, no matter the caller. The
// table assigns the identifier; identifiers are never reused, even after
// deletes.
func (s *Store) Insert(c contact.Contact) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return s.Execute(insertSQL, c.Values()...)
}

// FetchAll returns every stored contact in whatever order the database
// yields rows; no ORDER BY is applied.
func (s *Store) FetchAll() ([]contact.Contact, error) {
	return s.Query(selectAllSQL)
}

// FetchByID returns the stored contact with the given id, or nil when no
// such row exists. Absence is not an error.
func (s *Store) FetchByID(id int64) (*contact.Contact, error) {
	row := s.db.Raw(selectByIDSQL, id).Row()

	var (
		rowID                       int64
		name, surname, phone, email string
	)

	err := row.Scan(&rowID, &name, &surname, &phone, &email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail("fetch by id", err)
	}

	c, err := contact.FromRow(rowID, name, surname, phone, email)
	if err != nil {
		return nil, s.fail("decode row", err)
	}

	return &c, nil
}

// Close releases the database connection. Calling it again afterwards is
// a no-op.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return s.fail("close", err)
	}

	if err := sqlDB.Close(); err != nil {
		return s.fail("close", err)
	}

	return nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func (s *Store) fail(op string, err error) error {
	s.logg.Errorf("%s: %v", op, err)
	return &StorageError{Op: op, Err: err}
}

func scanContact(rows *sql.Rows) (contact.Contact, error) {
	var (
		id                          int64
		name, surname, phone, email string
	)

	if err := rows.Scan(&id, &name, &surname, &phone, &email); err != nil {
		return contact.Contact{}, err
	}

	return contact.FromRow(id, name, surname, phone, email)
}

func dsn(cfg Config) string {
	dbName := fmt.Sprintf("file:%v", filepath.Join(cfg.Dir, cfg.Name))

	if cfg.PassPhrase == "" {
		return fmt.Sprintf("%v?_journal_mode=WAL", dbName)
	}

	return fmt.Sprintf(
		"%v?_pragma_key=%s&_pragma_cipher_page_size=4096&_journal_mode=WAL",
		dbName,
		cfg.PassPhrase,
	)
}
