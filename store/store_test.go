package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/agendadev/agenda/contact"
	"github.com/agendadev/agenda/utils"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(Config{Dir: t.TempDir(), Name: "agenda-test.db"}, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func juan() contact.Contact {
	return contact.New("Juan", "Pérez", "123456789", "juan.perez@example.com")
}

func ana() contact.Contact {
	return contact.New("Ana", "Ruiz", "5551234", "ana@ruiz.dev")
}

func TestInsertAndFetchRoundTrip(t *testing.T) {
	s := newTestStore(t)

	assert.Nil(t, s.Insert(juan()))

	all, err := s.FetchAll()
	assert.Nil(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, int64(1), all[0].ID, "the first insert into a fresh store gets id 1")
	assert.Equal(t, "Juan", all[0].FirstName)
	assert.Equal(t, "Pérez", all[0].LastName)
	assert.Equal(t, "123456789", all[0].PhoneNumber)
	assert.Equal(t, "juan.perez@example.com", all[0].Email)

	stored, err := s.FetchByID(1)
	assert.Nil(t, err)
	assert.Equal(t, all[0], *stored)
}

func TestFetchByIDReturnsNilWhenAbsent(t *testing.T) {
	s := newTestStore(t)

	stored, err := s.FetchByID(99)
	assert.Nil(t, err, "a missing row is not an error")
	assert.Nil(t, stored)
}

func TestInsertRejectsMalformedContacts(t *testing.T) {
	s := newTestStore(t)

	err := s.Insert(contact.New("Juan", "Pérez", "not-a-phone", "juan.perez@example.com"))

	var vErr *contact.ValidationError
	assert.True(t, errors.As(err, &vErr), "expected a validation error, got %v", err)

	all, err := s.FetchAll()
	assert.Nil(t, err)
	assert.Empty(t, all, "a malformed contact must never reach the table")
}

func TestSchemaCreationIsIdempotent(t *testing.T) {
	cfg := Config{Dir: t.TempDir(), Name: "agenda-test.db"}

	s, err := New(cfg, zap.NewNop().Sugar())
	assert.Nil(t, err)
	assert.Nil(t, s.Insert(juan()))
	assert.Nil(t, s.Close())

	s, err = New(cfg, zap.NewNop().Sugar())
	assert.Nil(t, err, "re-opening the same file must not fail")
	defer s.Close()

	all, err := s.FetchAll()
	assert.Nil(t, err)
	assert.Len(t, all, 1, "rows inserted before the second open survive it")
}

func TestIdentifiersAreNeverReused(t *testing.T) {
	s := newTestStore(t)

	assert.Nil(t, s.Insert(juan()))
	assert.Nil(t, s.Insert(ana()))
	assert.Nil(t, s.Execute(`DELETE FROM contacts WHERE id = ?`, 1))
	assert.Nil(t, s.Insert(contact.New("Luz", "Marín", "987654321", "luz@marin.io")))

	all, err := s.FetchAll()
	assert.Nil(t, err)
	assert.Len(t, all, 2)

	ids := []int64{all[0].ID, all[1].ID}
	assert.Contains(t, ids, int64(2))
	assert.Contains(t, ids, int64(3), "a deleted id must not be handed out again")
}

func TestRawEntryPointsRejectBlankStatements(t *testing.T) {
	s := newTestStore(t)

	assert.ErrorIs(t, s.Execute(""), ErrBlankStatement)
	assert.ErrorIs(t, s.Execute("   "), ErrBlankStatement)

	_, err := s.Query("   ")
	assert.ErrorIs(t, err, ErrBlankStatement)
}

func TestStorageFailuresAreLoggedAndWrapped(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)

	s, err := New(Config{Dir: t.TempDir()}, zap.New(core).Sugar())
	assert.Nil(t, err)
	defer s.Close()

	err = s.Execute(`INSERT INTO missing_table (name) VALUES (?)`, "x")

	var sErr *StorageError
	assert.True(t, errors.As(err, &sErr), "expected a storage error, got %v", err)
	assert.Equal(t, 1, logs.Len(), "every storage failure is appended to the sink")

	_, err = s.Query(`SELECT nope FROM missing_table`)
	assert.True(t, errors.As(err, &sErr))
	assert.Equal(t, 2, logs.Len())
}

func TestDefaultDatabaseName(t *testing.T) {
	dir := t.TempDir()

	s, err := New(Config{Dir: dir}, zap.NewNop().Sugar())
	assert.Nil(t, err)
	defer s.Close()

	assert.True(t, utils.FileExist(filepath.Join(dir, DEFAULT_DB_NAME)))
}

func TestCloseIsIdempotent(t *testing.T) {
	s, err := New(Config{Dir: t.TempDir(), Name: "agenda-test.db"}, zap.NewNop().Sugar())
	assert.Nil(t, err)

	assert.Nil(t, s.Close())
	assert.Nil(t, s.Close(), "closing an already closed store is a no-op")
}

func TestPassPhraseProtectedStore(t *testing.T) {
	cfg := Config{Dir: t.TempDir(), Name: "secret.db", PassPhrase: "topsecret"}

	s, err := New(cfg, zap.NewNop().Sugar())
	assert.Nil(t, err)
	assert.Nil(t, s.Insert(juan()))
	assert.Nil(t, s.Close())

	s, err = New(cfg, zap.NewNop().Sugar())
	assert.Nil(t, err)
	defer s.Close()

	all, err := s.FetchAll()
	assert.Nil(t, err)
	assert.Len(t, all, 1, "the same passphrase re-opens the encrypted file")
}
