package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agendadev/agenda/utils"
	"github.com/stretchr/testify/assert"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	return path
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, `
database:
  name: contacts.db
  dir: `+filepath.Join(dir, "db")+`
listener:
  port: 4000
`)

	config, err := Load(path, false)

	assert.Nil(t, err)
	assert.Equal(t, "contacts.db", config.Database.Name)
	assert.Equal(t, 4000, config.Listener.Port)
	assert.Equal(t, "0 0 * * *", config.Backup.Schedule, "missing keys fall back to defaults")
	assert.Equal(t, "UTC", config.Settings.TimeZone)
	assert.NotEmpty(t, config.Logging.ErrorFile)
	assert.Equal(t, path, config.FileUsed())
	assert.False(t, config.BackupSyncEnabled())
}

func TestLoadCreatesDataDirectories(t *testing.T) {
	dir := t.TempDir()
	dbDir := filepath.Join(dir, "data", "db")
	errFile := filepath.Join(dir, "log", "errors.log")
	path := writeConfigFile(t, `
database:
  dir: `+dbDir+`
logging:
  errorFile: `+errFile+`
`)

	_, err := Load(path, false)

	assert.Nil(t, err)
	assert.True(t, utils.FileExist(dbDir))
	assert.True(t, utils.FileExist(filepath.Dir(errFile)))
}

func TestDatabaseNameEnvOverridesFile(t *testing.T) {
	t.Setenv("DATABASE_NAME", "from-env.db")

	path := writeConfigFile(t, `
database:
  name: from-file.db
`)

	config, err := Load(path, false)

	assert.Nil(t, err)
	assert.Equal(t, "from-env.db", config.Database.Name)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		description string
		yaml        string
	}{
		{"a malformed owner email", "owner:\n  email: not-an-email\n"},
		{"an explicit zero port", "listener:\n  port: 0\n"},
		{"sync enabled without a bucket", "google:\n  storage:\n    enableBackupSync: true\n"},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			path := writeConfigFile(t, c.yaml)

			_, err := Load(path, false)
			assert.NotNil(t, err)
		})
	}
}

func TestLoadFailsOnMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"), false)
	assert.NotNil(t, err)
}

func TestFirstRunWritesStarterConfigInDevMode(t *testing.T) {
	dir := t.TempDir()
	restoreWd(t, dir)

	config, err := Load("", true)

	assert.Nil(t, err)
	assert.True(t, utils.FileExist(filepath.Join(dir, ".agenda.dev.yaml")),
		"the first dev run writes a starter config next to the binary")
	assert.Equal(t, "agenda-dev.db", config.Database.Name)
	assert.Equal(t, filepath.Join(dir, "dev", "db"), config.Database.Dir)

	// A second load reuses the file instead of rewriting it.
	_, err = Load("", true)
	assert.Nil(t, err)
}

func TestSaveEventIDsRoundTrip(t *testing.T) {
	path := writeConfigFile(t, "listener:\n  port: 3000\n")

	config, err := Load(path, false)
	assert.Nil(t, err)
	assert.Empty(t, config.EventIDs())

	assert.Nil(t, config.SaveEventIDs([]string{"event-1", "event-2"}))

	reloaded, err := Load(path, false)
	assert.Nil(t, err)
	assert.Equal(t, []string{"event-1", "event-2"}, reloaded.EventIDs())
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func restoreWd(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to read working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to switch working directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}
