package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestAddAndListContacts(t *testing.T) {
	setupCmdTest(t)

	out, err := runCmd(createAddCmd(), "-n", "Juan", "-l", "Pérez", "-p", "600111222", "-e", "juan@example.com")
	assert.Nil(t, err)
	assert.Contains(t, out, "Contact Juan Pérez added")

	out, err = runCmd(createListCmd())
	assert.Nil(t, err)
	assert.Contains(t, out, "FIRST NAME")
	assert.Contains(t, out, "juan@example.com")
}

func TestAddReportsTheFirstBrokenField(t *testing.T) {
	setupCmdTest(t)

	cases := []struct {
		description string
		args        []string
		expectedOut string
	}{
		{
			"a phone number with a dash",
			[]string{"-n", "Juan", "-l", "Pérez", "-p", "600-111", "-e", "juan@example.com"},
			"phone number must contain digits only",
		},
		{
			"an email without a dot",
			[]string{"-n", "Juan", "-l", "Pérez", "-p", "600111222", "-e", "juan@examplecom"},
			"email must look like name@example.com",
		},
		{
			"no fields at all",
			[]string{},
			"first name cannot be empty",
		},
		{
			"several broken fields report only the first",
			[]string{"-n", "Juan", "-p", "abc"},
			"last name cannot be empty",
		},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			out, err := runCmd(createAddCmd(), c.args...)
			assert.NotNil(t, err)
			assert.Contains(t, out, c.expectedOut)
		})
	}

	out, _ := runCmd(createListCmd())
	assert.Contains(t, out, "No contacts found", "rejected contacts are never stored")
}

func TestSearchContacts(t *testing.T) {
	setupCmdTest(t)

	_, err := runCmd(createAddCmd(), "-n", "Juan", "-l", "Pérez", "-p", "600111222", "-e", "juan@example.com")
	assert.Nil(t, err)
	_, err = runCmd(createAddCmd(), "-n", "Ana", "-l", "García", "-p", "655443322", "-e", "ana@example.com")
	assert.Nil(t, err)

	out, err := runCmd(createSearchCmd(), "gar")
	assert.Nil(t, err)
	assert.Contains(t, out, "Ana")
	assert.NotContains(t, out, "Juan")

	out, err = runCmd(createSearchCmd(), "600111222")
	assert.Nil(t, err)
	assert.Contains(t, out, "No contacts found", "phone numbers are not searched")
}

func TestShowContact(t *testing.T) {
	setupCmdTest(t)

	_, err := runCmd(createAddCmd(), "-n", "Juan", "-l", "Pérez", "-p", "600111222", "-e", "juan@example.com")
	assert.Nil(t, err)

	out, err := runCmd(createShowCmd(), "1")
	assert.Nil(t, err)
	assert.Contains(t, out, "juan@example.com")

	out, err = runCmd(createShowCmd(), "99")
	assert.Nil(t, err)
	assert.Contains(t, out, "Contact 99 not found")

	out, err = runCmd(createShowCmd(), "banana")
	assert.NotNil(t, err)
	assert.Contains(t, out, "not a valid contact id")
}

func TestUpdateContact(t *testing.T) {
	setupCmdTest(t)

	_, err := runCmd(createAddCmd(), "-n", "Juan", "-l", "Pérez", "-p", "600111222", "-e", "juan@example.com")
	assert.Nil(t, err)

	out, err := runCmd(createUpdateCmd(), "1",
		"-n", "Juan Carlos", "-l", "Pérez", "-p", "699000111", "-e", "jc@example.com")
	assert.Nil(t, err)
	assert.Contains(t, out, "Contact 1 updated")

	out, err = runCmd(createShowCmd(), "1")
	assert.Nil(t, err)
	assert.Contains(t, out, "699000111")

	out, err = runCmd(createUpdateCmd(), "1",
		"-n", "Juan", "-l", "Pérez", "-p", "not-a-phone", "-e", "juan@example.com")
	assert.NotNil(t, err)
	assert.Contains(t, out, "digits only")
}

func TestDeleteContact(t *testing.T) {
	setupCmdTest(t)

	_, err := runCmd(createAddCmd(), "-n", "Juan", "-l", "Pérez", "-p", "600111222", "-e", "juan@example.com")
	assert.Nil(t, err)

	out, err := runCmd(createDeleteCmd(), "1")
	assert.Nil(t, err)
	assert.Contains(t, out, "Contact 1 deleted")

	out, err = runCmd(createShowCmd(), "1")
	assert.Nil(t, err)
	assert.Contains(t, out, "Contact 1 not found")

	// Deleting an id that is already gone is not an error.
	out, err = runCmd(createDeleteCmd(), "1")
	assert.Nil(t, err)
	assert.Contains(t, out, "Contact 1 deleted")
}

func TestImportAndExportCommands(t *testing.T) {
	dir := setupCmdTest(t)

	csvPath := filepath.Join(dir, "people.csv")
	writeTestFile(t, csvPath,
		"Juan,Pérez,600111222,juan@example.com\nAna,García,655443322,ana@example.com\n")

	out, err := runCmd(createImportCmd(), csvPath)
	assert.Nil(t, err)
	assert.Contains(t, out, "2 contact(s) imported")

	exportPath := filepath.Join(dir, "export.csv")
	out, err = runCmd(createExportCmd(), exportPath)
	assert.Nil(t, err)
	assert.Contains(t, out, "Contacts exported to")

	content, err := os.ReadFile(exportPath)
	assert.Nil(t, err)
	assert.Contains(t, string(content), "ID,Nombre,Apellido,Teléfono,Email")
	assert.Contains(t, string(content), "1,Juan,Pérez,600111222,juan@example.com")

	vcfPath := filepath.Join(dir, "export.vcf")
	_, err = runCmd(createExportCmd(), vcfPath, "--format", "vcard")
	assert.Nil(t, err)

	content, err = os.ReadFile(vcfPath)
	assert.Nil(t, err)
	assert.Contains(t, string(content), "BEGIN:VCARD")
	assert.Contains(t, string(content), "FN:Juan Pérez")

	out, err = runCmd(createExportCmd(), filepath.Join(dir, "x.xml"), "--format", "xml")
	assert.NotNil(t, err)
	assert.Contains(t, out, "unknown format")
}

func TestImportStopsAtTheFirstBadRow(t *testing.T) {
	dir := setupCmdTest(t)

	csvPath := filepath.Join(dir, "people.csv")
	writeTestFile(t, csvPath,
		"Juan,Pérez,600111222,juan@example.com\nAna,García,not-a-phone,ana@example.com\n")

	out, err := runCmd(createImportCmd(), csvPath)
	assert.NotNil(t, err)
	assert.Contains(t, out, "row 2")

	out, _ = runCmd(createListCmd())
	assert.Contains(t, out, "Juan", "rows before the bad one stay imported")
	assert.NotContains(t, out, "Ana")
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

// setupCmdTest points the CLI at a throwaway config file and database and
// restores the previous globals when the test finishes.
func setupCmdTest(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	content := fmt.Sprintf(`
database:
  name: agenda-test.db
  dir: %v
logging:
  errorFile: %v
backup:
  dir: %v
google:
  applicationCredentials: %v
owner:
  email: owner@example.com
`,
		filepath.Join(dir, "db"),
		filepath.Join(dir, "errors.log"),
		filepath.Join(dir, "backups"),
		filepath.Join(dir, "google-credentials.json"))

	path := filepath.Join(dir, "config.yml")
	writeTestFile(t, path, content)

	savedCfgFile := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = savedCfgFile })

	return dir
}

func runCmd(cmd *cobra.Command, args ...string) (string, error) {
	buff := new(bytes.Buffer)

	cmd.SetOut(buff)
	cmd.SetErr(buff)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buff.String(), err
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %v: %v", path, err)
	}
}
