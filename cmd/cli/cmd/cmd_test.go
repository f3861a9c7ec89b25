package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	cfgFile, verbose, outputFormat, storePath, backend, noColor = "", false, "", "", "", true
	genVendor, genType, genSector, genLocation = "", "", "", ""
	genCount, genNumber, nextCount = 1, 0, 0
	validateFile, validateDuplicates = "", false
	historySector, historyLimit = "", 20
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func setup(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return filepath.Join(t.TempDir(), "state.json")
}

func TestGenerateThenSectors(t *testing.T) {
	store := setup(t)

	out, err := run(t, "generate", "--store", store, "--vendor", "vendor1", "--type", "laptop", "--sector", "ti", "--location", "fabrica", "-n", "2")
	require.NoError(t, err, out)
	assert.Contains(t, out, "CNL-1L011-001")
	assert.Contains(t, out, "CNL-1L011-002")

	out, err = run(t, "next", "ti", "--store", store)
	require.NoError(t, err)
	assert.Equal(t, "3", strings.TrimSpace(out))

	out, err = run(t, "sectors", "--store", store, "-o", "json")
	require.NoError(t, err)
	var sectors []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &sectors), out)
	require.Len(t, sectors, 1)
	assert.Equal(t, "ti", sectors[0]["sector"])
	assert.EqualValues(t, 2, sectors[0]["count"])

	out, err = run(t, "history", "list", "--store", store, "-o", "json")
	require.NoError(t, err)
	var batches []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &batches), out)
	assert.Len(t, batches, 1)
}

func TestGenerateRejectsMissingField(t *testing.T) {
	store := setup(t)

	_, err := run(t, "generate", "--store", store, "--vendor", "vendor1", "--type", "laptop", "--sector", "ti")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location")
	assert.NoFileExists(t, store)
}

func TestCatalogAddAndDecode(t *testing.T) {
	store := setup(t)

	_, err := run(t, "catalog", "add", "vendor", "Acme", "A", "--store", store)
	require.NoError(t, err)

	_, err = run(t, "catalog", "add", "vendor", "acme", "B", "--store", store)
	require.Error(t, err)

	out, err := run(t, "encode", "--store", store, "--vendor", "acme", "--type", "servidor", "--sector", "rh", "--location", "deposito", "--number", "9")
	require.NoError(t, err)
	assert.Equal(t, "CNL-AS024-009", strings.TrimSpace(out))

	out, err = run(t, "decode", "CNL-AS024-009", "--store", store, "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "vendor: acme")
	assert.Contains(t, out, "sector: rh")

	_, err = run(t, "decode", "not-an-id", "--store", store)
	assert.Error(t, err)
}

func TestCatalogImport(t *testing.T) {
	store := setup(t)
	file := filepath.Join(t.TempDir(), "catalog.hcl")
	require.NoError(t, os.WriteFile(file, []byte(`
sector "juridico" {
  code = "04"
}

sector "ti" {
  code = "09"
}
`), 0644))

	out, err := run(t, "catalog", "import", file, "--store", store)
	require.NoError(t, err, out)
	assert.Contains(t, out, "1 added, 1 skipped")

	out, err = run(t, "catalog", "list", "sector", "--store", store)
	require.NoError(t, err)
	assert.Contains(t, out, "juridico")
}

func TestValidateExitStatus(t *testing.T) {
	store := setup(t)

	out, err := run(t, "validate", "web-prod-01", "--store", store)
	require.NoError(t, err, out)
	assert.Contains(t, out, "1/1 valid")

	out, err = run(t, "validate", "--duplicates", "--store", store, "--", "web-prod-01", "-bad", "web-prod-01")
	require.Error(t, err)
	assert.Contains(t, out, "2/3 valid")
	assert.Contains(t, out, "Duplicate hostname found")
}

func TestValidateFromFile(t *testing.T) {
	store := setup(t)
	file := filepath.Join(t.TempDir(), "hosts.txt")
	require.NoError(t, os.WriteFile(file, []byte("# inventory\nweb-prod-01\n\ndb-prod-01\n"), 0644))

	out, err := run(t, "validate", "--file", file, "--store", store, "-o", "json")
	require.NoError(t, err, out)

	var result validateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Results, 2)
}

func TestVersion(t *testing.T) {
	setup(t)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hostforge version")
}
