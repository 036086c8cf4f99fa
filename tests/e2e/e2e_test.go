package e2e_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ncprotocol/ncp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "ncp-e2e")
	if err != nil {
		panic(err)
	}

	binaryPath = filepath.Join(dir, "ncp")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/ncp")
	if out, err := cmd.CombinedOutput(); err != nil {
		os.RemoveAll(dir)
		panic("build failed: " + string(out))
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func fixturePath(name string) string {
	abs, _ := filepath.Abs(filepath.Join("../../testdata/payloads", name))
	return abs
}

func run(t *testing.T, stdin string, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = t.TempDir()
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	out, err := cmd.CombinedOutput()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return string(out), exitCode
}

// --- Validate Tests ---

func TestE2E_Validate(t *testing.T) {
	out, code := run(t, "", "validate", fixturePath("valid.json"))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Payload Compliance")
	assert.Contains(t, out, "100 / 100")
}

func TestE2E_ValidateJSON(t *testing.T) {
	out, code := run(t, "", "validate", fixturePath("plus.json"), "--json", "--no-history")
	require.Equal(t, 0, code, out)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, domain.LevelPlus, report.Result.ComplianceLevel)
	assert.Equal(t, 90, report.Result.Score)
}

func TestE2E_ValidateStdin(t *testing.T) {
	payload, err := os.ReadFile(fixturePath("valid.json"))
	require.NoError(t, err)

	out, code := run(t, string(payload), "validate", "-", "--json", "--no-history", "--domain", "acme.example")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, `"compliance_level": "VERIFIED-L1"`)
}

func TestE2E_ValidateMalformed(t *testing.T) {
	out, code := run(t, "", "validate", fixturePath("malformed.json"), "--json", "--no-history")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "PAYLOAD_INVALID")
}

func TestE2E_ValidateCI(t *testing.T) {
	out, code := run(t, "", "validate", fixturePath("invalid.json"), "--ci", "--no-history")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Error:")

	_, code = run(t, "", "validate", fixturePath("core.json"), "--ci", "--min-level", "PLUS", "--no-history")
	assert.Equal(t, 1, code)

	_, code = run(t, "", "validate", fixturePath("valid.json"), "--ci", "--min-level", "PLUS", "--no-history")
	assert.Equal(t, 0, code)
}

func TestE2E_InitThenValidate(t *testing.T) {
	dir := t.TempDir()
	_, code := run(t, "", "init", dir, "--min-level", "VERIFIED-L1")
	require.Equal(t, 0, code)

	// The config threshold applies in CI mode without flags.
	_, code = run(t, "", "validate", fixturePath("plus.json"), "--ci", "--config-dir", dir)
	assert.Equal(t, 1, code)

	out, code := run(t, "", "history", "--config-dir", dir, "--json")
	require.Equal(t, 0, code, out)
	var entries []domain.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, domain.LevelPlus, entries[0].Level)
}

func TestE2E_Explain(t *testing.T) {
	out, code := run(t, "", "explain", "--plain")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "PILLAR_MISSING")

	_, code = run(t, "", "explain", "NOT_A_CODE")
	assert.Equal(t, 1, code)
}

func TestE2E_Version(t *testing.T) {
	out, code := run(t, "", "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "ncp")
}
