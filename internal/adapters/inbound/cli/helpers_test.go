package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/ncprotocol/ncp/internal/adapters/inbound/cli"
)

const payloadsDir = "../../../../testdata/payloads"

func fixture(name string) string {
	return filepath.Join(payloadsDir, name)
}

// run executes the root command and returns stdout and the command error.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
