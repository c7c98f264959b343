package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/performance-dashboard/internal/common"
)

func runCmd(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, _, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "perfdash dev")
}

func TestPaletteCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{name: "named", args: []string{"palette", "--name", "Greens", "-n", "5"}, want: []string{"#f7fcf5", "#00441b"}},
		{name: "reversed suffix", args: []string{"palette", "--name", "Blues_r", "-n", "3"}, want: []string{"#08306b", "#f7fbff"}},
		{name: "gradient", args: []string{"palette", "--gradient", "#2E7D32", "-n", "4"}, want: []string{"#2e7d32", "#ffffff"}},
		{name: "unknown", args: []string{"palette", "--name", "Rainbow"}, wantErr: true},
		{name: "negative count", args: []string{"palette", "-n", "-1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCmd(t, tt.args...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestProductsCmd(t *testing.T) {
	file := filepath.Join(t.TempDir(), "product_dates.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"products":[{"name":"Deposit","start_date":"2024-01-01","end_date":"2024-01-31"}]}`), 0o600))

	out, _, err := runCmd(t, "products", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Deposit")
	assert.Contains(t, out, "2024-01-31")

	out, errOut, err := runCmd(t, "products", "--file", filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "No products configured")
	assert.Contains(t, errOut, "failed to load product dates file")
}

func TestSummaryCmdRejectsOversizedWindow(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_URL", "https://docs.google.com/spreadsheets/d/abcdefghijklmnop/edit")
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", filepath.Join(t.TempDir(), "creds.json"))

	_, _, err := runCmd(t, "summary", "--window", "4611686018427387904")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--window must be from 1 to")
}

func TestSummaryCmdRequiresSheet(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_URL", "")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "")

	_, _, err := runCmd(t, "summary")
	require.Error(t, err)
	assert.Contains(t, common.UserMessage(err), "not configured")
}
