package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestGenerateRequiresLagSetFlag(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "generate", "--seed", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"lag-set\" not set")
}

func TestGenerateWritesOrdersAndManifest(t *testing.T) {
	home := t.TempDir()
	base := filepath.Join(home, "orders")

	stdout, _, err := executeCLI(t, home,
		"generate",
		"--base-dir", base,
		"--lag-set", "lagset1",
		"--count", "2",
		"--seed", "5",
		"--attempts", "5",
		"--debug",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "order 1: "+filepath.Join(base, "lagset1", "order_1.txt")+" (320 trials")
	assert.Contains(t, stdout, "debug: "+filepath.Join(base, "lagset1", "debug", "order_2_debug.csv"))
	assert.Contains(t, stdout, "seed: 5")

	data, err := os.ReadFile(filepath.Join(base, "lagset1", "order_2.txt"))
	require.NoError(t, err)
	assert.Equal(t, 320, strings.Count(string(data), "\n"))

	stdout, _, err = executeCLI(t, home, "manifest", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "lagset1 order 1: seed 5")
	assert.Contains(t, stdout, "lagset1 order 2: seed 5")

	stdout, _, err = executeCLI(t, home, "manifest", "list", "--lag-set", "other")
	require.NoError(t, err)
	assert.Contains(t, stdout, "orders: none")
}

func TestGenerateIsReproducibleFromSeed(t *testing.T) {
	home := t.TempDir()

	for _, base := range []string{"a", "b"} {
		_, _, err := executeCLI(t, home,
			"generate",
			"--base-dir", filepath.Join(home, base),
			"--lag-set", "lagset1",
			"--seed", "99",
			"--attempts", "5",
		)
		require.NoError(t, err)
	}

	first, err := os.ReadFile(filepath.Join(home, "a", "lagset1", "order_1.txt"))
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(home, "b", "lagset1", "order_1.txt"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSummaryReportsGeneratedOrderAsHealthy(t *testing.T) {
	home := t.TempDir()
	base := filepath.Join(home, "orders")
	generateOrders(t, home, base, 1)

	stdout, _, err := executeCLI(t, home, "summary", filepath.Join(base, "lagset1", "order_1.txt"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "orders: 1")
	assert.Contains(t, stdout, "trials: 320/320")
	assert.Contains(t, stdout, "lags: 0")
	assert.NotContains(t, stdout, "issues")

	stdout, _, err = executeCLI(t, home, "summary", "--json", filepath.Join(base, "lagset1", "order_1.txt"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"Expected\": 320")
}

func TestSummaryFailsOnBrokenOrder(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "broken.txt")
	require.NoError(t, os.WriteFile(path, []byte("1,-1\n101,503\n"), 0o600))

	stdout, _, err := executeCLI(t, home, "summary", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errOrderChecksFailed)
	assert.Contains(t, stdout, "order has 2 trials, schedule expects 320")
	assert.Contains(t, stdout, "repeat #1 declares lag 3 but is 0 trials apart")
}

func TestRenderWritesRunFiles(t *testing.T) {
	home := t.TempDir()
	base := filepath.Join(home, "orders")
	out := filepath.Join(home, "js")
	generateOrders(t, home, base, 1)
	require.NoError(t, writeBinsFixture(base, "1"))

	stdout, _, err := executeCLI(t, home,
		"render",
		"--base-dir", base,
		"--lag-set", "lagset1",
		"--order", "1",
		"--set", "1",
		"--runs", "2",
		"--out", out,
		"--seed", "3",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "rendered 2 files, seed: 3")

	first, err := os.ReadFile(filepath.Join(out, "lagset1_1_1_1.js"))
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(out, "lagset1_1_1_2.js"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, bytes.HasPrefix(first, []byte("var trial_stim=[\n  {trial: 0, image: 'Set 1_rs/")))
}

func TestRenderReportsMissingBinFile(t *testing.T) {
	home := t.TempDir()
	base := filepath.Join(home, "orders")
	generateOrders(t, home, base, 1)

	_, _, err := executeCLI(t, home,
		"render",
		"--base-dir", base,
		"--lag-set", "lagset1",
		"--order", "1",
		"--set", "9",
		"--out", filepath.Join(home, "js"),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Set9 bins.txt")
	assert.NoDirExists(t, filepath.Join(home, "js"))
}

func TestRenderAllWritesEverySetAndOrder(t *testing.T) {
	home := t.TempDir()
	base := filepath.Join(home, "orders")
	out := filepath.Join(home, "js")
	generateOrders(t, home, base, 2)
	require.NoError(t, writeBinsFixture(base, "1"))
	require.NoError(t, writeBinsFixture(base, "2"))

	stdout, _, err := executeCLI(t, home,
		"render-all",
		"--base-dir", base,
		"--lag-set", "lagset1",
		"--sets", "1,2",
		"--orders", "1,2",
		"--runs", "3",
		"--out", out,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "rendered 12 files")

	files, err := filepath.Glob(filepath.Join(out, "lagset1_*.js"))
	require.NoError(t, err)
	assert.Len(t, files, 12)
}

func TestInvalidConfigFails(t *testing.T) {
	home := t.TempDir()
	configPath := filepath.Join(home, "mst.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("foil_count = 200\n"), 0o600))

	_, _, err := executeCLI(t, home, "--config", configPath, "generate", "--lag-set", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate settings")
}

func TestConfigScheduleDrivesGeneration(t *testing.T) {
	home := t.TempDir()
	base := filepath.Join(home, "orders")
	configPath := filepath.Join(home, "mst.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`schedule_name = "small"
foil_count = 4
pair_types = ["repeat", "lure"]

[[lag_bins]]
name = "short"
count = 3
min = 1
max = 4
`), 0o600))

	stdout, _, err := executeCLI(t, home,
		"--config", configPath,
		"generate",
		"--base-dir", base,
		"--lag-set", "small",
		"--seed", "8",
		"--attempts", "50",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "(16 trials")

	stdout, _, err = executeCLI(t, home, "--config", configPath, "summary", filepath.Join(base, "small", "order_1.txt"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "trials: 16/16")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("MST_MANIFEST_PATH", filepath.Join(home, "mst-manifest.toml"))

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func generateOrders(t *testing.T, home, base string, count int) {
	t.Helper()

	_, _, err := executeCLI(t, home,
		"generate",
		"--base-dir", base,
		"--lag-set", "lagset1",
		"--count", fmt.Sprint(count),
		"--seed", "12",
		"--attempts", "5",
	)
	require.NoError(t, err)
}

func writeBinsFixture(base, stimSet string) error {
	var b strings.Builder
	for identity := 1; identity <= 192; identity++ {
		fmt.Fprintf(&b, "%d\t%d\n", identity, (identity-1)%5+1)
	}
	return os.WriteFile(filepath.Join(base, fmt.Sprintf("Set%s bins.txt", stimSet)), []byte(b.String()), 0o600)
}
