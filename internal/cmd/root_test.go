package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestEnterJobJobsRemove(t *testing.T) {
	tab := filepath.Join(t.TempDir(), "cron.tab")

	_, err := execute(t, "--file", tab, "enter", "Greet", "@daily echo hello")
	require.NoError(t, err)

	out, err := execute(t, "--file", tab, "jobs")
	require.NoError(t, err)
	assert.Equal(t, "Greet\n", out)

	out, err = execute(t, "--file", tab, "job", "Greet")
	require.NoError(t, err)
	assert.Equal(t, "@daily echo hello\n", out)

	// same title again without --overwrite is rejected
	_, err = execute(t, "--file", tab, "enter", "Greet", "@hourly echo hi")
	assert.Error(t, err)

	_, err = execute(t, "--file", tab, "enter", "--overwrite", "Greet", "@hourly echo hi")
	require.NoError(t, err)

	out, err = execute(t, "--file", tab, "job", "Greet")
	require.NoError(t, err)
	assert.Equal(t, "@hourly echo hi\n", out)

	_, err = execute(t, "--file", tab, "remove", "Greet")
	require.NoError(t, err)

	out, err = execute(t, "--file", tab, "jobs")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRemoveRejectsDuplicateArgs(t *testing.T) {
	tab := filepath.Join(t.TempDir(), "cron.tab")

	_, err := execute(t, "--file", tab, "remove", "Same", "Same")
	assert.Error(t, err)
}

func TestAddSaveClear(t *testing.T) {
	dir := t.TempDir()
	tab := filepath.Join(dir, "cron.tab")
	source := filepath.Join(dir, "source.tab")

	sourceText := "# [From File]\n" +
		"MAILTO=\"\"\n" +
		"MAILFROM=root\n" +
		"PATH=\"\"\n" +
		"SHELL=/bin/sh\n" +
		"CRON_TZ=Etc/UTC\n" +
		"*/5 * * * * echo five\n"
	require.NoError(t, os.WriteFile(source, []byte(sourceText), 0o644))

	_, err := execute(t, "--file", tab, "add", source)
	require.NoError(t, err)

	out, err := execute(t, "--file", tab, "jobs")
	require.NoError(t, err)
	assert.Equal(t, "From File\n", out)

	saved := filepath.Join(dir, "saved.tab")
	_, err = execute(t, "--file", tab, "save", saved)
	require.NoError(t, err)

	savedText, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, sourceText, string(savedText))

	_, err = execute(t, "--file", tab, "clear")
	require.NoError(t, err)

	out, err = execute(t, "--file", tab, "jobs")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestAddMissingTitleFilter(t *testing.T) {
	dir := t.TempDir()
	tab := filepath.Join(dir, "cron.tab")
	source := filepath.Join(dir, "source.tab")
	require.NoError(t, os.WriteFile(source, []byte(""), 0o644))

	_, err := execute(t, "--file", tab, "add", "--title", "No Such Job", source)
	assert.Error(t, err)
}
