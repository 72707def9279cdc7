package cron

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tekktrik/cronberry/crontab"
)

const srcTabText = "# [Test 1]\n" +
	"MAILTO=\"\"\n" +
	"MAILFROM=root\n" +
	"PATH=/home/someone\n" +
	"SHELL=/bin/sh\n" +
	"CRON_TZ=Etc/UTC\n" +
	"*/2 1-5 * * * echo \"Test 1!\"\n" +
	"\n" +
	"# [Test 2]\n" +
	"MAILTO=root\n" +
	"MAILFROM=root\n" +
	"PATH=/home/someone\n" +
	"SHELL=/bin/sh\n" +
	"CRON_TZ=Etc/Universal\n" +
	"@yearly echo \"Test 2!\"\n"

func tempTab(t *testing.T, text string) FileTab {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cron.tab")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return FileTab(path)
}

func mustJob(t *testing.T, title, cronText string) *crontab.Job {
	t.Helper()
	job, err := crontab.ParseJob(title, cronText)
	require.NoError(t, err)
	return job
}

func TestFileTabMissingFileReadsEmpty(t *testing.T) {
	source := FileTab(filepath.Join(t.TempDir(), "missing.tab"))

	text, err := source.Read()
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestParseSource(t *testing.T) {
	source := tempTab(t, srcTabText)

	table, err := Parse(source)
	require.NoError(t, err)
	assert.Equal(t, []string{"Test 1", "Test 2"}, table.Titles())
}

func TestAddRereadsAndInstalls(t *testing.T) {
	source := tempTab(t, srcTabText)

	job := mustJob(t, "Test 3", "@daily echo \"Test 3!\"")
	require.NoError(t, Add(source, []*crontab.Job{job}, false))

	table, err := Parse(source)
	require.NoError(t, err)
	assert.Equal(t, []string{"Test 1", "Test 2", "Test 3"}, table.Titles())
}

func TestAddConflictLeavesFileUntouched(t *testing.T) {
	source := tempTab(t, srcTabText)

	job := mustJob(t, "Test 1", "@daily echo \"clobbered\"")
	err := Add(source, []*crontab.Job{job}, false)
	assert.ErrorIs(t, err, crontab.ErrTitleConflict)

	text, err := source.Read()
	require.NoError(t, err)
	assert.Equal(t, srcTabText, text)
}

func TestRemoveFromSource(t *testing.T) {
	source := tempTab(t, srcTabText)

	require.NoError(t, Remove(source, "Test 2", false))

	table, err := Parse(source)
	require.NoError(t, err)
	assert.Equal(t, []string{"Test 1"}, table.Titles())

	err = Remove(source, "Test 2", false)
	assert.ErrorIs(t, err, crontab.ErrTitleNotFound)

	require.NoError(t, Remove(source, "Test 2", true))
}

func TestWriteReplacesTable(t *testing.T) {
	source := tempTab(t, srcTabText)

	jobs := []*crontab.Job{
		mustJob(t, "Only", "@reboot echo \"Only!\""),
	}
	require.NoError(t, Write(source, jobs))

	table, err := Parse(source)
	require.NoError(t, err)
	assert.Equal(t, []string{"Only"}, table.Titles())
}

func TestWriteReadEquality(t *testing.T) {
	source := tempTab(t, "")

	original, err := crontab.ParseTable(srcTabText)
	require.NoError(t, err)

	require.NoError(t, Write(source, original.Jobs()))

	read, err := Parse(source)
	require.NoError(t, err)
	require.Equal(t, original.Len(), read.Len())
	for i, job := range read.Jobs() {
		assert.True(t, job.Equal(original.Jobs()[i]), job.Title)
	}
}

func TestClearSource(t *testing.T) {
	source := tempTab(t, srcTabText)

	require.NoError(t, Clear(source))

	table, err := Parse(source)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestSaveCopiesRawText(t *testing.T) {
	source := tempTab(t, srcTabText)
	dest := filepath.Join(t.TempDir(), "saved.tab")

	require.NoError(t, Save(source, dest))

	saved, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, srcTabText, string(saved))
}

func TestJobLookup(t *testing.T) {
	source := tempTab(t, srcTabText)

	job, err := Job(source, "Test 2")
	require.NoError(t, err)
	assert.Equal(t, "@yearly echo \"Test 2!\"", job.String())

	_, err = Job(source, "Test 9")
	assert.ErrorIs(t, err, crontab.ErrTitleNotFound)
}

func TestSelect(t *testing.T) {
	assert.Equal(t, FileTab("/tmp/x.tab"), Select("/tmp/x.tab"))
	assert.Equal(t, SystemTab{}, Select(""))
}
