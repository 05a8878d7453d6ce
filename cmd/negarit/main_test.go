package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/negarit"
	main "github.com/fwojciec/negarit/cmd/negarit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gazette = `www.chilot.me scanned copy
FEDERAL NEGARIT GAZETTE
OF THE FEDERAL DEMOCRATIC REPUBLIC OF ETHIOPIA
CONTENTS
PROCLAMATION No. 621/2009
WHEREAS, it is necessary to enact a law;
4521
PART ONE
GENERAL
1. Short Title
This Proclamation may be cited as the "Charities Proclamation".
PART TWO
THE AGENCY
5. Establishment
The Agency is hereby established.
`

var wantParts = map[string]string{
	"PART ONE": "GENERAL\n1 Short Title\nThis Proclamation may be cited as the Charities Proclamation",
	"PART TWO": "THE AGENCY\n5 Establishment\nThe Agency is hereby established",
}

// workspace holds the directories used by an end-to-end run.
type workspace struct {
	dir    string
	source string
	output string
	logs   string
	db     string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	dir := t.TempDir()
	ws := workspace{
		dir:    dir,
		source: filepath.Join(dir, "text_files"),
		output: filepath.Join(dir, "serialized_files"),
		logs:   filepath.Join(dir, "logs"),
		db:     filepath.Join(dir, "negarit.db"),
	}
	require.NoError(t, os.MkdirAll(ws.source, 0755))
	return ws
}

func (ws workspace) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(ws.source, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func (ws workspace) run(t *testing.T, args ...string) (stdout, stderr *bytes.Buffer, err error) {
	t.Helper()
	m := main.NewMain()
	m.DBPath = ws.db
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	err = m.Run(context.Background(), args, stdout, stderr)
	return stdout, stderr, err
}

func (ws workspace) process(t *testing.T, extra ...string) (stdout, stderr *bytes.Buffer, err error) {
	t.Helper()
	args := []string{"process", "--source", ws.source, "--output", ws.output, "--logs", ws.logs}
	return ws.run(t, append(args, extra...)...)
}

func TestProcessCmd_EndToEnd(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	ws.write(t, "gazette.txt", gazette)
	ws.write(t, "copy.txt", gazette)

	stdout, _, err := ws.process(t)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Processed 1 files (1 skipped, 0 failed), extracted 2 parts")

	data, err := os.ReadFile(filepath.Join(ws.output, "proclamation_no_621_2009.json"))
	require.NoError(t, err)
	var rec negarit.Record
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "PROCLAMATION No 621 2009", rec.Title)
	assert.Equal(t, "it is necessary to enact a law", rec.Description)
	assert.Equal(t, wantParts, rec.Parts)

	assert.FileExists(t, filepath.Join(ws.source, "gazette_duplicate_cleaned.txt"))
	assert.FileExists(t, filepath.Join(ws.source, "copy_duplicate_cleaned.txt"))

	logData, err := os.ReadFile(filepath.Join(ws.logs, main.LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "processing finished")
	assert.Contains(t, string(logData), "record written")
	assert.Contains(t, string(logData), "duplicate skipped")

	t.Run("list shows indexed document", func(t *testing.T) {
		stdout, _, err := ws.run(t, "list")

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "PROCLAMATION No 621 2009")
		assert.Contains(t, stdout.String(), "pre-2018")
	})

	t.Run("rerun skips indexed content", func(t *testing.T) {
		stdout, _, err := ws.process(t)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Processed 0 files (2 skipped, 0 failed)")
	})

	t.Run("force reprocesses indexed content", func(t *testing.T) {
		stdout, _, err := ws.process(t, "--force")

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Processed 2 files (0 skipped, 0 failed), extracted 4 parts")
	})
}

func TestProcessCmd_XMLFormat(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	ws.write(t, "gazette.txt", gazette)

	_, _, err := ws.process(t, "--format", "xml")

	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(ws.output, "proclamation_no_621_2009.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `<proclamation era="pre-2018">`)
	assert.Contains(t, string(data), `<part label="PART ONE">`)
}

func TestProcessCmd_HTMLSource(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	ws.write(t, "gazette.html", `<html><body>
<nav>Home | Laws</nav>
<div class="entry-content">
<p>FEDERAL NEGARIT GAZETTE</p>
<p>PROCLAMATION No. 621/2009</p>
<p>WHEREAS, it is necessary to enact a law;</p>
<p>PART ONE</p>
<p>GENERAL</p>
</div>
<script>var tracking = 1;</script>
</body></html>`)

	stdout, _, err := ws.process(t)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Processed 1 files")
	data, err := os.ReadFile(filepath.Join(ws.output, "proclamation_no_621_2009.json"))
	require.NoError(t, err)
	var rec negarit.Record
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, map[string]string{"PART ONE": "GENERAL"}, rec.Parts)
}

func TestProcessCmd_MissingSourceDir(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)

	_, stderr, err := ws.run(t, "process", "--source", filepath.Join(ws.dir, "missing"), "--output", ws.output, "--logs", ws.logs)

	require.Error(t, err)
	assert.Equal(t, negarit.ENOTFOUND, negarit.ErrorCode(err))
	assert.Contains(t, stderr.String(), "error:")
}

func TestParseCmd(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	path := ws.write(t, "gazette.txt", gazette)

	t.Run("prints record JSON", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := ws.run(t, "parse", path)

		require.NoError(t, err)
		var rec negarit.Record
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &rec))
		assert.Equal(t, "PROCLAMATION No 621 2009", rec.Title)
		assert.Equal(t, wantParts, rec.Parts)
	})

	t.Run("prints cleaned text", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := ws.run(t, "parse", "--cleaned", path)

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(stdout.Bytes(), []byte("FEDERAL NEGARIT GAZETTE\n")))
		assert.NotContains(t, stdout.String(), "chilot")
	})

	t.Run("writes nothing", func(t *testing.T) {
		t.Parallel()

		_, _, err := ws.run(t, "parse", path)

		require.NoError(t, err)
		assert.NoFileExists(t, filepath.Join(ws.source, "gazette_duplicate_cleaned.txt"))
		assert.NoDirExists(t, ws.output)
		assert.NoFileExists(t, ws.db)
	})

	t.Run("rejects missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := ws.run(t, "parse", filepath.Join(ws.dir, "missing.txt"))

		require.Error(t, err)
	})
}

func TestConfigCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints config file values over defaults", func(t *testing.T) {
		t.Parallel()

		ws := newWorkspace(t)
		cfgPath := filepath.Join(ws.dir, "negarit.toml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("[extract]\nmax_section_title = 40\n"), 0644))

		stdout, _, err := ws.run(t, "--config", cfgPath, "config")

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "max_section_title = 40")
		assert.Contains(t, stdout.String(), "min_line_length = 3")
	})

	t.Run("rejects missing config file", func(t *testing.T) {
		t.Parallel()

		ws := newWorkspace(t)

		_, stderr, err := ws.run(t, "--config", filepath.Join(ws.dir, "missing.toml"), "list")

		require.Error(t, err)
		assert.Equal(t, negarit.EINVALID, negarit.ErrorCode(err))
		assert.Contains(t, stderr.String(), "missing.toml")
		assert.NoFileExists(t, ws.db)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		ws := newWorkspace(t)
		cfgPath := filepath.Join(ws.dir, "negarit.toml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("[clean]\nheader = \"X\"\n"), 0644))

		_, _, err := ws.run(t, "--config", cfgPath, "config")

		require.Error(t, err)
		assert.Equal(t, negarit.EINVALID, negarit.ErrorCode(err))
	})
}
