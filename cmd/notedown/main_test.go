package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/notedown/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.cli")
	defer teardown()
	//
	name := filepath.Join(t.TempDir(), "notedown.yaml")
	yml := `
notedown:
  styles: [a.css, b.css]
  sequential: true
  title: My Notes
app-key: notedown-test
`
	require.NoError(t, os.WriteFile(name, []byte(yml), 0644))
	conf, err := readConfig(name)
	require.NoError(t, err)
	assert.Equal(t, "a.css,b.css", conf.GetString("notedown.styles"))
	assert.True(t, conf.GetBool("notedown.sequential"))
	assert.Equal(t, "My Notes", conf.GetString("notedown.title"))
	assert.Equal(t, "notedown-test", conf.GetString("app-key"))
	//
	_, err = readConfig(filepath.Join(t.TempDir(), "none.yaml"))
	assert.True(t, core.IsMissing(err))
}

func TestFlagsOverrideConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.cli")
	defer teardown()
	//
	cmd := rootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"-s", "c.css", "--style", "d.css", "--sequential=false", "--no-default", "--title", "Other",
	}))
	conf, err := readConfig("")
	require.NoError(t, err)
	conf["notedown.styles"] = "a.css"
	conf["notedown.sequential"] = "true"
	applyFlags(cmd, conf)
	assert.Equal(t, "a.css,c.css,d.css", conf.GetString("notedown.styles"))
	assert.False(t, conf.GetBool("notedown.sequential"))
	assert.True(t, conf.GetBool("notedown.nodefaultstyle"))
	assert.True(t, conf.GetBool("notedown.nodefaultemoji"))
	assert.False(t, conf.IsSet("notedown.noemoji"))
	assert.Equal(t, "Other", conf.GetString("notedown.title"))
}

func TestCompileCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "notes.nd")
	require.NoError(t, os.WriteFile(in, []byte("# Notes\n\nHello :wave:\n"), 0644))
	dot := filepath.Join(dir, "notes.dot")
	cmd := rootCmd()
	cmd.SetArgs([]string{"-q", "--dot", dot, in})
	require.NoError(t, cmd.Execute())
	out, err := os.ReadFile(filepath.Join(dir, "notes.html"))
	require.NoError(t, err)
	html := string(out)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<h1 id="notes">Notes</h1>`)
	assert.Contains(t, html, "Hello 👋")
	_, err = os.Stat(dot)
	assert.NoError(t, err)
}
