package emoji

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lut = `😄 smile happy
👍 +1 thumbsup

malformed
🙂   slightly_smiling_face
`

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	table := NewTable()
	n, err := table.Load(strings.NewReader(lut))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, table.Size())
	e, ok := table.Lookup("happy")
	assert.True(t, ok)
	assert.Equal(t, "😄", e)
	e, _ = table.Lookup("+1")
	assert.Equal(t, "👍", e)
	_, ok = table.Lookup("malformed")
	assert.False(t, ok)
	_, ok = table.Lookup("smi")
	assert.False(t, ok)
}

func TestLaterEntriesReplaceEarlier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	table := NewTable()
	table.Add("ok", "👌")
	table.Add("ok", "🆗")
	assert.Equal(t, 1, table.Size())
	e, _ := table.Lookup("ok")
	assert.Equal(t, "🆗", e)
}

func TestPrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	table := NewTable()
	_, err := table.Load(strings.NewReader(lut))
	require.NoError(t, err)
	entries := table.Prefix("s")
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Shortcode: "slightly_smiling_face", Emoji: "🙂"}, entries[0])
	assert.Equal(t, "smile", entries[1].Shortcode)
	assert.Empty(t, table.Prefix("x"))
	assert.Len(t, table.Prefix(""), 5)
}

func TestNilTable(t *testing.T) {
	var table *Table
	_, ok := table.Lookup("smile")
	assert.False(t, ok)
}
