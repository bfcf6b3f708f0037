package parameters

import (
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	regs := NewRegisters()
	assert.False(t, regs.B(P_SEQUENTIAL))
	assert.Empty(t, regs.L(P_EMOJITABLES))
	assert.Equal(t, "Notedown", regs.S(P_TITLE))
}

func TestFromConfig(t *testing.T) {
	conf := testconfig.Conf{
		"notedown.emoji":      "a.txt, b.txt,",
		"notedown.sequential": "true",
		"notedown.title":      "My Notes",
	}
	regs := FromConfig(conf)
	assert.Equal(t, []string{"a.txt", "b.txt"}, regs.L(P_EMOJITABLES))
	assert.True(t, regs.B(P_SEQUENTIAL))
	assert.False(t, regs.B(P_NOEMOJI))
	assert.Equal(t, "My Notes", regs.S(P_TITLE))
	assert.Equal(t, "notedown.styles", P_STYLESHEETS.String())
}

func TestOutOfRange(t *testing.T) {
	regs := NewRegisters()
	assert.Panics(t, func() { regs.Get(P_STOPPER) })
}
