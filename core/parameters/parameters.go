/*
Package parameters holds the settings a compiler run is parameterized with.

Parameters are kept in a register set, pre-loaded with defaults. A
configuration (usually assembled by the command line front end from
flags and a configuration file) may override single registers.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"strings"

	"github.com/npillmayer/schuko"
)

// CompilerParameter is a key into a register set.
type CompilerParameter int

const (
	none CompilerParameter = iota
	P_STYLESHEETS          // stylesheet files, in order of inclusion
	P_EMOJITABLES          // emoji look-up tables, later tables override earlier ones
	P_NODEFAULTSTYLE       // do not include the packaged stylesheet
	P_NODEFAULTEMOJI       // do not load the packaged emoji table
	P_NOEMOJI              // do not load any emoji tables
	P_INLINESTYLES         // copy stylesheets into the output document
	P_SEQUENTIAL           // parse input files one after another
	P_TITLE                // title of the output page
	P_STOPPER
)

var parameterNames = [P_STOPPER]string{
	"",
	"notedown.styles",
	"notedown.emoji",
	"notedown.nodefaultstyle",
	"notedown.nodefaultemoji",
	"notedown.noemoji",
	"notedown.styledoc",
	"notedown.sequential",
	"notedown.title",
}

// Key returns the configuration key for a parameter.
func (p CompilerParameter) Key() string {
	if p <= none || p >= P_STOPPER {
		return ""
	}
	return parameterNames[p]
}

func (p CompilerParameter) String() string {
	return p.Key()
}

// Registers is a set of compiler parameters.
type Registers struct {
	base [P_STOPPER]interface{}
}

// NewRegisters creates a register set initialized to defaults.
func NewRegisters() *Registers {
	regs := &Registers{}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_STYLESHEETS] = []string{} // list of file names
	p[P_EMOJITABLES] = []string{} // list of file names
	p[P_NODEFAULTSTYLE] = false
	p[P_NODEFAULTEMOJI] = false
	p[P_NOEMOJI] = false
	p[P_INLINESTYLES] = false
	p[P_SEQUENTIAL] = false
	p[P_TITLE] = "Notedown"
}

// FromConfig creates a register set and overrides every register for which
// conf has a value. List-valued registers are read as comma separated lists.
// A nil conf yields the defaults.
func FromConfig(conf schuko.Configuration) *Registers {
	regs := NewRegisters()
	if conf == nil {
		return regs
	}
	for p := none + 1; p < P_STOPPER; p++ {
		key := p.Key()
		if !conf.IsSet(key) {
			continue
		}
		switch regs.base[p].(type) {
		case bool:
			regs.Push(p, conf.GetBool(key))
		case []string:
			regs.Push(p, SplitList(conf.GetString(key)))
		default:
			regs.Push(p, conf.GetString(key))
		}
	}
	return regs
}

// Push sets a register.
func (regs *Registers) Push(key CompilerParameter, value interface{}) {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of compiler parameters")
	}
	regs.base[key] = value
}

// Get returns the value of a register.
func (regs *Registers) Get(key CompilerParameter) interface{} {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of compiler parameters")
	}
	return regs.base[key]
}

// S returns a string register.
func (regs *Registers) S(key CompilerParameter) string {
	s, _ := regs.Get(key).(string)
	return s
}

// B returns a boolean register.
func (regs *Registers) B(key CompilerParameter) bool {
	b, _ := regs.Get(key).(bool)
	return b
}

// L returns a list register.
func (regs *Registers) L(key CompilerParameter) []string {
	l, _ := regs.Get(key).([]string)
	return l
}

// SplitList splits a comma separated list, dropping empty entries.
func SplitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
