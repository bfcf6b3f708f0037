package resolve

import (
	"sort"

	"github.com/npillmayer/notedown/engine/dom"
)

// Phase is one of the ordered passes over the document trees.
type Phase uint8

// The phases, in order of execution.
const (
	Register Phase = iota
	Resolve
	Consume
	ExecutePrep
	ExecuteMain
	ExecutePost
)

// Phases lists all phases in order of execution.
var Phases = [...]Phase{Register, Resolve, Consume, ExecutePrep, ExecuteMain, ExecutePost}

func (p Phase) String() string {
	switch p {
	case Register:
		return "Register"
	case Resolve:
		return "Resolve"
	case Consume:
		return "Consume"
	case ExecutePrep:
		return "ExecutePrep"
	case ExecuteMain:
		return "ExecuteMain"
	case ExecutePost:
		return "ExecutePost"
	}
	return "Phase(?)"
}

// Func is a generator or modifier function, called for node n during the
// execution phases with the raw arguments of the call.
type Func func(ctx *Context, n *dom.Node, phase Phase, args []string)

// Functions is a registry of generator functions (key "$name") and
// modifier functions (key "&name").
type Functions struct {
	funcs map[string]Func
}

// NewFunctions creates an empty function registry.
func NewFunctions() *Functions {
	return &Functions{funcs: make(map[string]Func)}
}

// AddGenerator registers a generator function. Generators run once, in
// phase ExecuteMain.
func (f *Functions) AddGenerator(name string, fn Func) {
	f.funcs["$"+name] = fn
}

// AddModifier registers a modifier function. Modifiers are called in each
// of the three execution phases.
func (f *Functions) AddModifier(name string, fn Func) {
	f.funcs["&"+name] = fn
}

// Lookup finds a function by key.
func (f *Functions) Lookup(key string) (Func, bool) {
	if f == nil {
		return nil, false
	}
	fn, ok := f.funcs[key]
	return fn, ok
}

// Keys returns the keys of all registered functions, sorted.
func (f *Functions) Keys() []string {
	keys := make([]string, 0, len(f.funcs))
	for k := range f.funcs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
