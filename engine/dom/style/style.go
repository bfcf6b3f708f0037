/*
Package style holds CSS declarations attached to document nodes.

Declarations enter a PropertyMap one at a time, usually from a `>prop:value`
token of a node command. Every declaration is run through a CSS declaration
parser first; declarations the parser rejects are dropped.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'notedown.engine'.
func tracer() tracing.Trace {
	return tracing.Select("notedown.engine")
}

// ParseDeclaration validates a single CSS declaration.
func ParseDeclaration(prop, value string) (*css.Declaration, error) {
	prop, value = strings.TrimSpace(prop), strings.TrimSpace(value)
	if prop == "" || value == "" {
		return nil, fmt.Errorf("incomplete CSS declaration %q", prop+":"+value)
	}
	decls, err := parser.ParseDeclarations(prop + ": " + value + ";")
	if err != nil {
		return nil, err
	}
	if len(decls) != 1 || decls[0].Property == "" || decls[0].Value == "" {
		return nil, fmt.Errorf("not a single CSS declaration: %q", prop+":"+value)
	}
	return decls[0], nil
}

// PropertyMap is a set of CSS declarations, ordered by property name.
// The zero value is an empty map ready to use.
type PropertyMap struct {
	m *treemap.Map
}

// NewPropertyMap creates an empty property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{m: treemap.NewWithStringComparator()}
}

func (pm *PropertyMap) init() {
	if pm.m == nil {
		pm.m = treemap.NewWithStringComparator()
	}
}

// Add validates a declaration and stores it, overwriting an existing value
// for the same property. It returns false if the declaration is invalid.
func (pm *PropertyMap) Add(prop, value string) bool {
	decl, err := ParseDeclaration(prop, value)
	if err != nil {
		tracer().Debugf("dropping CSS declaration: %v", err)
		return false
	}
	pm.Put(decl.Property, declValue(decl))
	return true
}

func declValue(decl *css.Declaration) string {
	if decl.Important {
		return decl.Value + " !important"
	}
	return decl.Value
}

// Put stores a value without validation, overwriting an existing one.
func (pm *PropertyMap) Put(prop, value string) {
	pm.init()
	pm.m.Put(prop, value)
}

// PutIfAbsent stores a value only if prop has no value yet.
func (pm *PropertyMap) PutIfAbsent(prop, value string) {
	if _, ok := pm.Get(prop); !ok {
		pm.Put(prop, value)
	}
}

// Get returns the value for a property.
func (pm *PropertyMap) Get(prop string) (string, bool) {
	if pm == nil || pm.m == nil {
		return "", false
	}
	v, ok := pm.m.Get(prop)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Size returns the number of declarations.
func (pm *PropertyMap) Size() int {
	if pm == nil || pm.m == nil {
		return 0
	}
	return pm.m.Size()
}

// Each calls f for every declaration, in property order.
func (pm *PropertyMap) Each(f func(prop, value string)) {
	if pm == nil || pm.m == nil {
		return
	}
	it := pm.m.Iterator()
	for it.Next() {
		f(it.Key().(string), it.Value().(string))
	}
}

// Clone returns a copy of pm.
func (pm *PropertyMap) Clone() *PropertyMap {
	c := NewPropertyMap()
	pm.Each(func(prop, value string) {
		c.Put(prop, value)
	})
	return c
}

// String returns the declarations in the format of an HTML style attribute.
func (pm *PropertyMap) String() string {
	var b strings.Builder
	pm.Each(func(prop, value string) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(prop)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte(';')
	})
	return b.String()
}
