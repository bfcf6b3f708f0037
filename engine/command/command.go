package command

import (
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/notedown/engine/dom/style"
)

// Call is a call to a generator or modifier function.
type Call struct {
	Name string
	Args []string
}

// Key returns the function registry key for c, given its kind prefix
// ('$' for generators, '&' for modifiers).
func (c Call) Key(prefix byte) string {
	return string(prefix) + c.Name
}

func (c Call) clone() Call {
	return Call{Name: c.Name, Args: append([]string(nil), c.Args...)}
}

// Command is the id/class/attribute/CSS/function/reference record of a node.
// The zero value is an empty command ready to use.
type Command struct {
	ID        string
	Title     string
	RefName   string   // name under which this command is a reusable block
	Generator *Call    // at most one per node
	Modifiers []Call   // in order of appearance
	Refs      []string // names of reusable command blocks to splice in
	classes   *treeset.Set
	attrs     *treemap.Map
	css       *style.PropertyMap
	flags     map[string]string
}

// New creates an empty command.
func New() *Command {
	return &Command{}
}

// AddClass adds a class.
func (cmd *Command) AddClass(cls string) {
	if cmd.classes == nil {
		cmd.classes = treeset.NewWithStringComparator()
	}
	cmd.classes.Add(cls)
}

// HasClass is a predicate: does cmd carry class cls?
func (cmd *Command) HasClass(cls string) bool {
	return cmd.classes != nil && cmd.classes.Contains(cls)
}

// Classes returns the classes of cmd, sorted.
func (cmd *Command) Classes() []string {
	if cmd.classes == nil {
		return nil
	}
	cls := make([]string, 0, cmd.classes.Size())
	for _, c := range cmd.classes.Values() {
		cls = append(cls, c.(string))
	}
	return cls
}

// SetAttribute sets an HTML attribute, overwriting an existing value.
func (cmd *Command) SetAttribute(key, value string) {
	if cmd.attrs == nil {
		cmd.attrs = treemap.NewWithStringComparator()
	}
	cmd.attrs.Put(key, value)
}

// Attribute returns the value of an HTML attribute.
func (cmd *Command) Attribute(key string) (string, bool) {
	if cmd.attrs == nil {
		return "", false
	}
	v, ok := cmd.attrs.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// EachAttribute calls f for every attribute, ordered by key.
func (cmd *Command) EachAttribute(f func(key, value string)) {
	if cmd.attrs == nil {
		return
	}
	it := cmd.attrs.Iterator()
	for it.Next() {
		f(it.Key().(string), it.Value().(string))
	}
}

// CSS returns the CSS declarations of cmd.
func (cmd *Command) CSS() *style.PropertyMap {
	if cmd.css == nil {
		cmd.css = style.NewPropertyMap()
	}
	return cmd.css
}

// SetFlag sets a flag. Flags are a side channel between handlers and
// functions and are never rendered.
func (cmd *Command) SetFlag(key, value string) {
	if cmd.flags == nil {
		cmd.flags = make(map[string]string)
	}
	cmd.flags[key] = value
}

// Flag returns the value of a flag.
func (cmd *Command) Flag(key string) (string, bool) {
	v, ok := cmd.flags[key]
	return v, ok
}

// HasFlag is a predicate: is flag key set?
func (cmd *Command) HasFlag(key string) bool {
	_, ok := cmd.flags[key]
	return ok
}

// IsEmpty is true if cmd carries no information at all.
func (cmd *Command) IsEmpty() bool {
	if cmd == nil {
		return true
	}
	return cmd.ID == "" && cmd.Title == "" && cmd.Generator == nil &&
		len(cmd.Modifiers) == 0 && len(cmd.Refs) == 0 && len(cmd.flags) == 0 &&
		(cmd.classes == nil || cmd.classes.Empty()) &&
		(cmd.attrs == nil || cmd.attrs.Empty()) && cmd.css.Size() == 0
}

// Clone returns a deep copy of cmd.
func (cmd *Command) Clone() *Command {
	c := &Command{
		ID:      cmd.ID,
		Title:   cmd.Title,
		RefName: cmd.RefName,
		Refs:    append([]string(nil), cmd.Refs...),
	}
	if cmd.Generator != nil {
		g := cmd.Generator.clone()
		c.Generator = &g
	}
	for _, m := range cmd.Modifiers {
		c.Modifiers = append(c.Modifiers, m.clone())
	}
	for _, cls := range cmd.Classes() {
		c.AddClass(cls)
	}
	cmd.EachAttribute(c.SetAttribute)
	if cmd.css != nil {
		c.css = cmd.css.Clone()
	}
	for k, v := range cmd.flags {
		c.SetFlag(k, v)
	}
	return c
}

// Merge folds other into cmd, with other taking precedence. Used when a
// node's own annotation is attached to it.
//
// Id, title and generator are overwritten (if other has them), attributes
// and CSS are overwritten by key, classes are united, and modifiers,
// flags and references are appended.
func (cmd *Command) Merge(other *Command) {
	if other == nil || other == cmd {
		return
	}
	if other.ID != "" {
		cmd.ID = other.ID
	}
	if other.Title != "" {
		cmd.Title = other.Title
	}
	if other.Generator != nil {
		g := other.Generator.clone()
		cmd.Generator = &g
	}
	for _, cls := range other.Classes() {
		cmd.AddClass(cls)
	}
	other.EachAttribute(cmd.SetAttribute)
	other.css.Each(func(prop, value string) {
		cmd.CSS().Put(prop, value)
	})
	for _, m := range other.Modifiers {
		cmd.Modifiers = append(cmd.Modifiers, m.clone())
	}
	for k, v := range other.flags {
		cmd.SetFlag(k, v)
	}
	cmd.Refs = append(cmd.Refs, other.Refs...)
}

// Integrate folds other into cmd, with cmd taking precedence. Used for
// lower-precedence sources: referenced command blocks and the commands of
// consumed child nodes.
//
// Id, title and generator are set only if cmd does not have them yet.
// Classes are united, attributes, CSS and flags are added without
// overwriting, and modifiers and references are appended.
func (cmd *Command) Integrate(other *Command) {
	if other == nil || other == cmd {
		return
	}
	if cmd.ID == "" {
		cmd.ID = other.ID
	}
	if cmd.Title == "" {
		cmd.Title = other.Title
	}
	if cmd.Generator == nil && other.Generator != nil {
		g := other.Generator.clone()
		cmd.Generator = &g
	}
	for _, cls := range other.Classes() {
		cmd.AddClass(cls)
	}
	other.EachAttribute(func(key, value string) {
		if _, ok := cmd.Attribute(key); !ok {
			cmd.SetAttribute(key, value)
		}
	})
	other.css.Each(func(prop, value string) {
		cmd.CSS().PutIfAbsent(prop, value)
	})
	for _, m := range other.Modifiers {
		cmd.Modifiers = append(cmd.Modifiers, m.clone())
	}
	for k, v := range other.flags {
		if !cmd.HasFlag(k) {
			cmd.SetFlag(k, v)
		}
	}
	cmd.Refs = append(cmd.Refs, other.Refs...)
}

// Lookup finds the command of a reusable command block, given a registry
// key of the form "{name".
type Lookup func(key string) (*Command, bool)

// Resolve splices every referenced command block into cmd.
//
// References brought in by a spliced block are expanded as well. Every name
// is expanded at most once, and cmd's own RefName counts as expanded, so
// cyclic references terminate.
func (cmd *Command) Resolve(lookup Lookup) {
	if lookup == nil {
		return
	}
	visited := map[string]bool{cmd.RefName: true}
	for i := 0; i < len(cmd.Refs); i++ { // cmd.Refs may grow during the loop
		name := cmd.Refs[i]
		if visited[name] {
			continue
		}
		visited[name] = true
		if block, ok := lookup("{" + name); ok {
			tracer().Debugf("command: splicing in block %q", name)
			cmd.Integrate(block)
		}
	}
}

// String returns cmd in command syntax.
func (cmd *Command) String() string {
	var parts []string
	if cmd.ID != "" {
		parts = append(parts, "#"+cmd.ID)
	}
	if cls := cmd.Classes(); len(cls) > 0 {
		parts = append(parts, "."+strings.Join(cls, "."))
	}
	if cmd.Title != "" {
		parts = append(parts, ":"+quoteIfNeeded(cmd.Title))
	}
	cmd.EachAttribute(func(key, value string) {
		parts = append(parts, "+"+key+"="+quoteIfNeeded(value))
	})
	cmd.css.Each(func(prop, value string) {
		parts = append(parts, ">"+prop+":"+quoteIfNeeded(value))
	})
	if cmd.Generator != nil {
		parts = append(parts, callString('$', *cmd.Generator))
	}
	for _, m := range cmd.Modifiers {
		parts = append(parts, callString('&', m))
	}
	for _, ref := range cmd.Refs {
		parts = append(parts, "%"+ref)
	}
	return strings.Join(parts, " ")
}

func callString(prefix byte, c Call) string {
	s := string(prefix) + c.Name
	if len(c.Args) > 0 {
		args := make([]string, len(c.Args))
		for i, a := range c.Args {
			args[i] = quoteIfNeeded(a)
		}
		s += ":" + strings.Join(args, ",")
	}
	return s
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, " ,") {
		return `"` + s + `"`
	}
	return s
}
