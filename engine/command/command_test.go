package command

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	cmd := Parse("#main .note.warn +data-x=1 >color:red")
	assert.Equal(t, "main", cmd.ID)
	assert.Equal(t, []string{"note", "warn"}, cmd.Classes())
	v, ok := cmd.Attribute("data-x")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	css, ok := cmd.CSS().Get("color")
	assert.True(t, ok)
	assert.Equal(t, "red", css)
	assert.Nil(t, cmd.Generator)
	assert.Empty(t, cmd.Refs)
}

func TestParseQuotesAndCalls(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	cmd := Parse(`:"A long title" $now:"%d, %m",x &usenum:3 &notoc %shared >margin:"0 auto"`)
	assert.Equal(t, "A long title", cmd.Title)
	require.NotNil(t, cmd.Generator)
	assert.Equal(t, "now", cmd.Generator.Name)
	assert.Equal(t, []string{"%d, %m", "x"}, cmd.Generator.Args)
	require.Len(t, cmd.Modifiers, 2)
	assert.Equal(t, Call{Name: "usenum", Args: []string{"3"}}, cmd.Modifiers[0])
	assert.Equal(t, "&notoc", cmd.Modifiers[1].Key('&'))
	assert.Equal(t, []string{"shared"}, cmd.Refs)
	m, _ := cmd.CSS().Get("margin")
	assert.Equal(t, "0 auto", m)
}

func TestParseDropsMalformedTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	cmd := Parse("# #bad!id .ok..al$o + +=x >a:b $ %no/ref #good")
	assert.Equal(t, "good", cmd.ID)
	assert.Equal(t, []string{"ok"}, cmd.Classes())
	assert.Equal(t, 0, cmd.CSS().Size(), ">a:b is too short to be a declaration")
	assert.Nil(t, cmd.Generator)
	assert.Empty(t, cmd.Refs)
	_, ok := cmd.Attribute("")
	assert.False(t, ok)
}

func TestMergeIsIdempotentForScalars(t *testing.T) {
	cmd := New()
	other := Parse("#a :T .c +k=v >color:red &mod")
	cmd.Merge(other)
	cmd.Merge(other)
	assert.Equal(t, "a", cmd.ID)
	assert.Equal(t, "T", cmd.Title)
	assert.Equal(t, []string{"c"}, cmd.Classes())
	v, _ := cmd.Attribute("k")
	assert.Equal(t, "v", v)
	assert.Equal(t, 1, cmd.CSS().Size())
	assert.Len(t, cmd.Modifiers, 2, "modifiers accumulate")
}

func TestMergeOverwritesIntegrateDoesNot(t *testing.T) {
	base := Parse("#a +k=1 >color:red $gen")
	other := Parse("#b +k=2 +j=3 >color:blue $other .x")
	//
	merged := base.Clone()
	merged.Merge(other)
	assert.Equal(t, "b", merged.ID)
	k, _ := merged.Attribute("k")
	assert.Equal(t, "2", k)
	c, _ := merged.CSS().Get("color")
	assert.Equal(t, "blue", c)
	assert.Equal(t, "other", merged.Generator.Name)
	//
	integrated := base.Clone()
	integrated.Integrate(other)
	assert.Equal(t, "a", integrated.ID)
	k, _ = integrated.Attribute("k")
	assert.Equal(t, "1", k)
	j, _ := integrated.Attribute("j")
	assert.Equal(t, "3", j)
	c, _ = integrated.CSS().Get("color")
	assert.Equal(t, "red", c)
	assert.Equal(t, "gen", integrated.Generator.Name)
	assert.True(t, integrated.HasClass("x"))
	//
	assert.Equal(t, "a", base.ID, "clones must not alias")
}

func TestIntegrateFirstWriteWins(t *testing.T) {
	container := New()
	container.Integrate(Parse("#first :one"))
	container.Integrate(Parse("#second :two .b"))
	assert.Equal(t, "first", container.ID)
	assert.Equal(t, "one", container.Title)
	assert.True(t, container.HasClass("b"))
}

func TestResolveCycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "notedown.engine")
	defer teardown()
	//
	x := Parse("%y .gx &mx")
	x.RefName = "x"
	y := Parse("%x .gy &my +k=y")
	y.RefName = "y"
	declared := map[string]*Command{"{x": x.Clone(), "{y": y.Clone()}
	lookup := func(key string) (*Command, bool) {
		c, ok := declared[key]
		return c, ok
	}
	x.Resolve(lookup)
	y.Resolve(lookup)
	assert.Equal(t, []string{"gx", "gy"}, x.Classes())
	assert.Equal(t, []string{"gx", "gy"}, y.Classes())
	assert.Len(t, x.Modifiers, 2)
	assert.Len(t, y.Modifiers, 2)
	k, _ := x.Attribute("k")
	assert.Equal(t, "y", k)
}

func TestResolveTransitive(t *testing.T) {
	declared := map[string]*Command{
		"{a": Parse("%b .a"),
		"{b": Parse("%c .b"),
		"{c": Parse("%a .c"),
	}
	lookup := func(key string) (*Command, bool) {
		c, ok := declared[key]
		return c, ok
	}
	cmd := Parse("%a %missing")
	cmd.Resolve(lookup)
	assert.Equal(t, []string{"a", "b", "c"}, cmd.Classes())
}

func TestCommandString(t *testing.T) {
	cmd := Parse(`#id .b.a :"x y" +k=v >color:red $gen:1,2 &m %r`)
	assert.Equal(t, `#id .a.b :"x y" +k=v >color:red $gen:1,2 &m %r`, cmd.String())
	assert.True(t, New().IsEmpty())
	assert.False(t, cmd.IsEmpty())
}

func TestFlags(t *testing.T) {
	cmd := New()
	cmd.SetFlag("notoc", "")
	assert.True(t, cmd.HasFlag("notoc"))
	other := New()
	other.SetFlag("notoc", "x")
	other.SetFlag("more", "1")
	cmd.Integrate(other)
	v, _ := cmd.Flag("notoc")
	assert.Equal(t, "", v)
	assert.True(t, cmd.HasFlag("more"))
}
