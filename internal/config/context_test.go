package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestJoin(t *testing.T) {
	assert.Equal(t, "plugins.imageinfo.single_location", Join("plugins", "imageinfo", "single_location"))
	assert.Equal(t, "plugins", Join("", "plugins"))
	assert.Equal(t, "", Join())
}

func TestContextSetGet(t *testing.T) {
	c := NewContext()
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())

	_, ok := c.Get("a.b")
	assert.False(t, ok)

	c.Set("a.b", cty.StringVal("first"))
	val, ok := c.Get("a.b")
	require.True(t, ok)
	assert.Equal(t, "first", val.AsString())

	c.Set("a.b", cty.StringVal("second"))
	val, _ = c.Get("a.b")
	assert.Equal(t, "second", val.AsString())
	assert.Equal(t, 1, c.Len())

	c.Delete("a.b")
	assert.False(t, c.Has("a.b"))
}

func TestContextPathsSorted(t *testing.T) {
	c := NewContext()
	c.Set("z", cty.True)
	c.Set("a.b", cty.True)
	c.Set("a", cty.True)

	assert.Equal(t, []string{"a", "a.b", "z"}, c.Paths())
}

func TestContextBranch(t *testing.T) {
	c := NewContext()
	c.Set("plugins.imageinfo.single_location", cty.StringVal("file:///x"))
	c.Set("plugins.imageinfo.stat_size", cty.NumberIntVal(42))
	c.Set("plugins.other.key", cty.StringVal("nope"))
	c.Set("pluginsx.key", cty.StringVal("nope"))

	branch := c.Branch("plugins.imageinfo")
	require.Len(t, branch, 2)
	assert.Equal(t, "file:///x", branch["single_location"].AsString())

	whole := c.Branch("")
	assert.Len(t, whole, 4)
}
