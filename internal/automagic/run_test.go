package automagic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/memscope/internal/config"
	"github.com/vk/memscope/internal/testutil"
	"github.com/zclconf/go-cty/cty"
)

func TestRun(t *testing.T) {
	t.Run("errors accumulate without stopping later resolvers", func(t *testing.T) {
		cfg := config.NewContext()
		failing := &fake{name: "broken", priority: 0, applicable: true, resolve: func(*config.Context) []error {
			return []error{
				&ResolutionError{Path: "plugins.pslist.kernel", Err: errors.New("no symbols")},
			}
		}}
		succeeding := &fake{name: "working", priority: 1, applicable: true, resolve: func(c *config.Context) []error {
			c.Set("plugins.pslist.single_location", cty.StringVal("file:///x"))
			return nil
		}}

		errs := Run(testutil.Context(t), []Automagic{failing, succeeding}, cfg, requirementTree(), "plugins")

		require.Len(t, errs, 1)
		assert.Equal(t, "broken", errs[0].Automagic)
		assert.Equal(t, "plugins.pslist.kernel", errs[0].Path)
		assert.True(t, cfg.Has("plugins.pslist.single_location"),
			"later resolver must still run against the same store")
	})

	t.Run("dependent resolvers see earlier writes", func(t *testing.T) {
		cfg := config.NewContext()
		cfg.Set(SingleLocationKey, cty.StringVal("file:///dump.raw"))

		first := &fake{name: "sets_x", priority: 0, applicable: true, resolve: func(c *config.Context) []error {
			seed, _ := c.Get(SingleLocationKey)
			c.Set("plugins.pslist.x", seed)
			return nil
		}}
		second := &fake{name: "needs_x", priority: 10, applicable: true, resolve: func(c *config.Context) []error {
			x, ok := c.Get("plugins.pslist.x")
			if !ok {
				return []error{&ResolutionError{Path: "plugins.pslist.y", Err: errors.New("x not resolved")}}
			}
			c.Set("plugins.pslist.y", x)
			return nil
		}}

		selected := Choose([]Automagic{second, first}, requirementTree())
		require.Equal(t, "sets_x", selected[0].Name(), "priority must order the dependency first")

		errs := Run(testutil.Context(t), selected, cfg, requirementTree(), "plugins")
		assert.Empty(t, errs)
		assert.True(t, cfg.Has("plugins.pslist.x"))
		assert.True(t, cfg.Has("plugins.pslist.y"))
	})

	t.Run("plain errors are wrapped and attributed", func(t *testing.T) {
		cause := errors.New("boom")
		bare := &fake{name: "bare", applicable: true, resolve: func(*config.Context) []error {
			return []error{cause}
		}}

		errs := Run(testutil.Context(t), []Automagic{bare}, config.NewContext(), requirementTree(), "plugins")
		require.Len(t, errs, 1)
		assert.Equal(t, "bare", errs[0].Automagic)
		assert.ErrorIs(t, errs[0], cause)
	})

	t.Run("empty selection returns no errors", func(t *testing.T) {
		errs := Run(testutil.Context(t), nil, config.NewContext(), requirementTree(), "plugins")
		assert.Empty(t, errs)
	})

	t.Run("repeated runs over equal seeds are identical", func(t *testing.T) {
		build := func() *config.Context {
			c := config.NewContext()
			c.Set(SingleLocationKey, cty.StringVal("file:///dump.raw"))
			return c
		}
		resolver := &fake{name: "copy", applicable: true, resolve: func(c *config.Context) []error {
			seed, _ := c.Get(SingleLocationKey)
			c.Set("plugins.pslist.single_location", seed)
			return []error{&ResolutionError{Path: "plugins.pslist.kernel", Err: errors.New("always unmet")}}
		}}

		one, two := build(), build()
		errsOne := Run(testutil.Context(t), []Automagic{resolver}, one, requirementTree(), "plugins")
		errsTwo := Run(testutil.Context(t), []Automagic{resolver}, two, requirementTree(), "plugins")

		assert.Equal(t, one.Paths(), two.Paths())
		require.Equal(t, len(errsOne), len(errsTwo))
		for i := range errsOne {
			assert.Equal(t, errsOne[i].Path, errsTwo[i].Path)
		}
	})
}

func TestResolutionErrorFormatting(t *testing.T) {
	withPath := &ResolutionError{Automagic: "image_stat", Path: "plugins.pslist.stat_size", Err: errors.New("no file")}
	assert.Contains(t, withPath.Error(), "image_stat")
	assert.Contains(t, withPath.Error(), "plugins.pslist.stat_size")

	withoutPath := &ResolutionError{Automagic: "image_stat", Err: errors.New("no file")}
	assert.Contains(t, withoutPath.Error(), "no file")
}
