package plugin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/memscope/internal/config"
	"github.com/vk/memscope/internal/testutil"
	"github.com/vk/memscope/internal/treegrid"
	"github.com/zclconf/go-cty/cty"
)

// stub is a minimal runnable plugin for stage tests.
type stub struct {
	run func(ctx context.Context) (*treegrid.TreeGrid, error)
}

func (s *stub) Run(ctx context.Context) (*treegrid.TreeGrid, error) {
	if s.run == nil {
		grid, err := treegrid.New(treegrid.Column{Name: "ID", Type: cty.String})
		if err != nil {
			return nil, err
		}
		return grid, nil
	}
	return s.run(ctx)
}

func definition(factory Factory) *Definition {
	if factory == nil {
		factory = func(cfg *config.Context, configPath string) (Plugin, error) {
			return &stub{}, nil
		}
	}
	return &Definition{
		Name: "pslist",
		Requirements: []*config.Requirement{
			{Name: "single_location", Type: cty.String},
			{Name: "verbose", Type: cty.Bool, Optional: true},
		},
		New: factory,
	}
}

func TestConstruct(t *testing.T) {
	t.Run("missing required path aborts with its name", func(t *testing.T) {
		factoryCalled := false
		def := definition(func(cfg *config.Context, configPath string) (Plugin, error) {
			factoryCalled = true
			return &stub{}, nil
		})

		instance, err := Construct(testutil.Context(t), config.NewContext(), def, "plugins", nil)

		require.Error(t, err)
		assert.Nil(t, instance)
		var cerr *ConstructionError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "plugins.pslist.single_location", cerr.Path)
		assert.False(t, factoryCalled, "execution path must never start for a rejected plugin")
	})

	t.Run("satisfied requirements produce an instance", func(t *testing.T) {
		cfg := config.NewContext()
		cfg.Set("plugins.pslist.single_location", cty.StringVal("file:///x"))

		var gotPath string
		def := definition(func(cfg *config.Context, configPath string) (Plugin, error) {
			gotPath = configPath
			return &stub{}, nil
		})

		instance, err := Construct(testutil.Context(t), cfg, def, "plugins", nil)
		require.NoError(t, err)
		require.NotNil(t, instance)
		assert.Equal(t, "plugins.pslist", gotPath)
	})

	t.Run("defaults are applied before validation", func(t *testing.T) {
		location := cty.StringVal("file:///default.raw")
		def := &Definition{
			Name: "pslist",
			Requirements: []*config.Requirement{
				{Name: "single_location", Type: cty.String, Default: &location},
			},
			New: func(cfg *config.Context, configPath string) (Plugin, error) {
				return &stub{}, nil
			},
		}
		cfg := config.NewContext()

		_, err := Construct(testutil.Context(t), cfg, def, "plugins", nil)
		require.NoError(t, err)
		val, ok := cfg.Get("plugins.pslist.single_location")
		require.True(t, ok)
		assert.Equal(t, "file:///default.raw", val.AsString())
	})

	t.Run("mis-typed required value aborts", func(t *testing.T) {
		cfg := config.NewContext()
		cfg.Set("plugins.pslist.single_location", cty.ListValEmpty(cty.Bool))

		_, err := Construct(testutil.Context(t), cfg, definition(nil), "plugins", nil)
		var cerr *ConstructionError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "plugins.pslist.single_location", cerr.Path)
		assert.Contains(t, cerr.Error(), "missing or has an incompatible type")
	})

	t.Run("factory failure is a construction error without a path", func(t *testing.T) {
		cfg := config.NewContext()
		cfg.Set("plugins.pslist.single_location", cty.StringVal("file:///x"))
		cause := errors.New("cannot map image")
		def := definition(func(cfg *config.Context, configPath string) (Plugin, error) {
			return nil, cause
		})

		_, err := Construct(testutil.Context(t), cfg, def, "plugins", nil)
		var cerr *ConstructionError
		require.ErrorAs(t, err, &cerr)
		assert.Empty(t, cerr.Path)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("progress sink is invoked when provided", func(t *testing.T) {
		cfg := config.NewContext()
		cfg.Set("plugins.pslist.single_location", cty.StringVal("file:///x"))

		var messages []string
		progress := func(p float64, msg string) {
			messages = append(messages, msg)
		}
		_, err := Construct(testutil.Context(t), cfg, definition(nil), "plugins", progress)
		require.NoError(t, err)
		assert.NotEmpty(t, messages)
		assert.Equal(t, "construction complete", messages[len(messages)-1])
	})
}
