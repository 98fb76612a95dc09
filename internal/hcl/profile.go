package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/memscope/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Profile is the decoded form of a run profile file. Overrides are keyed by
// their path relative to the target plugin's configuration branch and are
// applied to the store before any automagic runs.
type Profile struct {
	Location  string
	Plugin    string
	Overrides map[string]cty.Value
}

// profileSchema mirrors the on-disk shape for gohcl decoding.
type profileSchema struct {
	Location string        `hcl:"location,optional"`
	Plugin   string        `hcl:"plugin,optional"`
	Config   *configSchema `hcl:"config,block"`
}

type configSchema struct {
	Body hcl.Body `hcl:",remain"`
}

// LoadProfile parses and decodes a single run profile. Override values must
// be literal expressions; there is no evaluation context in a profile.
func LoadProfile(ctx context.Context, path string) (*Profile, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding run profile.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse run profile %s: %s", path, diags.Error())
	}

	var raw profileSchema
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode run profile %s: %s", path, diags.Error())
	}

	profile := &Profile{
		Location:  raw.Location,
		Plugin:    raw.Plugin,
		Overrides: make(map[string]cty.Value),
	}
	if raw.Config != nil {
		attrs, diags := raw.Config.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid config block in %s: %s", path, diags.Error())
		}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to evaluate config override %q in %s: %s", name, path, diags.Error())
			}
			profile.Overrides[name] = val
		}
	}

	logger.Debug("Run profile decoded.", "path", path, "plugin", profile.Plugin, "overrides", len(profile.Overrides))
	return profile, nil
}
