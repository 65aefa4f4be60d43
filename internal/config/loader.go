package config

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/seqforest/gcpipe/internal/ctxlog"
)

// Loader reads a pipeline configuration file and translates it into the
// format-agnostic Model.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load parses the configuration file at path and returns the validated model.
// Any diagnostic, unknown block, or malformed attribute is a fatal
// configuration error: nothing is executed on a bad configuration.
func (l *Loader) Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading pipeline configuration.", "path", path)

	file, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", path, diags)
	}
	return l.translate(ctx, file.Body)
}

// LoadSource parses an in-memory configuration, used by tests and by the
// synthetic-run defaults.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*Model, error) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", filename, diags)
	}
	return l.translate(ctx, file.Body)
}

// translate decodes the raw HCL body into schema structs, evaluates every
// attribute expression to a concrete Go value, and assembles the Model.
func (l *Loader) translate(ctx context.Context, body hcl.Body) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	var raw fileSchema
	if diags := gohcl.DecodeBody(body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding configuration: %w", diags)
	}
	if raw.Pipeline == nil {
		return nil, fmt.Errorf("configuration has no pipeline block")
	}
	p := raw.Pipeline

	model := &Model{}

	naive, err := evalString(p.NaiveID)
	if err != nil {
		return nil, fmt.Errorf("pipeline.naive_id: %w", err)
	}
	model.NaiveID = naive

	if p.Dnaml != nil {
		model.Dnaml = &Dnaml{}
	}
	if p.Dnapars != nil {
		quick, err := evalBool(p.Dnapars.Quick)
		if err != nil {
			return nil, fmt.Errorf("dnapars.quick: %w", err)
		}
		model.Dnapars = &Dnapars{Quick: quick}
	}
	if p.GCtree != nil {
		model.GCtree = &GCtree{}
	}
	if p.SammRank != nil {
		mut, err := evalString(p.SammRank.Mutability)
		if err != nil {
			return nil, fmt.Errorf("samm_rank.mutability: %w", err)
		}
		sub, err := evalString(p.SammRank.Substitution)
		if err != nil {
			return nil, fmt.Errorf("samm_rank.substitution: %w", err)
		}
		model.SammRank = &SammRank{Mutability: mut, Substitution: sub}
	}
	if p.IQTree != nil {
		opts, err := evalStringList(p.IQTree.Options)
		if err != nil {
			return nil, fmt.Errorf("iqtree.options: %w", err)
		}
		model.IQTree = &IQTree{Options: opts}
	}
	if p.FastML != nil {
		model.FastML = &FastML{}
	}
	if p.IgPhyML != nil {
		model.IgPhyML = &IgPhyML{}
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Configuration translated into unified model.",
		"families", model.EnabledFamilies())
	return model, nil
}

// evalString evaluates an attribute expression to a string. A nil or null
// expression yields the empty string.
func evalString(expr hcl.Expression) (string, error) {
	val, present, err := evalTo(expr, cty.String)
	if err != nil || !present {
		return "", err
	}
	return val.AsString(), nil
}

// evalBool evaluates an attribute expression to a bool, defaulting to false.
func evalBool(expr hcl.Expression) (bool, error) {
	val, present, err := evalTo(expr, cty.Bool)
	if err != nil || !present {
		return false, err
	}
	return val.True(), nil
}

// evalStringList evaluates an attribute expression to a list of strings.
func evalStringList(expr hcl.Expression) ([]string, error) {
	val, present, err := evalTo(expr, cty.List(cty.String))
	if err != nil || !present {
		return nil, err
	}
	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() {
			return nil, fmt.Errorf("null element in list")
		}
		out = append(out, elem.AsString())
	}
	return out, nil
}

// evalTo evaluates expr and converts the result to the wanted cty type.
// Absent optional attributes come through as nil expressions or null values;
// both report present=false so callers can apply defaults.
func evalTo(expr hcl.Expression, want cty.Type) (cty.Value, bool, error) {
	if expr == nil {
		return cty.NilVal, false, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, false, diags
	}
	if val.IsNull() {
		return cty.NilVal, false, nil
	}
	converted, err := convert.Convert(val, want)
	if err != nil {
		return cty.NilVal, false, fmt.Errorf("expected %s: %w", want.FriendlyName(), err)
	}
	return converted, true, nil
}
