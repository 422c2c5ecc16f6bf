package store

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/variant-cli/internal/model"
)

// templateKey is the KV key holding parameter templates, a JSON array
// newest-first.
const templateKey = "variant_param_templates"

// maxTemplates bounds the template list.
const maxTemplates = 10

// TemplateStore is a durable, capped list of named parameter presets.
// Names are not unique; saving a duplicate name keeps both.
type TemplateStore struct {
	kv KV
}

// NewTemplates creates a template store over the given KV.
func NewTemplates(kv KV) *TemplateStore {
	return &TemplateStore{kv: kv}
}

// Save prepends a named preset and truncates to capacity. A blank name is a
// no-op: nothing is stored and the list is unchanged.
func (t *TemplateStore) Save(ctx context.Context, name string, params model.AnalysisParameters) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}

	templates := t.load(ctx)
	templates = append([]model.ParameterTemplate{{
		Name:         name,
		MinFrequency: params.MinFrequency,
		MinCoverage:  params.MinCoverage,
	}}, templates...)
	if len(templates) > maxTemplates {
		templates = templates[:maxTemplates]
	}

	raw, err := json.Marshal(templates)
	if err != nil {
		return eris.Wrap(err, "templates: marshal")
	}
	return eris.Wrap(t.kv.Set(ctx, templateKey, raw), "templates: persist")
}

// List returns all stored templates, newest-first.
func (t *TemplateStore) List(ctx context.Context) []model.ParameterTemplate {
	return t.load(ctx)
}

// Find returns the newest template with the given name, or nil.
func (t *TemplateStore) Find(ctx context.Context, name string) *model.ParameterTemplate {
	for _, tpl := range t.load(ctx) {
		if tpl.Name == name {
			return &tpl
		}
	}
	return nil
}

// Apply copies the template's two threshold fields into params, leaving
// everything else untouched.
func Apply(tpl model.ParameterTemplate, params *model.AnalysisParameters) {
	params.MinFrequency = tpl.MinFrequency
	params.MinCoverage = tpl.MinCoverage
}

func (t *TemplateStore) load(ctx context.Context) []model.ParameterTemplate {
	raw, ok, err := t.kv.Get(ctx, templateKey)
	if err != nil {
		zap.L().Warn("templates: read failed, treating as empty", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var templates []model.ParameterTemplate
	if err := json.Unmarshal(raw, &templates); err != nil {
		zap.L().Warn("templates: stored value malformed, treating as empty", zap.Error(err))
		return nil
	}
	return templates
}
