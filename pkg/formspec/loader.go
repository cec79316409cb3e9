package formspec

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formpreview/pkg/model"
)

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// LoadFS walks the provided filesystem and parses JSON/YAML form files.
// When fsys is nil or no form files are present, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{
		forms:   make(map[string]model.FormModel),
		sources: make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isFormFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formspec: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawID, raw := range doc.Forms {
			id := strings.TrimSpace(rawID)
			if id == "" {
				return fmt.Errorf("formspec: file %s defines an empty form id", path)
			}
			if _, exists := store.forms[id]; exists {
				return fmt.Errorf("formspec: duplicate form %q (file %s)", id, path)
			}
			form, err := normaliseForm(raw, id, path)
			if err != nil {
				return err
			}
			store.forms[id] = form
			store.sources[id] = path
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Load returns the embedded forms overlaid with the forms found in dir. An
// empty dir yields the embedded set alone.
func Load(dir string) (*Store, error) {
	base, err := LoadFS(EmbeddedFS())
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dir) == "" {
		return base, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("formspec: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("formspec: %s is not a directory", dir)
	}
	custom, err := LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	return base.Overlay(custom), nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("formspec: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("formspec: parse %s: invalid JSON or YAML", source)
}

func normaliseForm(raw formFile, id, source string) (model.FormModel, error) {
	if len(raw.Fields) == 0 {
		return model.FormModel{}, fmt.Errorf("formspec: form %q (file %s) has no fields", id, source)
	}

	form := model.FormModel{
		ID:       id,
		Endpoint: strings.TrimSpace(raw.Endpoint),
		Method:   strings.ToUpper(strings.TrimSpace(raw.Method)),
		Summary:  raw.Summary,
		Fields:   make([]model.Field, 0, len(raw.Fields)),
		Metadata: cloneStrings(raw.Metadata),
	}
	if form.Method == "" {
		form.Method = "POST"
	}

	seen := make(map[string]struct{}, len(raw.Fields))
	for idx, rf := range raw.Fields {
		field, err := normaliseField(rf)
		if err != nil {
			return model.FormModel{}, fmt.Errorf("formspec: form %q (file %s) field %d: %w", id, source, idx, err)
		}
		if _, dup := seen[field.Name]; dup {
			return model.FormModel{}, fmt.Errorf("formspec: form %q (file %s) defines duplicate field %q", id, source, field.Name)
		}
		seen[field.Name] = struct{}{}
		form.Fields = append(form.Fields, field)
	}
	return form, nil
}

func normaliseField(raw fieldFile) (model.Field, error) {
	name := strings.TrimSpace(raw.Name)
	if !fieldNamePattern.MatchString(name) {
		return model.Field{}, fmt.Errorf("invalid name %q", raw.Name)
	}

	kind := model.FieldKind(strings.ToLower(strings.TrimSpace(raw.Kind)))
	switch kind {
	case "":
		kind = model.FieldKindText
	case model.FieldKindText, model.FieldKindUsername, model.FieldKindPassword,
		model.FieldKindRange, model.FieldKindMarkdown:
	default:
		return model.Field{}, fmt.Errorf("field %q: unknown kind %q", name, raw.Kind)
	}

	field := model.Field{
		Name:        name,
		Kind:        kind,
		Label:       raw.Label,
		Description: raw.Description,
		Placeholder: raw.Placeholder,
		Required:    raw.Required,
		Default:     raw.Default,
		Metadata:    cloneStrings(raw.Metadata),
	}

	if kind == model.FieldKindRange {
		if raw.Min == nil || raw.Max == nil {
			return model.Field{}, fmt.Errorf("field %q: range fields need min and max", name)
		}
		if *raw.Min > *raw.Max {
			return model.Field{}, fmt.Errorf("field %q: min %v exceeds max %v", name, *raw.Min, *raw.Max)
		}
	}
	if raw.Min != nil {
		field.Validations = append(field.Validations, model.Rule(model.ValidationRuleMin, *raw.Min))
	}
	if raw.Max != nil {
		field.Validations = append(field.Validations, model.Rule(model.ValidationRuleMax, *raw.Max))
	}
	if raw.MinLength != nil {
		field.Validations = append(field.Validations, model.Rule(model.ValidationRuleMinLength, *raw.MinLength))
	}
	if raw.MaxLength != nil {
		field.Validations = append(field.Validations, model.Rule(model.ValidationRuleMaxLength, *raw.MaxLength))
	}
	if pattern := strings.TrimSpace(raw.Pattern); pattern != "" {
		if _, err := regexp.Compile(pattern); err != nil {
			return model.Field{}, fmt.Errorf("field %q: pattern: %w", name, err)
		}
		field.Validations = append(field.Validations, model.Rule(model.ValidationRulePattern, pattern))
	}
	return field, nil
}

func isFormFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func cloneStrings(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
