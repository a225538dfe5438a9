package forms

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is the ordered set of intake form definitions.
type Catalog struct {
	forms []*Definition
	byID  map[string]*Definition
}

type catalogFile struct {
	Forms []*Definition `yaml:"forms"`
}

// LoadCatalog parses the embedded catalog of subcategory forms.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

// ParseCatalog decodes a YAML catalog and checks that every definition is usable.
func ParseCatalog(raw []byte) (*Catalog, error) {
	const op = "ParseCatalog"

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		return nil, newFormError(op, "", "", fmt.Errorf("%w: %v", ErrInvalidCatalog, err))
	}
	if len(file.Forms) == 0 {
		return nil, newFormError(op, "", "", fmt.Errorf("%w: no forms declared", ErrInvalidCatalog))
	}

	c := &Catalog{byID: make(map[string]*Definition, len(file.Forms))}
	for i, def := range file.Forms {
		if def == nil {
			return nil, newFormError(op, "", "", fmt.Errorf("%w: form %d is empty", ErrInvalidCatalog, i))
		}
		if err := checkDefinition(def); err != nil {
			return nil, newFormError(op, def.ID, "", err)
		}
		if _, dup := c.byID[def.ID]; dup {
			return nil, newFormError(op, def.ID, "", fmt.Errorf("%w: duplicate form id", ErrInvalidCatalog))
		}
		def.buildIndex()
		for i := range def.Fields {
			def.Fields[i].Required = slices.Contains(def.Required, def.Fields[i].Key)
		}
		c.byID[def.ID] = def
		c.forms = append(c.forms, def)
	}
	return c, nil
}

func checkDefinition(def *Definition) error {
	if def.ID == "" || def.Name == "" {
		return fmt.Errorf("%w: form needs id and name", ErrInvalidCatalog)
	}
	if len(def.Fields) == 0 {
		return fmt.Errorf("%w: form has no fields", ErrInvalidCatalog)
	}

	keys := make(map[string]bool, len(def.Fields))
	for _, f := range def.Fields {
		switch {
		case f.Key == "":
			return fmt.Errorf("%w: field without key", ErrInvalidCatalog)
		case keys[f.Key]:
			return fmt.Errorf("%w: duplicate field %s", ErrInvalidCatalog, f.Key)
		case f.Type.ValueKind() == KindUnset:
			return fmt.Errorf("%w: field %s has unknown type %q", ErrInvalidCatalog, f.Key, f.Type)
		case f.Type.HasOptions() && len(f.Options) == 0:
			return fmt.Errorf("%w: %s field %s has no options", ErrInvalidCatalog, f.Type, f.Key)
		}
		keys[f.Key] = true
	}
	for _, key := range def.Required {
		if !keys[key] {
			return fmt.Errorf("%w: required key %s is not a field", ErrInvalidCatalog, key)
		}
	}
	return nil
}

// List returns the definitions in catalog order.
func (c *Catalog) List() []*Definition {
	return slices.Clone(c.forms)
}

// Get returns the definition with the given ID.
func (c *Catalog) Get(id string) (*Definition, error) {
	def, ok := c.byID[id]
	if !ok {
		return nil, newFormError("Get", id, "", ErrUnknownForm)
	}
	return def, nil
}
