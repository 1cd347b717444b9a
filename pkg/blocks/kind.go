package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/surrealdb/surrealblocks/pkg/models"
)

// Content is the typed content record of one block type.
type Content interface {
	// Render produces the view of the content. params may be nil.
	Render(params models.Params) (template.HTML, error)
	// Fields lists the editable fields seeded from the content and params.
	Fields(params models.Params) []Field
}

// Patch is a partial content update keyed by the content's JSON field names.
type Patch map[string]any

// Update is a partial change to a block produced by its edit form.
type Update struct {
	// ID, when set, reassigns the block identifier.
	ID      string        `json:"id,omitempty"`
	Content Patch         `json:"content,omitempty"`
	Params  models.Params `json:"params,omitempty"`
}

// IsEmpty reports whether u changes nothing.
func (u Update) IsEmpty() bool {
	return u.ID == "" && len(u.Content) == 0 && len(u.Params) == 0
}

// kind is the Descriptor of a block type whose content record is C.
type kind[C Content] struct {
	info     Info
	defaults func() C
	params   models.Params
}

func define[C Content](info Info, defaults func() C) *kind[C] {
	return &kind[C]{info: info, defaults: defaults}
}

// withParams sets the default params of the kind.
func (k *kind[C]) withParams(p models.Params) *kind[C] {
	k.params = p
	return k
}

func (k *kind[C]) Info() Info { return k.info }

func (k *kind[C]) DefaultContent() Content { return k.defaults() }

func (k *kind[C]) DefaultParams() models.Params { return k.params.Clone() }

func (k *kind[C]) Decode(raw json.RawMessage) (Content, error) {
	c := k.defaults()
	if isEmptyJSON(raw) {
		return c, nil
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to decode %s content: %w", k.info.Type, err)
	}
	return c, nil
}

func (k *kind[C]) Merge(base Content, patch Patch) (Content, error) {
	typed, ok := base.(C)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not %s content", ErrInvalidValue, base, k.info.Type)
	}

	fields, err := fieldsOf(typed)
	if err != nil {
		return nil, err
	}
	for key, value := range patch {
		if _, known := fields[key]; !known {
			return nil, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, k.info.Type, key)
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %v", ErrInvalidValue, k.info.Type, key, err)
		}
		fields[key] = encoded
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s content: %w", k.info.Type, err)
	}
	var out C
	if err := json.Unmarshal(merged, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidValue, k.info.Type, err)
	}
	return out, nil
}

func (k *kind[C]) Overlay(raw json.RawMessage) (Content, error) {
	c := k.defaults()
	if isEmptyJSON(raw) {
		return c, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode %s content: %w", k.info.Type, err)
	}

	// Keep only the keys whose values fit the record on their own.
	accepted := make(map[string]json.RawMessage, len(fields))
	for key, value := range fields {
		single, err := json.Marshal(map[string]json.RawMessage{key: value})
		if err != nil {
			continue
		}
		var trial C
		if err := json.Unmarshal(single, &trial); err != nil {
			continue
		}
		accepted[key] = value
	}

	encoded, err := json.Marshal(accepted)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s content: %w", k.info.Type, err)
	}
	if err := json.Unmarshal(encoded, &c); err != nil {
		return nil, fmt.Errorf("failed to decode %s content: %w", k.info.Type, err)
	}
	return c, nil
}

// fieldsOf returns the JSON fields of a content record.
func fieldsOf(c Content) (map[string]json.RawMessage, error) {
	encoded, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content: %w", err)
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode content fields: %w", err)
	}
	return fields, nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
