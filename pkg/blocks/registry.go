package blocks

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/surrealdb/surrealblocks/pkg/models"
)

var (
	// ErrUnknownBlockType is returned when a tag does not resolve in the registry.
	ErrUnknownBlockType = errors.New("unknown block type")
	// ErrUnknownField is returned when an update names a field the block type does not have.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidValue is returned when an update value does not fit the field.
	ErrInvalidValue = errors.New("invalid field value")
)

// Category groups block types in the builder palette.
type Category string

const (
	CategoryHeroes      Category = "heroes"
	CategoryLayout      Category = "layout"
	CategoryText        Category = "text"
	CategoryHeaders     Category = "headers"
	CategoryContent     Category = "content"
	CategoryMultimedia  Category = "multimedia"
	CategoryInteractive Category = "interactive"
	CategoryFiles       Category = "files"
)

// Info is the display metadata of a block type.
type Info struct {
	Type        models.BlockType `json:"type"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Icon        string           `json:"icon"`
	Category    Category         `json:"category"`
}

// Descriptor is the registered behavior of one block type. A descriptor is
// immutable after registration.
type Descriptor interface {
	Info() Info
	// DefaultContent returns a fresh copy of the type's default content.
	DefaultContent() Content
	// DefaultParams returns a fresh copy of the type's default params, never nil.
	DefaultParams() models.Params
	// Decode reads stored content into the type's content record.
	Decode(raw json.RawMessage) (Content, error)
	// Merge overwrites the patched keys of base. Keys that are not fields of
	// the content record are rejected.
	Merge(base Content, patch Patch) (Content, error)
	// Overlay decodes loosely-typed content over the defaults, dropping unknown keys.
	Overlay(raw json.RawMessage) (Content, error)
}

// Module registers a group of block types.
type Module interface {
	Register(r *Registry)
}

// Registry maps block type tags to descriptors.
//
// A Registry is built once at startup and shared by reference. It is not safe
// for registration concurrent with lookups.
type Registry struct {
	descriptors map[models.BlockType]Descriptor
	order       []models.BlockType
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[models.BlockType]Descriptor),
	}
}

// NewCatalogRegistry returns a Registry holding every built-in block type.
func NewCatalogRegistry() *Registry {
	r := NewRegistry()
	for _, m := range catalogModules {
		m.Register(r)
	}
	return r
}

// Register inserts the descriptor for its type tag, replacing any previous one.
func (r *Registry) Register(d Descriptor) {
	t := d.Info().Type
	if _, exists := r.descriptors[t]; !exists {
		r.order = append(r.order, t)
	}
	r.descriptors[t] = d
}

// Lookup returns the descriptor registered for t.
func (r *Registry) Lookup(t models.BlockType) (Descriptor, bool) {
	d, ok := r.descriptors[t]
	return d, ok
}

// List returns all descriptors in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.descriptors[t])
	}
	return out
}

// Types returns the registered tags in registration order.
func (r *Registry) Types() []models.BlockType {
	return append([]models.BlockType(nil), r.order...)
}

// CategoryGroup is one section of the builder palette.
type CategoryGroup struct {
	Category Category `json:"category"`
	Types    []Entry  `json:"types"`
}

// Entry describes a block type together with its defaults.
type Entry struct {
	Info
	DefaultContent Content       `json:"defaultContent"`
	DefaultParams  models.Params `json:"defaultParams"`
}

// Describe returns the catalog entry of d.
func Describe(d Descriptor) Entry {
	return Entry{
		Info:           d.Info(),
		DefaultContent: d.DefaultContent(),
		DefaultParams:  d.DefaultParams(),
	}
}

// ByCategory groups the registered types by category, sorted by category name.
// Within a group, types keep registration order.
func (r *Registry) ByCategory() []CategoryGroup {
	index := make(map[Category]int)
	var groups []CategoryGroup
	for _, d := range r.List() {
		c := d.Info().Category
		i, ok := index[c]
		if !ok {
			i = len(groups)
			index[c] = i
			groups = append(groups, CategoryGroup{Category: c})
		}
		groups[i].Types = append(groups[i].Types, Describe(d))
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Category < groups[j].Category
	})
	return groups
}

// NewInstance builds a block of type t holding the type's defaults. The
// returned block has an empty ID; the caller assigns a unique one before
// inserting it.
func (r *Registry) NewInstance(t models.BlockType) (models.Block, bool) {
	d, ok := r.Lookup(t)
	if !ok {
		return models.Block{}, false
	}
	content, err := json.Marshal(d.DefaultContent())
	if err != nil {
		return models.Block{}, false
	}
	return models.Block{
		Type:    t,
		Content: content,
		Params:  d.DefaultParams(),
	}, true
}

// Decode returns the typed content of b.
func (r *Registry) Decode(b models.Block) (Content, error) {
	d, ok := r.Lookup(b.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, b.Type)
	}
	return d.Decode(b.Content)
}

// Apply merges the content and params of u into a copy of b. The ID of u is
// not applied; identifier changes are the caller's concern.
func (r *Registry) Apply(b models.Block, u Update) (models.Block, error) {
	out := b.Clone()
	if len(u.Content) > 0 {
		d, ok := r.Lookup(b.Type)
		if !ok {
			return b, fmt.Errorf("%w: %q", ErrUnknownBlockType, b.Type)
		}
		base, err := d.Decode(b.Content)
		if err != nil {
			return b, err
		}
		merged, err := d.Merge(base, u.Content)
		if err != nil {
			return b, err
		}
		raw, err := json.Marshal(merged)
		if err != nil {
			return b, fmt.Errorf("failed to encode %s content: %w", b.Type, err)
		}
		out.Content = raw
	}
	if len(u.Params) > 0 {
		out.Params = out.Params.Merge(u.Params)
	}
	return out, nil
}

// Overlay builds a block of type t whose content is the type's defaults
// overlaid with raw. The returned block has an empty ID.
func (r *Registry) Overlay(t models.BlockType, raw json.RawMessage) (models.Block, error) {
	d, ok := r.Lookup(t)
	if !ok {
		return models.Block{}, fmt.Errorf("%w: %q", ErrUnknownBlockType, t)
	}
	content, err := d.Overlay(raw)
	if err != nil {
		return models.Block{}, err
	}
	encoded, err := json.Marshal(content)
	if err != nil {
		return models.Block{}, fmt.Errorf("failed to encode %s content: %w", t, err)
	}
	return models.Block{
		Type:    t,
		Content: encoded,
		Params:  d.DefaultParams(),
	}, nil
}
