package blocks

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/surrealdb/surrealblocks/pkg/models"
)

// FieldKind selects the input control of a form field.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldURL      FieldKind = "url"
	FieldSelect   FieldKind = "select"
	FieldNumber   FieldKind = "number"
	FieldCheckbox FieldKind = "checkbox"
	FieldList     FieldKind = "list"
	FieldJSON     FieldKind = "json"
)

// idField is the form key that reassigns the block identifier.
const idField = "id"

// Field is one editable input of a block form.
type Field struct {
	Key     string    `json:"key"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Value   any       `json:"value"`
	Options []string  `json:"options,omitempty"`
	// Param marks fields stored in the block params rather than its content.
	Param bool `json:"param,omitempty"`
}

// Form is the edit view of one block.
type Form struct {
	BlockID string           `json:"blockId"`
	Type    models.BlockType `json:"type"`
	Name    string           `json:"name"`
	Fields  []Field          `json:"fields"`
	Error   string           `json:"error,omitempty"`

	onChange func(Update) error
}

// Edit builds the form of b. Every valid change is reported to onChange as a
// partial update, and an error from onChange is returned by Change. The form
// never mutates b. An unknown type yields a form that only carries an error.
func (r *Registry) Edit(b models.Block, onChange func(Update) error) *Form {
	form := &Form{BlockID: b.ID, Type: b.Type, onChange: onChange}

	d, ok := r.Lookup(b.Type)
	if !ok {
		form.Error = fmt.Sprintf("editor not available for block type %q", b.Type)
		return form
	}
	form.Name = d.Info().Name

	content, err := d.Decode(b.Content)
	if err != nil {
		form.Error = err.Error()
		return form
	}

	params := d.DefaultParams().Merge(b.Params)
	form.Fields = append([]Field{{Key: idField, Label: "ID", Kind: FieldText, Value: b.ID}}, content.Fields(params)...)
	return form
}

// Field returns the field with the given key.
func (f *Form) Field(key string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

// Change validates value for the field key and reports it as a partial update.
func (f *Form) Change(key string, value any) error {
	if f.Error != "" {
		return fmt.Errorf("%w: %s", ErrUnknownBlockType, f.Error)
	}
	field, ok := f.Field(key)
	if !ok {
		return fmt.Errorf("%w: %s has no field %q", ErrUnknownField, f.Type, key)
	}
	if err := field.accepts(value); err != nil {
		return err
	}

	var u Update
	switch {
	case key == idField:
		u.ID = value.(string)
	case field.Param:
		u.Params = models.Params{key: value}
	default:
		u.Content = Patch{key: value}
	}
	if f.onChange == nil {
		return nil
	}
	return f.onChange(u)
}

func (f Field) accepts(value any) error {
	invalid := func() error {
		return fmt.Errorf("%w: %s field %q cannot hold %T", ErrInvalidValue, f.Kind, f.Key, value)
	}

	switch f.Kind {
	case FieldText, FieldTextarea, FieldURL:
		s, ok := value.(string)
		if !ok || (f.Key == idField && s == "") {
			return invalid()
		}
	case FieldSelect:
		s, ok := value.(string)
		if !ok {
			return invalid()
		}
		if len(f.Options) > 0 && !slices.Contains(f.Options, s) {
			return fmt.Errorf("%w: %q is not an option of %q", ErrInvalidValue, s, f.Key)
		}
	case FieldNumber:
		switch value.(type) {
		case int, int64, float64, json.Number:
		default:
			return invalid()
		}
	case FieldCheckbox:
		if _, ok := value.(bool); !ok {
			return invalid()
		}
	case FieldList:
		switch items := value.(type) {
		case []string:
		case []any:
			for _, item := range items {
				if _, ok := item.(string); !ok {
					return invalid()
				}
			}
		default:
			return invalid()
		}
	case FieldJSON:
		// Structure is checked by the content merge.
	}
	return nil
}

func textField(key, label, value string) Field {
	return Field{Key: key, Label: label, Kind: FieldText, Value: value}
}

func textareaField(key, label, value string) Field {
	return Field{Key: key, Label: label, Kind: FieldTextarea, Value: value}
}

func urlField(key, label, value string) Field {
	return Field{Key: key, Label: label, Kind: FieldURL, Value: value}
}

func selectField(key, label, value string, options ...string) Field {
	return Field{Key: key, Label: label, Kind: FieldSelect, Value: value, Options: options}
}

func numberField(key, label string, value int) Field {
	return Field{Key: key, Label: label, Kind: FieldNumber, Value: value}
}

func checkboxField(key, label string, value bool) Field {
	return Field{Key: key, Label: label, Kind: FieldCheckbox, Value: value}
}

func listField(key, label string, value []string) Field {
	return Field{Key: key, Label: label, Kind: FieldList, Value: value}
}

func jsonField(key, label string, value any) Field {
	return Field{Key: key, Label: label, Kind: FieldJSON, Value: value}
}

func paramSelect(params models.Params, key, label, fallback string, options ...string) Field {
	f := selectField(key, label, paramString(params, key, fallback), options...)
	f.Param = true
	return f
}

// paramString reads a string param, falling back when absent or not a string.
func paramString(params models.Params, key, fallback string) string {
	if s, ok := params[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
