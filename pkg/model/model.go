package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dchassin/plot-glm/pkg/errors"
)

// Document is a parsed GridLAB-D model in its JSON export form.
// It holds the model's object records indexed by name while preserving the
// declaration order of the export, which drives deterministic graph builds.
//
// A Document is read-only after Decode returns.
type Document struct {
	objects []*Object
	byName  map[string]*Object
}

// Object is a named record in the model: either a network node (bus) or a
// link (line/transformer). Properties are stored as strings, matching the
// GridLAB-D export where every property value is serialized text.
type Object struct {
	Name  string
	props map[string]string
}

// Well-known property names.
const (
	PropID       = "id"
	PropPhases   = "phases"
	PropFrom     = "from"
	PropTo       = "to"
	PropPowerOut = "power_out"
)

// Decode reads a GridLAB-D JSON export from r.
//
// The export has a top-level "objects" key mapping object name to a record
// of properties. Object order is preserved as declared in the document; a
// plain map decode would lose it, so the objects section is walked token by
// token.
//
// Property values that arrive as JSON numbers (notably "id") are normalized
// to their literal text so that integer identifiers round-trip without a
// float formatting detour.
func Decode(r io.Reader) (*Document, error) {
	var top struct {
		Objects json.RawMessage `json:"objects"`
	}
	if err := json.NewDecoder(r).Decode(&top); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "decode model")
	}
	if top.Objects == nil {
		return nil, errors.New(errors.ErrCodeInvalidModel, "model has no objects section")
	}

	doc := &Document{byName: make(map[string]*Object)}

	dec := json.NewDecoder(bytes.NewReader(top.Objects))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "decode objects")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New(errors.ErrCodeInvalidModel, "objects section must be a mapping")
	}

	for dec.More() {
		nameTok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "decode object name")
		}
		name, ok := nameTok.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidModel, "object name is not a string")
		}

		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "decode object %q", name)
		}

		obj := &Object{Name: name, props: make(map[string]string, len(raw))}
		for k, v := range raw {
			obj.props[k] = propertyString(v)
		}
		if _, exists := doc.byName[name]; exists {
			return nil, errors.New(errors.ErrCodeInvalidModel, "duplicate object name %q", name)
		}
		doc.objects = append(doc.objects, obj)
		doc.byName[name] = obj
	}

	return doc, nil
}

// propertyString normalizes a decoded JSON value to its property text.
func propertyString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Objects returns the model's object records in declaration order.
// The returned slice is shared; callers must not modify it.
func (d *Document) Objects() []*Object { return d.objects }

// Object looks up a record by name.
func (d *Document) Object(name string) (*Object, bool) {
	o, ok := d.byName[name]
	return o, ok
}

// Len returns the number of object records in the model.
func (d *Document) Len() int { return len(d.objects) }

// Property returns the raw text of the named property.
func (o *Object) Property(key string) (string, bool) {
	v, ok := o.props[key]
	return v, ok
}

// require returns the named property or a missing-field error naming the object.
func (o *Object) require(key string) (string, error) {
	v, ok := o.props[key]
	if !ok {
		return "", errors.New(errors.ErrCodeMissingField, "object %q has no %s", o.Name, key)
	}
	return v, nil
}

// ID returns the record's stable identifier, used as the graph node key.
func (o *Object) ID() (string, error) { return o.require(PropID) }

// Phases returns the record's phase string (characters from A,B,C,N,S,D).
func (o *Object) Phases() (string, error) { return o.require(PropPhases) }

// From returns the name of the link's source object.
func (o *Object) From() (string, error) { return o.require(PropFrom) }

// To returns the name of the link's destination object.
func (o *Object) To() (string, error) { return o.require(PropTo) }

// PowerOut returns the link's raw power_out text, e.g. "1234.5+67.8j VA".
func (o *Object) PowerOut() (string, error) { return o.require(PropPowerOut) }

// IsLink reports whether the record is a link, i.e. carries both endpoints.
// Non-link records contribute nothing directly to the graph; they become
// nodes only when referenced by a link's endpoint.
func (o *Object) IsLink() bool {
	_, hasFrom := o.props[PropFrom]
	_, hasTo := o.props[PropTo]
	return hasFrom && hasTo
}
