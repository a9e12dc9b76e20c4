package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The JSON shape mirrors the in-memory tree: primitives encode as their
// type name string, nested types as an object tagged by "type". Field
// order inside a record is significant and preserved. Encoding is
// deterministic so version checksums are stable.

type jsonSchema struct {
	VersionID   int64       `json:"version_id"`
	MaxColumnID int         `json:"max_column_id"`
	Type        string      `json:"type"`
	Fields      []jsonField `json:"fields"`
}

type jsonField struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Optional bool            `json:"optional"`
	Type     json.RawMessage `json:"type"`
	Doc      string          `json:"doc,omitempty"`
	Default  any             `json:"default,omitempty"`
}

type jsonNested struct {
	Type    string      `json:"type"`
	Fields  []jsonField `json:"fields,omitempty"`  // record
	Element *jsonField  `json:"element,omitempty"` // array
	Key     *jsonField  `json:"key,omitempty"`     // map
	Value   *jsonField  `json:"value,omitempty"`   // map
}

// ToJSON serializes one schema version.
func ToJSON(s *Schema) ([]byte, error) {
	fields, err := encodeFields(s.Fields())
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(jsonSchema{
		VersionID:   s.VersionID(),
		MaxColumnID: s.MaxColumnID(),
		Type:        string(KindRecord),
		Fields:      fields,
	})
	if err != nil {
		return nil, Wrap(ErrInvalidArgument, "encode schema", err)
	}
	return bytes.TrimSpace(b), nil
}

// FromJSON restores a schema version serialized by ToJSON. Numeric
// default values come back as int64 when integral and float64 otherwise.
func FromJSON(b []byte) (*Schema, error) {
	var js jsonSchema
	if err := unmarshalUseNumber(b, &js); err != nil {
		return nil, Wrap(ErrInvalidArgument, "parse schema json", err)
	}
	if js.Type != string(KindRecord) {
		return nil, InvalidArgumentError(fmt.Sprintf("schema root must be a record, got %q", js.Type))
	}
	fields, err := decodeFields(js.Fields)
	if err != nil {
		return nil, err
	}
	return NewSchemaWithMaxColumnID(js.VersionID, js.MaxColumnID, fields), nil
}

func encodeFields(fields []Field) ([]jsonField, error) {
	out := make([]jsonField, len(fields))
	for i, f := range fields {
		jf, err := encodeField(f)
		if err != nil {
			return nil, err
		}
		out[i] = jf
	}
	return out, nil
}

func encodeField(f Field) (jsonField, error) {
	t, err := encodeType(f.Type)
	if err != nil {
		return jsonField{}, err
	}
	return jsonField{
		ID:       f.ID,
		Name:     f.Name,
		Optional: f.Optional,
		Type:     t,
		Doc:      f.Doc,
		Default:  f.Default,
	}, nil
}

func encodeType(t Type) (json.RawMessage, error) {
	switch t := t.(type) {
	case Primitive:
		return json.Marshal(t.String())
	case *Record:
		fields, err := encodeFields(t.Fields)
		if err != nil {
			return nil, err
		}
		return json.Marshal(jsonNested{Type: string(KindRecord), Fields: fields})
	case *Array:
		elem, err := encodeField(t.Element)
		if err != nil {
			return nil, err
		}
		return json.Marshal(jsonNested{Type: string(KindArray), Element: &elem})
	case *Map:
		key, err := encodeField(t.Key)
		if err != nil {
			return nil, err
		}
		value, err := encodeField(t.Value)
		if err != nil {
			return nil, err
		}
		return json.Marshal(jsonNested{Type: string(KindMap), Key: &key, Value: &value})
	default:
		return nil, InvalidArgumentError(fmt.Sprintf("cannot encode type %T", t))
	}
}

func decodeFields(fields []jsonField) ([]Field, error) {
	out := make([]Field, len(fields))
	for i, jf := range fields {
		f, err := decodeField(jf)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func decodeField(jf jsonField) (Field, error) {
	t, err := decodeType(jf.Type)
	if err != nil {
		return Field{}, err
	}
	return Field{
		ID:       jf.ID,
		Name:     jf.Name,
		Optional: jf.Optional,
		Type:     t,
		Doc:      jf.Doc,
		Default:  normalizeDefault(jf.Default),
	}, nil
}

// unmarshalUseNumber decodes with json.Number so numeric defaults are not
// flattened to float64 before normalizeDefault sees them.
func unmarshalUseNumber(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return dec.Decode(v)
}

func normalizeDefault(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case []any:
		for i := range v {
			v[i] = normalizeDefault(v[i])
		}
		return v
	case map[string]any:
		for k := range v {
			v[k] = normalizeDefault(v[k])
		}
		return v
	default:
		return v
	}
}

func decodeType(raw json.RawMessage) (Type, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return ParsePrimitive(name)
	}
	var nested jsonNested
	if err := unmarshalUseNumber(raw, &nested); err != nil {
		return nil, Wrap(ErrInvalidArgument, "parse type json", err)
	}
	switch nested.Type {
	case string(KindRecord):
		fields, err := decodeFields(nested.Fields)
		if err != nil {
			return nil, err
		}
		return RecordOf(fields...), nil
	case string(KindArray):
		if nested.Element == nil {
			return nil, InvalidArgumentError("array type is missing its element")
		}
		elem, err := decodeField(*nested.Element)
		if err != nil {
			return nil, err
		}
		return &Array{Element: elem}, nil
	case string(KindMap):
		if nested.Key == nil || nested.Value == nil {
			return nil, InvalidArgumentError("map type is missing key or value")
		}
		key, err := decodeField(*nested.Key)
		if err != nil {
			return nil, err
		}
		value, err := decodeField(*nested.Value)
		if err != nil {
			return nil, err
		}
		return &Map{Key: key, Value: value}, nil
	default:
		return nil, InvalidArgumentError(fmt.Sprintf("unknown nested type %q", nested.Type))
	}
}

// ParsePrimitive parses a primitive type name as produced by
// Primitive.String, for example "long" or "decimal(10,2)".
func ParsePrimitive(name string) (Primitive, error) {
	switch Kind(name) {
	case KindBoolean:
		return Boolean, nil
	case KindInt:
		return Int, nil
	case KindLong:
		return Long, nil
	case KindFloat:
		return Float, nil
	case KindDouble:
		return Double, nil
	case KindDate:
		return Date, nil
	case KindTimestamp:
		return Timestamp, nil
	case KindString:
		return String, nil
	case KindUUID:
		return UUID, nil
	case KindBinary:
		return Binary, nil
	}
	var precision, scale int
	if n, err := fmt.Sscanf(name, "decimal(%d,%d)", &precision, &scale); err == nil && n == 2 {
		return Decimal(precision, scale), nil
	}
	return Primitive{}, InvalidArgumentError(fmt.Sprintf("unknown primitive type %q", name))
}
