package secard

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// VariableValue is the ArkhamDB sentinel for a stat printed as X or Star.
const VariableValue = -2

// Record is one raw card record (an ArkhamDB JSON object). It is immutable:
// With returns an updated copy.
//
// Keys are gjson paths, so nested metadata such as "locationFront.connections"
// resolves through the same accessors. A field set to null behaves exactly
// like an absent field.
type Record struct {
	raw []byte
}

// ParseRecord wraps a JSON object. Any other JSON value is rejected.
func ParseRecord(data []byte) (Record, error) {
	data = bytes.TrimSpace(data)
	if !gjson.ValidBytes(data) {
		return Record{}, fmt.Errorf("%w: malformed JSON", ErrInvalidRecord)
	}
	if !gjson.ParseBytes(data).IsObject() {
		return Record{}, fmt.Errorf("%w: not a JSON object", ErrInvalidRecord)
	}
	return Record{raw: bytes.Clone(data)}, nil
}

// ParseRecords splits a JSON array of card objects into records.
func ParseRecords(data []byte) ([]Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidRecord)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected a JSON array of cards", ErrInvalidRecord)
	}

	var (
		records []Record
		err     error
	)
	root.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			err = fmt.Errorf("%w: element %d is not a JSON object", ErrInvalidRecord, len(records))
			return false
		}
		records = append(records, Record{raw: []byte(value.Raw)})
		return true
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// NewRecord builds a record from decoded fields.
func NewRecord(fields map[string]any) (Record, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return Record{raw: data}, nil
}

// Raw returns a copy of the record's JSON.
func (r Record) Raw() []byte {
	if r.raw == nil {
		return []byte("{}")
	}
	return bytes.Clone(r.raw)
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	return r.Raw(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	rec, err := ParseRecord(data)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// get returns the value at key; ok is false for absent and null fields.
func (r Record) get(key string) (gjson.Result, bool) {
	if r.raw == nil {
		return gjson.Result{}, false
	}
	res := gjson.GetBytes(r.raw, key)
	if !res.Exists() || res.Type == gjson.Null {
		return gjson.Result{}, false
	}
	return res, true
}

// Has reports whether key holds a non-null value.
func (r Record) Has(key string) bool {
	_, ok := r.get(key)
	return ok
}

// String returns the value at key as text, or def when absent.
// Numbers keep their JSON spelling.
func (r Record) String(key, def string) string {
	res, ok := r.get(key)
	if !ok {
		return def
	}
	return res.String()
}

// Int returns the value at key when it is a JSON integer.
func (r Record) Int(key string) (int, bool) {
	res, ok := r.get(key)
	if !ok || res.Type != gjson.Number {
		return 0, false
	}
	n := res.Int()
	if float64(n) != res.Num {
		return 0, false
	}
	return int(n), true
}

// Bool returns the truthiness of the value at key, or def when absent.
func (r Record) Bool(key string, def bool) bool {
	res, ok := r.get(key)
	if !ok {
		return def
	}
	switch res.Type {
	case gjson.String:
		return res.Str != ""
	case gjson.JSON:
		return res.Raw != "{}" && res.Raw != "[]"
	default:
		return res.Bool()
	}
}

// Code returns the card identifier.
func (r Record) Code() string {
	return r.String("code", "")
}

// TypeCode returns the ArkhamDB card type (asset, enemy, location, ...).
func (r Record) TypeCode() string {
	return r.String("type_code", "")
}

// With returns a copy of r with key set to value. The receiver is unchanged.
func (r Record) With(key string, value any) (Record, error) {
	data, err := sjson.SetBytes(r.Raw(), key, value)
	if err != nil {
		return Record{}, fmt.Errorf("%w: set %s: %v", ErrInvalidRecord, key, err)
	}
	return Record{raw: data}, nil
}

// withFieldOf copies key from src into a copy of r. An absent source field
// is written as def.
func (r Record) withFieldOf(src Record, key string, def any) (Record, error) {
	res, ok := src.get(key)
	if !ok {
		return r.With(key, def)
	}
	data, err := sjson.SetRawBytes(r.Raw(), key, []byte(res.Raw))
	if err != nil {
		return Record{}, fmt.Errorf("%w: set %s: %v", ErrInvalidRecord, key, err)
	}
	return Record{raw: data}, nil
}
