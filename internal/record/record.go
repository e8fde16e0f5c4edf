// Package record holds harvested metadata as ordered, nested key/value
// records. Key order matters downstream: CSV columns follow it.
package record

import (
	"encoding/json"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is an ordered mapping. Values are string, json.Number, bool, nil,
// []any or *Record.
type Record struct {
	keys   []string
	values map[string]any
}

func New() *Record {
	return &Record{values: map[string]any{}}
}

func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Set stores value under key. Existing keys keep their position.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = map[string]any{}
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *Record) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Parse decodes any JSON value, turning objects into *Record.
func Parse(data []byte) (any, error) {
	iter := jsoniter.ParseBytes(api, data)
	v := readValue(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, errors.Wrap(iter.Error, "decode record json")
	}
	// only whitespace may follow the value
	if iter.Error == nil {
		if iter.WhatIsNext() != jsoniter.InvalidValue || iter.Error != io.EOF {
			return nil, errors.New("decode record json: unexpected data after top-level value")
		}
	}
	return v, nil
}

// ParseObject decodes a JSON object.
func ParseObject(data []byte) (*Record, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	rec, ok := v.(*Record)
	if !ok {
		return nil, errors.Errorf("expected json object, got %T", v)
	}
	return rec, nil
}

func (r *Record) UnmarshalJSON(data []byte) error {
	parsed, err := ParseObject(data)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

func (r *Record) MarshalJSON() ([]byte, error) {
	return Marshal(r)
}

// Marshal encodes any record value, keeping record key order.
func Marshal(v any) ([]byte, error) {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)
	writeValue(stream, v)
	if stream.Error != nil {
		return nil, errors.Wrap(stream.Error, "encode record json")
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

func readValue(iter *jsoniter.Iterator) any {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		rec := New()
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			rec.Set(key, readValue(it))
			return it.Error == nil
		})
		return rec
	case jsoniter.ArrayValue:
		out := []any{}
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			out = append(out, readValue(it))
			return it.Error == nil
		})
		return out
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		return iter.ReadNumber()
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	default:
		iter.ReportError("readValue", "unexpected json token")
		return nil
	}
}

func writeValue(stream *jsoniter.Stream, v any) {
	switch t := v.(type) {
	case *Record:
		stream.WriteObjectStart()
		for i, k := range t.keys {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(k)
			writeValue(stream, t.values[k])
		}
		stream.WriteObjectEnd()
	case []any:
		stream.WriteArrayStart()
		for i, item := range t {
			if i > 0 {
				stream.WriteMore()
			}
			writeValue(stream, item)
		}
		stream.WriteArrayEnd()
	case json.Number:
		if t == "" {
			stream.WriteRaw("0")
			return
		}
		stream.WriteRaw(string(t))
	default:
		stream.WriteVal(t)
	}
}
