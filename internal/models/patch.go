package models

import (
	"errors"
	"fmt"
	"reflect"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

var ErrInvalidPatch = errors.New("invalid patch")

// immutableFields are owned by the backend and never accepted in a patch.
var immutableFields = map[string]struct{}{
	"id":        {},
	"userId":    {},
	"createdAt": {},
}

// Patch is a partial update: top-level fields of a record and their new
// values. On the wire it uses the protobuf Struct JSON mapping, so only
// JSON-representable values survive.
type Patch map[string]any

// Normalize drops backend-owned keys and converts values to their JSON form
// (numbers become float64, slices become []any). It fails on values that
// have no JSON representation.
func (p Patch) Normalize() (Patch, error) {
	clean := make(map[string]any, len(p))
	for k, v := range p {
		if _, ok := immutableFields[k]; ok {
			continue
		}
		clean[k] = widen(v)
	}

	s, err := structpb.NewStruct(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return Patch(s.AsMap()), nil
}

func (p Patch) MarshalJSON() ([]byte, error) {
	n, err := p.Normalize()
	if err != nil {
		return nil, err
	}
	s, err := structpb.NewStruct(n)
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(s)
}

func (p *Patch) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = nil
		return nil
	}
	var s structpb.Struct
	if err := protojson.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	*p = Patch(s.AsMap())
	return nil
}

// widen turns values into the generic shapes structpb accepts, going by
// kind: named strings and numbers become their base type, typed slices
// become []any, maps with string keys become map[string]any and pointers
// are followed. []byte is left to structpb, which encodes it as base64.
// Anything else is returned as is and rejected by structpb.
func widen(v any) any {
	switch v.(type) {
	case nil, []byte:
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return widen(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = widen(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = widen(iter.Value().Interface())
		}
		return out
	}
	return v
}
