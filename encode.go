package recwire

import (
	"context"

	json "github.com/goccy/go-json"
)

// Encode walks the schema in declaration order, reads every field through
// its accessor, and produces a value tree with exactly one member per
// declared field. Outbound conversion is deliberately best-effort: a field
// whose handler is unregistered or failing is emitted as null and the call
// still succeeds, in contrast with Decode's hard failure. The only error is
// a record of the wrong type.
func (s *Schema) Encode(ctx context.Context, rec any) (*Object, error) {
	if iss := s.checkRecord(rec); iss != nil {
		return nil, iss
	}
	out := NewObject(len(s.fields))
	for _, f := range s.fields {
		out.Set(f.name, s.encodeField(ctx, f, rec))
	}
	return out, nil
}

// EncodeJSON renders the encoded value tree to JSON text with members in
// declaration order.
func (s *Schema) EncodeJSON(ctx context.Context, rec any) ([]byte, error) {
	obj, err := s.Encode(ctx, rec)
	if err != nil {
		return nil, err
	}
	return json.Marshal(obj)
}

func (s *Schema) encodeField(ctx context.Context, f *FieldDef, rec any) any {
	switch {
	case f.typ == TypeArray:
		elems, _ := f.get(rec).([]any)
		out := make([]any, len(elems))
		for i, el := range elems {
			out[i] = scalarNode(el)
		}
		return out
	case f.typ == TypeNested:
		sub, err := f.child.Encode(ctx, f.get(rec))
		if err != nil {
			return nil
		}
		return sub
	case f.typ == TypeCustom || f.typ.isFormat():
		h, ok := s.handlerFor(f)
		if !ok {
			return nil
		}
		node, err := h.Encode(ctx, f.get(rec))
		if err != nil {
			return nil
		}
		return node
	default:
		return scalarNode(f.get(rec))
	}
}
