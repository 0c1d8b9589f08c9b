package recwire

import (
	"context"
	"strconv"

	"github.com/recwire/recwire/i18n"
)

// Decode walks the schema in declaration order and writes the input value
// tree into rec, which must be a pointer to the record type the schema was
// built for. It enforces required/type-match semantics and fails fast: the
// first offending field aborts the call and later fields are not examined.
// On failure the record's partial state is unspecified.
//
// Rule checks beyond presence and type conformance (lengths, ranges,
// patterns, enums) belong to Validate; callers wanting both run Validate
// first.
func (s *Schema) Decode(ctx context.Context, node any, rec any) error {
	if iss := s.checkRecord(rec); iss != nil {
		return iss
	}
	if _, _, ok := objectGet(node, ""); !ok {
		return Issues{Issue{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected object"}}
	}
	for _, f := range s.fields {
		val, present, _ := objectGet(node, f.name)
		if !present {
			if f.rules.required {
				return Issues{Issue{Path: "/" + f.name, Code: CodeRequired, Message: i18n.T(CodeRequired, nil), Hint: "required field missing"}}
			}
			// absent optional: leave the record untouched
			continue
		}
		if iss := s.decodeField(ctx, f, val, rec); iss != nil {
			return iss
		}
	}
	return nil
}

func (s *Schema) decodeField(ctx context.Context, f *FieldDef, val any, rec any) Issues {
	path := "/" + f.name
	switch {
	case f.typ == TypeArray:
		arr, ok := val.([]any)
		if !ok {
			return Issues{Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected array"}}
		}
		out := make([]any, 0, len(arr))
		for i, el := range arr {
			cv, iss := convertScalar(path+"/"+strconv.Itoa(i), f.elem, el)
			if iss != nil {
				return iss
			}
			out = append(out, cv)
		}
		if !f.set(rec, out) {
			return Issues{Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "element value does not fit the field"}}
		}
		return nil
	case f.typ == TypeNested:
		if _, _, ok := objectGet(val, ""); !ok {
			return Issues{Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected object"}}
		}
		sub := f.get(rec)
		if err := f.child.Decode(ctx, val, sub); err != nil {
			return rebaseIssues(path, err)
		}
		return nil
	case f.typ == TypeCustom || f.typ.isFormat():
		h, ok := s.handlerFor(f)
		if !ok {
			return Issues{Issue{Path: path, Code: CodeUnregisteredHandler, Message: i18n.T(CodeUnregisteredHandler, nil), Hint: "no handler for " + f.typ.String()}}
		}
		cv, err := h.Decode(ctx, val)
		if err != nil {
			return rebaseIssues(path, err)
		}
		if !f.set(rec, cv) {
			return Issues{Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "handler value does not fit the field"}}
		}
		return nil
	default:
		cv, iss := convertScalar(path, f.typ, val)
		if iss != nil {
			return iss
		}
		if !f.set(rec, cv) {
			return Issues{Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "value does not fit the field"}}
		}
		return nil
	}
}
