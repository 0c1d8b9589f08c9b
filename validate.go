package recwire

import (
	"context"
	"strconv"

	"github.com/recwire/recwire/i18n"
)

// Validate inspects an input value tree against the schema without touching
// any record memory. Traversal is declaration order; per field the checks
// run in a fixed order, short-circuiting at the first failure:
//
//	required-presence, shape/type, length bounds, numeric range bounds,
//	pattern (full match), enum membership.
//
// The first field that fails terminates the whole call with that single
// violation; later fields are never inspected.
func (s *Schema) Validate(ctx context.Context, node any) error {
	if _, _, ok := objectGet(node, ""); !ok {
		return Issues{Issue{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected object"}}
	}
	for _, f := range s.fields {
		val, present, _ := objectGet(node, f.name)
		if !present {
			if f.rules.required {
				return Issues{Issue{Path: "/" + f.name, Code: CodeRequired, Message: i18n.T(CodeRequired, nil), Hint: "required field missing"}}
			}
			continue
		}
		if iss := s.validateField(ctx, f, val); iss != nil {
			return iss
		}
	}
	return nil
}

func (s *Schema) validateField(ctx context.Context, f *FieldDef, val any) Issues {
	path := "/" + f.name
	switch {
	case f.typ == TypeArray:
		arr, ok := val.([]any)
		if !ok {
			return Issues{Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected array"}}
		}
		for i, el := range arr {
			if _, iss := convertScalar(path+"/"+strconv.Itoa(i), f.elem, el); iss != nil {
				return iss
			}
		}
		return checkLength(path, &f.rules, len(arr))
	case f.typ == TypeNested:
		if err := f.child.Validate(ctx, val); err != nil {
			return rebaseIssues(path, err)
		}
		return nil
	case f.typ == TypeCustom || f.typ.isFormat():
		h, ok := s.handlerFor(f)
		if !ok {
			return Issues{Issue{Path: path, Code: CodeUnregisteredHandler, Message: i18n.T(CodeUnregisteredHandler, nil), Hint: "no handler for " + f.typ.String()}}
		}
		if err := h.Validate(ctx, val); err != nil {
			return rebaseIssues(path, err)
		}
		// format rules apply to the raw wire string
		if s2, ok := val.(string); ok {
			return checkStringRules(path, &f.rules, s2)
		}
		return nil
	case f.typ == TypeString:
		s2, ok := val.(string)
		if !ok {
			return Issues{Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected string"}}
		}
		return checkStringRules(path, &f.rules, s2)
	case f.typ.isNumeric():
		if _, iss := convertScalar(path, f.typ, val); iss != nil {
			return iss
		}
		n, _ := asNumber(val)
		fv, err := n.Float64()
		if err != nil {
			return Issues{Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected number"}}
		}
		return checkRange(path, &f.rules, fv)
	default: // TypeBool
		if _, iss := convertScalar(path, f.typ, val); iss != nil {
			return iss
		}
		return nil
	}
}

func checkLength(path string, r *fieldRules, n int) Issues {
	if r.minLen >= 0 && n < r.minLen {
		return Issues{Issue{Path: path, Code: CodeTooShort, Message: i18n.T(CodeTooShort, nil), Params: map[string]any{"min": r.minLen, "got": n}}}
	}
	if r.maxLen >= 0 && n > r.maxLen {
		return Issues{Issue{Path: path, Code: CodeTooLong, Message: i18n.T(CodeTooLong, nil), Params: map[string]any{"max": r.maxLen, "got": n}}}
	}
	return nil
}

func checkRange(path string, r *fieldRules, v float64) Issues {
	if r.hasMin && v < r.minVal {
		return Issues{Issue{Path: path, Code: CodeTooSmall, Message: i18n.T(CodeTooSmall, nil), Params: map[string]any{"min": r.minVal, "got": v}}}
	}
	if r.hasMax && v > r.maxVal {
		return Issues{Issue{Path: path, Code: CodeTooBig, Message: i18n.T(CodeTooBig, nil), Params: map[string]any{"max": r.maxVal, "got": v}}}
	}
	return nil
}

// checkStringRules applies length, pattern, and enum rules in that order.
func checkStringRules(path string, r *fieldRules, s string) Issues {
	if iss := checkLength(path, r, len(s)); iss != nil {
		return iss
	}
	if r.pattern != nil && !r.pattern.MatchString(s) {
		return Issues{Issue{Path: path, Code: CodePattern, Message: i18n.T(CodePattern, nil), Params: map[string]any{"pattern": r.patternSrc, "got": s}}}
	}
	if len(r.enum) > 0 && !r.inEnum(s) {
		return Issues{Issue{Path: path, Code: CodeInvalidEnum, Message: i18n.T(CodeInvalidEnum, nil), Params: map[string]any{"allowed": r.enum, "got": s}}}
	}
	return nil
}
