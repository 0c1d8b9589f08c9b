package recwire

import (
	"reflect"

	"github.com/recwire/recwire/i18n"
)

// Schema is an ordered, immutable-after-build description of a record type's
// fields. Field declaration order is permanent: it drives Encode output key
// order and the fail-fast tie-break of Decode and Validate. A built Schema
// is safe for unlimited concurrent use.
type Schema struct {
	fields []*FieldDef
	byName map[string]int
	reg    *Registry
	rtype  reflect.Type // pointer type of the record (*R)
}

// Fields returns the field definitions in declaration order. The returned
// slice is a copy; the definitions themselves are shared and read-only.
func (s *Schema) Fields() []*FieldDef {
	out := make([]*FieldDef, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.fields) }

// handlerFor resolves the TypeHandler serving f. Custom fields carry their
// handler directly; format fields go through the schema's registry (or the
// process default) so overrides registered later still take effect.
func (s *Schema) handlerFor(f *FieldDef) (TypeHandler, bool) {
	if f.typ == TypeCustom {
		return f.handler, f.handler != nil
	}
	reg := s.reg
	if reg == nil {
		reg = DefaultRegistry()
	}
	return reg.Lookup(f.typ)
}

// checkRecord verifies rec is a non-nil pointer of the record type the
// schema was built for.
func (s *Schema) checkRecord(rec any) Issues {
	if rec == nil || reflect.TypeOf(rec) != s.rtype {
		return Issues{Issue{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "record must be " + s.rtype.String()}}
	}
	return nil
}

// builderCore is the non-generic part of the builder shared with FieldSpec
// handles.
type builderCore struct {
	fields []*FieldDef
	byName map[string]int
	errs   Issues
	reg    *Registry
	rtype  reflect.Type
}

func (c *builderCore) configErr(path, hint string) {
	c.errs = AppendIssues(c.errs, Issue{Path: path, Code: CodeSchemaError, Message: i18n.T(CodeSchemaError, nil), Hint: hint})
}

func (c *builderCore) append(f *FieldDef) *FieldSpec {
	if f.name == "" {
		c.configErr("/", "field name must not be empty")
	} else if _, dup := c.byName[f.name]; dup {
		c.configErr("/"+f.name, "duplicate field name")
	}
	c.byName[f.name] = len(c.fields)
	c.fields = append(c.fields, f)
	return &FieldSpec{core: c, f: f}
}

// Builder accumulates field declarations for record type R. Configuration
// mistakes (duplicate names, rules incompatible with a field's type, bad
// patterns) are collected and reported by Build rather than surfacing at
// request time.
type Builder[R any] struct {
	core *builderCore
}

// NewBuilder starts a schema for record type R.
func NewBuilder[R any]() *Builder[R] {
	return &Builder[R]{core: &builderCore{
		byName: map[string]int{},
		rtype:  reflect.TypeOf((*R)(nil)),
	}}
}

// WithHandlers makes the schema resolve format handlers through reg instead
// of the process-wide default registry.
func (b *Builder[R]) WithHandlers(reg *Registry) *Builder[R] {
	b.core.reg = reg
	return b
}

// Build finalizes the schema. All configuration errors collected during the
// builder phase are returned together.
func (b *Builder[R]) Build() (*Schema, error) {
	c := b.core
	if len(c.errs) > 0 {
		return nil, c.errs
	}
	fields := make([]*FieldDef, len(c.fields))
	copy(fields, c.fields)
	byName := make(map[string]int, len(c.byName))
	for k, v := range c.byName {
		byName[k] = v
	}
	return &Schema{fields: fields, byName: byName, reg: c.reg, rtype: c.rtype}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder[R]) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// FieldSpec is the handle returned by field declarations. Rule calls chain
// on the handle and always target the field it was bound to, independent of
// later declarations.
type FieldSpec struct {
	core *builderCore
	f    *FieldDef
}

func (fs *FieldSpec) path() string { return "/" + fs.f.name }

// ruleStringOK reports whether string rules (length, pattern, enum) may be
// attached. Custom fields delegate validation entirely to their handler.
func (fs *FieldSpec) ruleStringOK() bool {
	t := fs.f.typ
	return t == TypeString || t.isFormat()
}

// Required marks the field as required.
func (fs *FieldSpec) Required() *FieldSpec {
	fs.f.rules.required = true
	return fs
}

// Optional marks the field as optional (the default).
func (fs *FieldSpec) Optional() *FieldSpec {
	fs.f.rules.required = false
	return fs
}

// MinLen sets the inclusive minimum length (string bytes or array elements).
func (fs *FieldSpec) MinLen(n int) *FieldSpec {
	if !fs.ruleStringOK() && fs.f.typ != TypeArray {
		fs.core.configErr(fs.path(), "length rule requires a string or array field, not "+fs.f.typ.String())
		return fs
	}
	if n < 0 {
		fs.core.configErr(fs.path(), "negative min length")
		return fs
	}
	fs.f.rules.minLen = n
	return fs
}

// MaxLen sets the inclusive maximum length (string bytes or array elements).
func (fs *FieldSpec) MaxLen(n int) *FieldSpec {
	if !fs.ruleStringOK() && fs.f.typ != TypeArray {
		fs.core.configErr(fs.path(), "length rule requires a string or array field, not "+fs.f.typ.String())
		return fs
	}
	if n < 0 {
		fs.core.configErr(fs.path(), "negative max length")
		return fs
	}
	fs.f.rules.maxLen = n
	return fs
}

// Range sets inclusive numeric bounds.
func (fs *FieldSpec) Range(min, max float64) *FieldSpec {
	if !fs.f.typ.isNumeric() {
		fs.core.configErr(fs.path(), "range rule requires a numeric field, not "+fs.f.typ.String())
		return fs
	}
	if min > max {
		fs.core.configErr(fs.path(), "range min exceeds max")
		return fs
	}
	fs.f.rules.minVal, fs.f.rules.hasMin = min, true
	fs.f.rules.maxVal, fs.f.rules.hasMax = max, true
	return fs
}

// Min sets the inclusive lower numeric bound only.
func (fs *FieldSpec) Min(min float64) *FieldSpec {
	if !fs.f.typ.isNumeric() {
		fs.core.configErr(fs.path(), "range rule requires a numeric field, not "+fs.f.typ.String())
		return fs
	}
	fs.f.rules.minVal, fs.f.rules.hasMin = min, true
	return fs
}

// Max sets the inclusive upper numeric bound only.
func (fs *FieldSpec) Max(max float64) *FieldSpec {
	if !fs.f.typ.isNumeric() {
		fs.core.configErr(fs.path(), "range rule requires a numeric field, not "+fs.f.typ.String())
		return fs
	}
	fs.f.rules.maxVal, fs.f.rules.hasMax = max, true
	return fs
}

// Pattern requires the whole string to match expr (full match, not contains).
func (fs *FieldSpec) Pattern(expr string) *FieldSpec {
	if !fs.ruleStringOK() {
		fs.core.configErr(fs.path(), "pattern rule requires a string field, not "+fs.f.typ.String())
		return fs
	}
	re, err := fullMatchPattern(expr)
	if err != nil {
		fs.core.configErr(fs.path(), "invalid pattern: "+err.Error())
		return fs
	}
	fs.f.rules.pattern = re
	fs.f.rules.patternSrc = expr
	return fs
}

// OneOf restricts the string to an ordered set of allowed values
// (case-sensitive exact match).
func (fs *FieldSpec) OneOf(values ...string) *FieldSpec {
	if !fs.ruleStringOK() {
		fs.core.configErr(fs.path(), "enum rule requires a string field, not "+fs.f.typ.String())
		return fs
	}
	if len(values) == 0 {
		fs.core.configErr(fs.path(), "enum requires at least one value")
		return fs
	}
	fs.f.rules.enum = append([]string(nil), values...)
	return fs
}

// ---- field declarations ----
//
// Go methods cannot introduce type parameters, so field declarations are free
// functions taking the builder, in the same spirit as dsl.Bind[T]. The
// selector is a pointer-selector closure bound once at declaration time; it
// must not be nil.

func addScalar[R any, F any](b *Builder[R], name string, ft FieldType, sel func(*R) *F) *FieldSpec {
	if sel == nil {
		panic("recwire: nil field selector for " + name)
	}
	fd := &FieldDef{
		name:  name,
		typ:   ft,
		rules: newFieldRules(),
		get:   func(rec any) any { return *sel(rec.(*R)) },
		set: func(rec any, v any) bool {
			fv, ok := v.(F)
			if !ok {
				return false
			}
			*sel(rec.(*R)) = fv
			return true
		},
	}
	return b.core.append(fd)
}

// String declares a string field.
func String[R any](b *Builder[R], name string, sel func(*R) *string) *FieldSpec {
	return addScalar(b, name, TypeString, sel)
}

// Bool declares a boolean field.
func Bool[R any](b *Builder[R], name string, sel func(*R) *bool) *FieldSpec {
	return addScalar(b, name, TypeBool, sel)
}

// Int8 declares an 8-bit signed integer field.
func Int8[R any](b *Builder[R], name string, sel func(*R) *int8) *FieldSpec {
	return addScalar(b, name, TypeInt8, sel)
}

// Int16 declares a 16-bit signed integer field.
func Int16[R any](b *Builder[R], name string, sel func(*R) *int16) *FieldSpec {
	return addScalar(b, name, TypeInt16, sel)
}

// Int32 declares a 32-bit signed integer field.
func Int32[R any](b *Builder[R], name string, sel func(*R) *int32) *FieldSpec {
	return addScalar(b, name, TypeInt32, sel)
}

// Int64 declares a 64-bit signed integer field.
func Int64[R any](b *Builder[R], name string, sel func(*R) *int64) *FieldSpec {
	return addScalar(b, name, TypeInt64, sel)
}

// Uint8 declares an 8-bit unsigned integer field.
func Uint8[R any](b *Builder[R], name string, sel func(*R) *uint8) *FieldSpec {
	return addScalar(b, name, TypeUint8, sel)
}

// Uint16 declares a 16-bit unsigned integer field.
func Uint16[R any](b *Builder[R], name string, sel func(*R) *uint16) *FieldSpec {
	return addScalar(b, name, TypeUint16, sel)
}

// Uint32 declares a 32-bit unsigned integer field.
func Uint32[R any](b *Builder[R], name string, sel func(*R) *uint32) *FieldSpec {
	return addScalar(b, name, TypeUint32, sel)
}

// Uint64 declares a 64-bit unsigned integer field.
func Uint64[R any](b *Builder[R], name string, sel func(*R) *uint64) *FieldSpec {
	return addScalar(b, name, TypeUint64, sel)
}

// Float32 declares a 32-bit float field.
func Float32[R any](b *Builder[R], name string, sel func(*R) *float32) *FieldSpec {
	return addScalar(b, name, TypeFloat32, sel)
}

// Float64 declares a 64-bit float field.
func Float64[R any](b *Builder[R], name string, sel func(*R) *float64) *FieldSpec {
	return addScalar(b, name, TypeFloat64, sel)
}

// Date declares a string-backed date field ("2006-01-02").
func Date[R any](b *Builder[R], name string, sel func(*R) *string) *FieldSpec {
	return addScalar(b, name, TypeDate, sel)
}

// DateTime declares a string-backed RFC3339 datetime field.
func DateTime[R any](b *Builder[R], name string, sel func(*R) *string) *FieldSpec {
	return addScalar(b, name, TypeDateTime, sel)
}

// Email declares a string-backed email field.
func Email[R any](b *Builder[R], name string, sel func(*R) *string) *FieldSpec {
	return addScalar(b, name, TypeEmail, sel)
}

// URL declares a string-backed absolute-URL field.
func URL[R any](b *Builder[R], name string, sel func(*R) *string) *FieldSpec {
	return addScalar(b, name, TypeURL, sel)
}

// UUID declares a string-backed UUID field.
func UUID[R any](b *Builder[R], name string, sel func(*R) *string) *FieldSpec {
	return addScalar(b, name, TypeUUID, sel)
}

// Array declares a slice field holding one level of primitive scalars. Nested
// arrays and record elements are rejected at build time; the element tag must
// agree with the Go element type.
func Array[R any, E any](b *Builder[R], name string, elem FieldType, sel func(*R) *[]E) *FieldSpec {
	if sel == nil {
		panic("recwire: nil field selector for " + name)
	}
	fd := &FieldDef{
		name:  name,
		typ:   TypeArray,
		elem:  elem,
		rules: newFieldRules(),
		get: func(rec any) any {
			src := *sel(rec.(*R))
			out := make([]any, len(src))
			for i := range src {
				out[i] = src[i]
			}
			return out
		},
		set: func(rec any, v any) bool {
			src, ok := v.([]any)
			if !ok {
				return false
			}
			out := make([]E, len(src))
			for i := range src {
				ev, ok := src[i].(E)
				if !ok {
					return false
				}
				out[i] = ev
			}
			*sel(rec.(*R)) = out
			return true
		},
	}
	fs := b.core.append(fd)
	if !elem.isElement() {
		b.core.configErr("/"+name, "array element must be a primitive scalar, not "+elem.String())
	} else if want := scalarGoType(elem); want != reflect.TypeOf((*E)(nil)).Elem() {
		b.core.configErr("/"+name, "element tag "+elem.String()+" does not match Go element type "+reflect.TypeOf((*E)(nil)).Elem().String())
	}
	return fs
}

// Nested declares a nested-record field delegating to a pre-built child
// schema. The child must have been built for the selected sub-record type.
func Nested[R any, C any](b *Builder[R], name string, child *Schema, sel func(*R) *C) *FieldSpec {
	if sel == nil {
		panic("recwire: nil field selector for " + name)
	}
	fd := &FieldDef{
		name:  name,
		typ:   TypeNested,
		child: child,
		rules: newFieldRules(),
		get:   func(rec any) any { return sel(rec.(*R)) },
	}
	fs := b.core.append(fd)
	if child == nil {
		b.core.configErr("/"+name, "nested field requires a built child schema")
	} else if child.rtype != reflect.TypeOf((*C)(nil)) {
		b.core.configErr("/"+name, "child schema was built for "+child.rtype.String()+", field selects "+reflect.TypeOf((*C)(nil)).String())
	}
	return fs
}

// Custom declares a field whose conversion and validation are delegated
// entirely to h. A nil handler is permitted and behaves as unregistered:
// Encode emits null, Decode and Validate fail hard.
func Custom[R any, F any](b *Builder[R], name string, h TypeHandler, sel func(*R) *F) *FieldSpec {
	if sel == nil {
		panic("recwire: nil field selector for " + name)
	}
	fd := &FieldDef{
		name:    name,
		typ:     TypeCustom,
		handler: h,
		rules:   newFieldRules(),
		get:     func(rec any) any { return *sel(rec.(*R)) },
		set: func(rec any, v any) bool {
			fv, ok := v.(F)
			if !ok {
				return false
			}
			*sel(rec.(*R)) = fv
			return true
		},
	}
	return b.core.append(fd)
}

// scalarGoType maps an element tag to its Go storage type.
func scalarGoType(t FieldType) reflect.Type {
	switch t {
	case TypeBool:
		return reflect.TypeOf(false)
	case TypeInt8:
		return reflect.TypeOf(int8(0))
	case TypeInt16:
		return reflect.TypeOf(int16(0))
	case TypeInt32:
		return reflect.TypeOf(int32(0))
	case TypeInt64:
		return reflect.TypeOf(int64(0))
	case TypeUint8:
		return reflect.TypeOf(uint8(0))
	case TypeUint16:
		return reflect.TypeOf(uint16(0))
	case TypeUint32:
		return reflect.TypeOf(uint32(0))
	case TypeUint64:
		return reflect.TypeOf(uint64(0))
	case TypeFloat32:
		return reflect.TypeOf(float32(0))
	case TypeFloat64:
		return reflect.TypeOf(float64(0))
	case TypeString:
		return reflect.TypeOf("")
	default:
		return nil
	}
}
