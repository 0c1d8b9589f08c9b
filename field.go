package recwire

// FieldDef describes one declared field: name, type tag, accessor pair, and
// validation rules. Exactly one of elem (TypeArray), child (TypeNested), or
// handler (TypeCustom) is meaningful; for every other tag none apply.
//
// Accessors replace raw byte-offset arithmetic: the typed builder captures a
// pointer-selector closure once at declaration time and erases it here, so
// field access never reinterprets memory.
type FieldDef struct {
	name string
	typ  FieldType

	// get returns the field value for scalar, array (as []any of elements),
	// and custom fields; for nested fields it returns a pointer to the
	// sub-record so the child schema can recurse against it.
	get func(rec any) any
	// set writes a converted value through the accessor, reporting whether
	// the value fit the field's Go type. For arrays the value is a []any of
	// element-typed values; the closure rebuilds the typed slice, which also
	// clears any prior contents.
	set func(rec any, v any) bool

	rules fieldRules

	elem    FieldType   // array element tag
	child   *Schema     // nested record schema
	handler TypeHandler // custom handler; nil behaves as unregistered
}

// Name returns the declared field name (the value-tree key).
func (f *FieldDef) Name() string { return f.name }

// Type returns the field's type tag.
func (f *FieldDef) Type() FieldType { return f.typ }

// Required reports whether the field was marked required.
func (f *FieldDef) Required() bool { return f.rules.required }
