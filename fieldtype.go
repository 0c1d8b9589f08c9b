package recwire

// FieldType is the closed tag set a FieldDef can carry. Date, datetime,
// email, url, and uuid are stored as strings and checked by a registered
// TypeHandler rather than being distinct storage types.
type FieldType int

const (
	TypeBool FieldType = iota
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeString
	TypeDate
	TypeDateTime
	TypeEmail
	TypeURL
	TypeUUID
	TypeArray
	TypeNested
	TypeCustom
)

var fieldTypeNames = map[FieldType]string{
	TypeBool:     "bool",
	TypeInt8:     "int8",
	TypeInt16:    "int16",
	TypeInt32:    "int32",
	TypeInt64:    "int64",
	TypeUint8:    "uint8",
	TypeUint16:   "uint16",
	TypeUint32:   "uint32",
	TypeUint64:   "uint64",
	TypeFloat32:  "float32",
	TypeFloat64:  "float64",
	TypeString:   "string",
	TypeDate:     "date",
	TypeDateTime: "datetime",
	TypeEmail:    "email",
	TypeURL:      "url",
	TypeUUID:     "uuid",
	TypeArray:    "array",
	TypeNested:   "nested",
	TypeCustom:   "custom",
}

func (t FieldType) String() string {
	if s, ok := fieldTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// isNumeric reports whether the tag denotes an integer or float field.
func (t FieldType) isNumeric() bool {
	return t >= TypeInt8 && t <= TypeFloat64
}

func (t FieldType) isInteger() bool {
	return t >= TypeInt8 && t <= TypeUint64
}

func (t FieldType) isFloat() bool {
	return t == TypeFloat32 || t == TypeFloat64
}

// isFormat reports whether the tag is one of the string-backed built-in
// formats resolved through the handler registry.
func (t FieldType) isFormat() bool {
	return t >= TypeDate && t <= TypeUUID
}

// isElement reports whether the tag is usable as an array element type.
// Arrays hold one level of primitive scalars only.
func (t FieldType) isElement() bool {
	return t == TypeBool || t == TypeString || t.isNumeric()
}
