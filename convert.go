package recwire

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/recwire/recwire/i18n"
)

// asNumber normalizes a number node. Value trees carry json.Number (the
// drivers decode with UseNumber) but float64 is accepted for hand-built
// trees.
func asNumber(node any) (json.Number, bool) {
	switch n := node.(type) {
	case json.Number:
		return n, true
	case float64:
		return json.Number(strconv.FormatFloat(n, 'g', -1, 64)), true
	default:
		return "", false
	}
}

func intBits(t FieldType) int {
	switch t {
	case TypeInt8, TypeUint8:
		return 8
	case TypeInt16, TypeUint16:
		return 16
	case TypeInt32, TypeUint32:
		return 32
	default:
		return 64
	}
}

func isUnsigned(t FieldType) bool {
	return t >= TypeUint8 && t <= TypeUint64
}

// convertScalar checks node against the scalar tag and returns the concrete
// Go value to store (int32, string, bool, ...). Issues are reported at path.
func convertScalar(path string, t FieldType, node any) (any, Issues) {
	switch {
	case t == TypeBool:
		b, ok := node.(bool)
		if !ok {
			return nil, Issues{Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected boolean"}}
		}
		return b, nil
	case t == TypeString:
		s, ok := node.(string)
		if !ok {
			return nil, Issues{Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected string"}}
		}
		return s, nil
	case t.isInteger():
		n, ok := asNumber(node)
		if !ok {
			return nil, Issues{Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected number"}}
		}
		return convertInteger(path, t, n)
	case t.isFloat():
		n, ok := asNumber(node)
		if !ok {
			return nil, Issues{Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected number"}}
		}
		bits := 64
		if t == TypeFloat32 {
			bits = 32
		}
		f, err := strconv.ParseFloat(n.String(), bits)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, Issues{Issue{Path: path, Code: CodeOverflow, Message: i18n.T(CodeOverflow, nil), Hint: t.String() + " cannot represent " + n.String()}}
			}
			return nil, Issues{Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected number"}}
		}
		if t == TypeFloat32 {
			return float32(f), nil
		}
		return f, nil
	default:
		return nil, Issues{Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: t.String() + " is not a scalar tag"}}
	}
}

func convertInteger(path string, t FieldType, n json.Number) (any, Issues) {
	overflow := func() Issues {
		return Issues{Issue{Path: path, Code: CodeOverflow, Message: i18n.T(CodeOverflow, nil), Hint: t.String() + " cannot represent " + n.String()}}
	}
	notIntegral := func() Issues {
		return Issues{Issue{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected integer"}}
	}
	if isUnsigned(t) {
		u, err := strconv.ParseUint(n.String(), 10, intBits(t))
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, overflow()
			}
			return nil, notIntegral()
		}
		switch t {
		case TypeUint8:
			return uint8(u), nil
		case TypeUint16:
			return uint16(u), nil
		case TypeUint32:
			return uint32(u), nil
		default:
			return u, nil
		}
	}
	i, err := strconv.ParseInt(n.String(), 10, intBits(t))
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, overflow()
		}
		return nil, notIntegral()
	}
	switch t {
	case TypeInt8:
		return int8(i), nil
	case TypeInt16:
		return int16(i), nil
	case TypeInt32:
		return int32(i), nil
	default:
		return i, nil
	}
}

// scalarNode converts a stored Go scalar into its value-tree node. Integers
// and floats become json.Number so precision survives the trip through the
// JSON collaborator.
func scalarNode(v any) any {
	switch n := v.(type) {
	case bool, string, nil:
		return n
	case int8:
		return json.Number(strconv.FormatInt(int64(n), 10))
	case int16:
		return json.Number(strconv.FormatInt(int64(n), 10))
	case int32:
		return json.Number(strconv.FormatInt(int64(n), 10))
	case int64:
		return json.Number(strconv.FormatInt(n, 10))
	case uint8:
		return json.Number(strconv.FormatUint(uint64(n), 10))
	case uint16:
		return json.Number(strconv.FormatUint(uint64(n), 10))
	case uint32:
		return json.Number(strconv.FormatUint(uint64(n), 10))
	case uint64:
		return json.Number(strconv.FormatUint(n, 10))
	case float32:
		return json.Number(strconv.FormatFloat(float64(n), 'g', -1, 32))
	case float64:
		return json.Number(strconv.FormatFloat(n, 'g', -1, 64))
	default:
		return n
	}
}
