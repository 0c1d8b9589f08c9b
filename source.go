package recwire

import (
	"bytes"
	stdjson "encoding/json"
	"io"
	"strconv"
	"sync"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/recwire/recwire/i18n"
)

// Driver turns raw text into a generic value tree (map[string]any, []any,
// string, json.Number, bool, nil). The engine itself never tokenizes text;
// this SPI is the boundary to the parsing collaborator and may be swapped
// with SetDriver.
type Driver interface {
	DecodeBytes(b []byte) (any, error)
	DecodeReader(r io.Reader) (any, error)
	Name() string
}

var (
	driverMu      sync.RWMutex
	currentDriver Driver = goJSONDriver{}
)

// SetDriver replaces the global JSON driver; nil values are ignored.
func SetDriver(d Driver) {
	if d == nil {
		return
	}
	driverMu.Lock()
	currentDriver = d
	driverMu.Unlock()
}

// UseDefaultDriver restores the goccy/go-json backed driver.
func UseDefaultDriver() {
	driverMu.Lock()
	currentDriver = goJSONDriver{}
	driverMu.Unlock()
}

func getDriver() Driver {
	driverMu.RLock()
	d := currentDriver
	driverMu.RUnlock()
	return d
}

// JSONBytes parses b into a value tree. Malformed text yields a parse_error
// issue before any schema traversal can begin.
func JSONBytes(b []byte) (any, error) {
	v, err := getDriver().DecodeBytes(b)
	if err != nil {
		return nil, parseIssue(err)
	}
	return v, nil
}

// JSONReader parses r into a value tree.
func JSONReader(r io.Reader) (any, error) {
	v, err := getDriver().DecodeReader(r)
	if err != nil {
		return nil, parseIssue(err)
	}
	return v, nil
}

// YAMLBytes parses YAML text into the same value-tree shapes the JSON driver
// produces, numbers normalized to json.Number.
func YAMLBytes(b []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, parseIssue(err)
	}
	return normalizeYAML(v), nil
}

func parseIssue(err error) Issues {
	return Issues{Issue{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Cause: err}}
}

// goJSONDriver is the default driver. UseNumber keeps numbers textual so
// integer widths and float precision are decided by the schema, not the
// parser.
type goJSONDriver struct{}

func (goJSONDriver) DecodeBytes(b []byte) (any, error) {
	return decodeJSON(json.NewDecoder(bytes.NewReader(b)))
}

func (goJSONDriver) DecodeReader(r io.Reader) (any, error) {
	return decodeJSON(json.NewDecoder(r))
}

func (goJSONDriver) Name() string { return "goccy/go-json" }

func decodeJSON(dec *json.Decoder) (any, error) {
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	// reject trailing non-whitespace content
	if err := dec.Decode(new(any)); err != io.EOF {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return v, nil
}

// normalizeYAML rewrites yaml.v3 output into JSON-driver node shapes.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	case int:
		return stdjson.Number(strconv.FormatInt(int64(t), 10))
	case int64:
		return stdjson.Number(strconv.FormatInt(t, 10))
	case uint64:
		return stdjson.Number(strconv.FormatUint(t, 10))
	case float64:
		return stdjson.Number(strconv.FormatFloat(t, 'g', -1, 64))
	default:
		return v
	}
}
