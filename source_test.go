package recwire_test

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	recwire "github.com/recwire/recwire"
)

func TestJSONBytes_NumbersStayTextual(t *testing.T) {
	v, err := recwire.JSONBytes([]byte(`{"n":9007199254740993,"f":1.5}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	n, ok := m["n"].(json.Number)
	if !ok || n.String() != "9007199254740993" {
		t.Fatalf("expected json.Number, got %T %v", m["n"], m["n"])
	}
}

func TestJSONBytes_MalformedIsParseError(t *testing.T) {
	for _, in := range []string{`{"a":`, `{]`, ``, `{"a":1} trailing`} {
		_, err := recwire.JSONBytes([]byte(in))
		iss, ok := recwire.AsIssues(err)
		if !ok || iss[0].Code != recwire.CodeParseError {
			t.Fatalf("input %q: expected parse_error, got %v", in, err)
		}
	}
}

func TestJSONReader(t *testing.T) {
	v, err := recwire.JSONReader(strings.NewReader(`["a",true,null]`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	arr, ok := v.([]any)
	if !ok || len(arr) != 3 || arr[0] != "a" || arr[1] != true || arr[2] != nil {
		t.Fatalf("unexpected tree: %#v", v)
	}
}

func TestYAMLBytes_NormalizesToJSONShapes(t *testing.T) {
	src := []byte("username: alice\nage: 30\nactive: true\ntags:\n  - a\n  - b\n")
	v, err := recwire.YAMLBytes(src)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	if n, ok := m["age"].(json.Number); !ok || n.String() != "30" {
		t.Fatalf("yaml numbers must normalize to json.Number, got %T %v", m["age"], m["age"])
	}
	if _, ok := m["tags"].([]any); !ok {
		t.Fatalf("yaml sequences must normalize to []any, got %T", m["tags"])
	}

	if _, err := recwire.YAMLBytes([]byte("a: [unclosed")); err == nil {
		t.Fatalf("expected parse_error for malformed yaml")
	}
}

func TestYAMLBytes_FeedsTheEngine(t *testing.T) {
	s := accountSchema(t)
	tree, err := recwire.YAMLBytes([]byte("username: alice\nage: 30\nactive: true\n"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := s.Validate(context.Background(), tree); err != nil {
		t.Fatalf("yaml tree should validate: %v", err)
	}
}

// stubDriver returns a fixed tree regardless of input.
type stubDriver struct{ v any }

func (d stubDriver) DecodeBytes(b []byte) (any, error)     { return d.v, nil }
func (d stubDriver) DecodeReader(r io.Reader) (any, error) { return d.v, nil }
func (d stubDriver) Name() string                          { return "stub" }

func TestSetDriver_SwapsTheCollaborator(t *testing.T) {
	defer recwire.UseDefaultDriver()
	recwire.SetDriver(stubDriver{v: map[string]any{"ok": true}})
	v, err := recwire.JSONBytes([]byte(`ignored`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	m := v.(map[string]any)
	if m["ok"] != true {
		t.Fatalf("stub driver not used: %#v", v)
	}

	recwire.SetDriver(nil) // ignored
	if _, err := recwire.JSONBytes([]byte(`ignored`)); err != nil {
		t.Fatalf("nil driver must be ignored: %v", err)
	}
}
