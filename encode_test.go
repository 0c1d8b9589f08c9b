package recwire_test

import (
	"context"
	"errors"
	"testing"

	recwire "github.com/recwire/recwire"
)

func TestEncode_DeclarationOrderIsStable(t *testing.T) {
	s := accountSchema(t)
	rec := account{Username: "alice", Age: 30, Active: true}
	ctx := context.Background()

	want := `{"username":"alice","age":30,"active":true}`
	for i := 0; i < 5; i++ {
		got, err := s.EncodeJSON(ctx, &rec)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if string(got) != want {
			t.Fatalf("call %d: expected %s, got %s", i, want, got)
		}
	}
}

func TestEncode_OneEntryPerDeclaredField(t *testing.T) {
	s := accountSchema(t)
	// zero values still produce an entry per field
	obj, err := s.Encode(context.Background(), &account{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if obj.Len() != 3 {
		t.Fatalf("expected 3 members, got %d", obj.Len())
	}
	members := obj.Members()
	want := []string{"username", "age", "active"}
	for i, m := range members {
		if m.Key != want[i] {
			t.Fatalf("member %d: expected %q, got %q", i, want[i], m.Key)
		}
	}
}

func TestEncode_MissingHandlerDegradesToNull(t *testing.T) {
	type rec struct {
		Name string
		X    string
	}
	b := recwire.NewBuilder[rec]()
	recwire.String(b, "name", func(r *rec) *string { return &r.Name })
	recwire.Custom(b, "x", nil, func(r *rec) *string { return &r.X })
	s := b.MustBuild()

	got, err := s.EncodeJSON(context.Background(), &rec{Name: "a", X: "whatever"})
	if err != nil {
		t.Fatalf("encode must succeed despite the missing handler: %v", err)
	}
	if string(got) != `{"name":"a","x":null}` {
		t.Fatalf("expected null for the handlerless field, got %s", got)
	}
}

// failingHandler always errors, standing in for a handler that cannot encode
// a particular value.
type failingHandler struct{}

func (failingHandler) Encode(ctx context.Context, v any) (any, error) {
	return nil, errors.New("boom")
}
func (failingHandler) Decode(ctx context.Context, node any) (any, error) {
	return nil, errors.New("boom")
}
func (failingHandler) Validate(ctx context.Context, node any) error {
	return errors.New("boom")
}

func TestEncode_HandlerFailureDegradesToNull(t *testing.T) {
	type rec struct{ X string }
	b := recwire.NewBuilder[rec]()
	recwire.Custom(b, "x", failingHandler{}, func(r *rec) *string { return &r.X })
	s := b.MustBuild()

	got, err := s.EncodeJSON(context.Background(), &rec{X: "v"})
	if err != nil {
		t.Fatalf("encode must succeed despite the failing handler: %v", err)
	}
	if string(got) != `{"x":null}` {
		t.Fatalf("expected null, got %s", got)
	}
}

// The outbound path is deliberately lenient where the inbound path is strict;
// this pins the asymmetry so changing it is a conscious decision.
func TestEncode_LenientWhereDecodeIsStrict(t *testing.T) {
	type rec struct{ X string }
	b := recwire.NewBuilder[rec]()
	recwire.Custom(b, "x", nil, func(r *rec) *string { return &r.X })
	s := b.MustBuild()
	ctx := context.Background()

	if _, err := s.Encode(ctx, &rec{X: "v"}); err != nil {
		t.Fatalf("encode should tolerate the unregistered handler: %v", err)
	}
	var r rec
	if err := s.Decode(ctx, map[string]any{"x": "v"}, &r); err == nil {
		t.Fatalf("decode should hard-fail on the unregistered handler")
	}
}

func TestEncode_NumbersKeepPrecision(t *testing.T) {
	type rec struct{ N int64 }
	b := recwire.NewBuilder[rec]()
	recwire.Int64(b, "n", func(r *rec) *int64 { return &r.N })
	s := b.MustBuild()

	// above float64's exact integer range
	got, err := s.EncodeJSON(context.Background(), &rec{N: 9007199254740993})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if string(got) != `{"n":9007199254740993}` {
		t.Fatalf("expected raw integer, got %s", got)
	}
}

func TestEncode_ArrayAndNested(t *testing.T) {
	type address struct{ City string }
	type person struct {
		Name string
		Tags []string
		Addr address
	}
	ab := recwire.NewBuilder[address]()
	recwire.String(ab, "city", func(a *address) *string { return &a.City })
	addrSchema := ab.MustBuild()

	pb := recwire.NewBuilder[person]()
	recwire.String(pb, "name", func(p *person) *string { return &p.Name })
	recwire.Array(pb, "tags", recwire.TypeString, func(p *person) *[]string { return &p.Tags })
	recwire.Nested(pb, "addr", addrSchema, func(p *person) *address { return &p.Addr })
	s := pb.MustBuild()

	p := person{Name: "alice", Tags: []string{"a", "b"}, Addr: address{City: "kyoto"}}
	got, err := s.EncodeJSON(context.Background(), &p)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := `{"name":"alice","tags":["a","b"],"addr":{"city":"kyoto"}}`
	if string(got) != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
