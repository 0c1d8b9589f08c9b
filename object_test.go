package recwire_test

import (
	"encoding/json"
	"testing"

	recwire "github.com/recwire/recwire"
)

func TestObject_PreservesInsertionOrder(t *testing.T) {
	o := recwire.NewObject(3)
	o.Set("z", json.Number("1"))
	o.Set("a", "two")
	o.Set("m", true)

	got, err := o.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if string(got) != `{"z":1,"a":"two","m":true}` {
		t.Fatalf("insertion order lost: %s", got)
	}
}

func TestObject_SetReplacesInPlace(t *testing.T) {
	o := recwire.NewObject(2)
	o.Set("a", 1)
	o.Set("b", 2)
	o.Set("a", 3)

	if o.Len() != 2 {
		t.Fatalf("replace must not grow the object, len=%d", o.Len())
	}
	v, ok := o.Get("a")
	if !ok || v != 3 {
		t.Fatalf("expected replaced value 3, got %v", v)
	}
	if ms := o.Members(); ms[0].Key != "a" || ms[1].Key != "b" {
		t.Fatalf("replace must keep the original position: %+v", ms)
	}
}

func TestObject_GetMissing(t *testing.T) {
	o := recwire.NewObject(0)
	if _, ok := o.Get("nope"); ok {
		t.Fatalf("expected absent key")
	}
}

func TestObject_NestedMarshal(t *testing.T) {
	inner := recwire.NewObject(1)
	inner.Set("x", json.Number("1"))
	o := recwire.NewObject(2)
	o.Set("inner", inner)
	o.Set("list", []any{"a", nil})

	got, err := o.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if string(got) != `{"inner":{"x":1},"list":["a",null]}` {
		t.Fatalf("unexpected output: %s", got)
	}
}
