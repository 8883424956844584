package testutil

import (
	"reflect"
	"testing"
)

func TestJS(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	if got := JS(payload{Name: "general"}); got != `{"name":"general"}` {
		t.Fatalf("got %s", got)
	}
}

func TestDwimjs(t *testing.T) {
	want := map[string]interface{}{"id": "42"}
	if got := Dwimjs(`{"id":"42"}`); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v", got)
	}
	if got := Dwimjs([]byte(`7`)); got != float64(7) {
		t.Fatalf("got %#v", got)
	}
	// Non-strings pass through.
	if got := Dwimjs(42); got != 42 {
		t.Fatalf("got %#v", got)
	}
}

func TestID(t *testing.T) {
	if got := ID("42"); uint64(got) != 42 {
		t.Fatalf("got %v", got)
	}
}
