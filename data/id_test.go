package data

import (
	"encoding/json"
	"testing"
	"time"
)

func TestIDRoundTrip(t *testing.T) {
	id := ID(175928847299117063)

	bs, err := json.Marshal(id)
	if err != nil {
		t.Fatal(err)
	}
	if string(bs) != `"175928847299117063"` {
		t.Fatalf("got %s", bs)
	}

	var back ID
	if err := json.Unmarshal(bs, &back); err != nil {
		t.Fatal(err)
	}
	if back != id {
		t.Fatalf("got %v", back)
	}
}

func TestIDLenientUnmarshal(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`175928847299117063`), &id); err != nil {
		t.Fatal(err)
	}
	if id != 175928847299117063 {
		t.Fatalf("got %v", id)
	}

	if err := json.Unmarshal([]byte(`null`), &id); err != nil {
		t.Fatal(err)
	}
	if id != 0 {
		t.Fatalf("got %v", id)
	}

	if err := json.Unmarshal([]byte(`"not a number"`), &id); err == nil {
		t.Fatal("wanted an error")
	}
}

func TestIDTimestamp(t *testing.T) {
	// From the platform's own snowflake documentation.
	id := ID(175928847299117063)
	want := time.Date(2016, 4, 30, 11, 18, 25, 796e6, time.UTC)
	if got := id.Timestamp(); !got.Equal(want) {
		t.Fatalf("got %v", got)
	}
}
