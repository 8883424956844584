package store

import (
	"context"
	"errors"
	"testing"
)

type pingAction struct{}
type pongAction struct{}

func constHandler(result interface{}) Handler {
	return func(_ context.Context, _ Action) (interface{}, error) {
		return result, nil
	}
}

func TestMapperBuilderOverwrites(t *testing.T) {
	m := NewMapperBuilder().
		Map(pingAction{}, constHandler("first")).
		Map(pingAction{}, constHandler("second")).
		Build()

	if m.Size() != 1 {
		t.Fatalf("size == %d", m.Size())
	}

	h, have := m.HandlerFor(pingAction{})
	if !have {
		t.Fatal("no handler")
	}
	got, err := h(context.Background(), pingAction{})
	if err != nil {
		t.Fatal(err)
	}
	if got != "second" {
		t.Fatalf("got %v", got)
	}
}

func TestHandlerForMiss(t *testing.T) {
	m := NewMapperBuilder().Map(pingAction{}, constHandler("x")).Build()
	if _, have := m.HandlerFor(pongAction{}); have {
		t.Fatal("unexpected handler")
	}
	if _, have := m.HandlerFor(nil); have {
		t.Fatal("handler for nil action")
	}
}

func TestAggregateLaterWins(t *testing.T) {
	a := NewMapperBuilder().
		Map(pingAction{}, constHandler("a")).
		Map(pongAction{}, constHandler("a")).
		Build()
	b := NewMapperBuilder().
		Map(pingAction{}, constHandler("b")).
		Build()

	m := Aggregate(a, b, nil)
	if m.Size() != 2 {
		t.Fatalf("size == %d", m.Size())
	}

	h, _ := m.HandlerFor(pingAction{})
	if got, _ := h(context.Background(), pingAction{}); got != "b" {
		t.Fatalf("got %v", got)
	}
	h, _ = m.HandlerFor(pongAction{})
	if got, _ := h(context.Background(), pongAction{}); got != "a" {
		t.Fatalf("got %v", got)
	}
}

func TestMergeFirstFirstWins(t *testing.T) {
	a := NewMapperBuilder().
		Map(pingAction{}, constHandler("a")).
		Build()
	b := NewMapperBuilder().
		Map(pingAction{}, constHandler("b")).
		Map(pongAction{}, constHandler("b")).
		Build()

	m := MergeFirst(a, b)
	if m.Size() != 2 {
		t.Fatalf("size == %d", m.Size())
	}

	h, _ := m.HandlerFor(pingAction{})
	if got, _ := h(context.Background(), pingAction{}); got != "a" {
		t.Fatalf("got %v", got)
	}
	h, _ = m.HandlerFor(pongAction{})
	if got, _ := h(context.Background(), pongAction{}); got != "b" {
		t.Fatalf("got %v", got)
	}
}

func TestAs(t *testing.T) {
	n, err := As[int64](int64(42), nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 42 {
		t.Fatalf("n == %d", n)
	}

	// nil result is an empty result, not an error
	n, err = As[int64](nil, nil)
	if err != nil || n != 0 {
		t.Fatalf("n == %d, err == %v", n, err)
	}

	// errors pass through untouched
	boom := errors.New("boom")
	if _, err = As[int64](nil, boom); err != boom {
		t.Fatalf("err == %v", err)
	}

	// a wrong claim is reported, not truncated
	_, err = As[string](int64(42), nil)
	var wrong *WrongResultType
	if !errors.As(err, &wrong) {
		t.Fatalf("err == %v", err)
	}
}
