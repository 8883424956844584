package store

import (
	"context"
	"reflect"
)

// Action is a typed request describing one store operation: either a
// read query or the application of a gateway event.  An Action
// carries only the parameters needed to perform the operation.
//
// The concrete type of an Action is its routing key.  There is no
// marker method: any value can be offered to a Store, and values
// whose types nobody registered are simply not handled.
type Action interface{}

// Handler performs one kind of Action.  The result is whatever the
// action family produces: an entity snapshot (possibly nil), a slice
// of snapshots, a count, or nothing.
type Handler func(ctx context.Context, action Action) (interface{}, error)

// ActionMapper is an immutable mapping from concrete Action type to
// Handler.  Build one with a MapperBuilder, or compose several with
// Aggregate or MergeFirst.
//
// A built mapper is never mutated, so lookups from any number of
// goroutines need no locking.
type ActionMapper struct {
	handlers map[reflect.Type]Handler
}

var emptyMapper = &ActionMapper{handlers: map[reflect.Type]Handler{}}

// EmptyMapper returns the shared mapper with no registrations.
func EmptyMapper() *ActionMapper {
	return emptyMapper
}

// HandlerFor finds the handler registered for the action's concrete
// type, if any.
func (m *ActionMapper) HandlerFor(action Action) (Handler, bool) {
	if m == nil || action == nil {
		return nil, false
	}
	h, have := m.handlers[reflect.TypeOf(action)]
	return h, have
}

// Size reports the number of registered action types.
func (m *ActionMapper) Size() int {
	if m == nil {
		return 0
	}
	return len(m.handlers)
}

// Aggregate unions the given mappers.  When two mappers register the
// same action type, the later mapper wins.  Nil mappers are ignored.
func Aggregate(mappers ...*ActionMapper) *ActionMapper {
	handlers := make(map[reflect.Type]Handler)
	for _, m := range mappers {
		if m == nil {
			continue
		}
		for t, h := range m.handlers {
			handlers[t] = h
		}
	}
	return &ActionMapper{handlers: handlers}
}

// MergeFirst unions the given mappers, keeping the first mapper's
// registration when an action type appears more than once.  Later
// duplicates are silently discarded, which is what lets a partial
// custom layout sit in front of a complete default one.
func MergeFirst(mappers ...*ActionMapper) *ActionMapper {
	handlers := make(map[reflect.Type]Handler)
	for _, m := range mappers {
		if m == nil {
			continue
		}
		for t, h := range m.handlers {
			if _, have := handlers[t]; have {
				continue
			}
			handlers[t] = h
		}
	}
	return &ActionMapper{handlers: handlers}
}

// MapperBuilder accumulates (action type, handler) registrations.
//
// Not thread-safe.  Build the mapper before sharing it.
type MapperBuilder struct {
	handlers map[reflect.Type]Handler
}

// NewMapperBuilder creates an empty builder.
func NewMapperBuilder() *MapperBuilder {
	return &MapperBuilder{
		handlers: make(map[reflect.Type]Handler),
	}
}

// Map registers a handler for the concrete type of the given
// prototype action.  Registering the same type twice overwrites the
// earlier handler: the builder is a mapping, and keys are unique.
func (b *MapperBuilder) Map(prototype Action, h Handler) *MapperBuilder {
	b.handlers[reflect.TypeOf(prototype)] = h
	return b
}

// Build freezes the registrations into an ActionMapper.
func (b *MapperBuilder) Build() *ActionMapper {
	handlers := make(map[reflect.Type]Handler, len(b.handlers))
	for t, h := range b.handlers {
		handlers[t] = h
	}
	return &ActionMapper{handlers: handlers}
}

// As narrows an Execute result to R.  The zero R is returned for a
// nil result (an unhandled or empty action) and for an error.
//
// The type parameter is the caller's claim, checked here at runtime
// but never at registration time.
func As[R any](result interface{}, err error) (R, error) {
	var zero R
	if err != nil || result == nil {
		return zero, err
	}
	r, is := result.(R)
	if !is {
		return zero, &WrongResultType{Result: result}
	}
	return r, nil
}
