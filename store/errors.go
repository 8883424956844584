package store

// These errors are user errors, not internal errors.

import "errors"

// ErrUnsupportedAction is returned by a strict Store when no handler
// is registered for an action's type.  The default (permissive) Store
// never returns it.
var ErrUnsupportedAction = errors.New("unsupported action")

// ErrIncompleteMembers is returned by exact-member reads when a
// guild's member list has not been reported complete.  Layouts that
// track completion should return it from GetExactMembersInGuild and
// CountExactMembersInGuild.
var ErrIncompleteMembers = errors.New("guild member list is not complete")

// UnhandledKind occurs when a generic count action carries an
// EntityKind that its handler doesn't know.  That's a programming
// error in the caller, and it aborts that single dispatch.
type UnhandledKind struct {
	Kind EntityKind
}

func (e *UnhandledKind) Error() string {
	return `unhandled entity kind "` + e.Kind.String() + `"`
}

// WrongResultType occurs when As is asked to narrow a result to a
// type the handler didn't produce.
type WrongResultType struct {
	Result interface{}
}

func (e *WrongResultType) Error() string {
	return "action result has unexpected type"
}
