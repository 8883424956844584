// Package script runs custom action handlers written in ECMAScript.
//
// A Handler is compiled once and executed per dispatch with the
// action payload exposed as `action` (a plain object made by a JSON
// round-trip of the action value).  Whatever the script's final
// expression evaluates to becomes the dispatch result.
//
// NewMapper binds handlers to action types, producing an
// ActionMapper that can sit in front of a layout's defaults via
// MergeFirst or serve as a layout's custom mapper.
//
// Uses https://github.com/dop251/goja, a Go implementation of
// ECMAScript 5.1+.
package script

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dop251/goja"

	"github.com/tandemchat/tandem-go/store"
)

var (
	// InterruptedMessage is the string value of Interrupted.
	InterruptedMessage = "RuntimeError: timeout"

	// Interrupted is returned by Run if the execution is
	// interrupted.
	Interrupted = errors.New(InterruptedMessage)
)

// Handler is one compiled script.
type Handler struct {
	// Timeout bounds each Run.  Zero means only the caller's ctx
	// limits execution.
	Timeout time.Duration

	name string
	prog *goja.Program
}

func wrapSrc(src string) string {
	return fmt.Sprintf("(function() {\n%s\n}());\n", src)
}

// Compile compiles the source.  The name only shows up in error
// messages.
func Compile(name, src string) (*Handler, error) {
	prog, err := goja.Compile(name, wrapSrc(src), true)
	if err != nil {
		return nil, errors.New(err.Error() + ": " + src)
	}
	return &Handler{name: name, prog: prog}, nil
}

// MustCompile is Compile for static sources.
func MustCompile(name, src string) *Handler {
	h, err := Compile(name, src)
	if err != nil {
		panic(err)
	}
	return h
}

// canonicalize flattens a value to plain maps, slices, and scalars.
func canonicalize(x interface{}) (interface{}, error) {
	js, err := json.Marshal(&x)
	if err != nil {
		return nil, err
	}
	var y interface{}
	if err = json.Unmarshal(js, &y); err != nil {
		return nil, err
	}
	return y, nil
}

// Run executes the script against one action.
//
// The runtime sees:
//
//	action: the action payload as a plain object.
//	log(x): log x as JSON.
//
// The script's value is exported back to Go: objects come out as
// map[string]interface{}, integers as int64, and null and undefined
// as nil.
func (h *Handler) Run(ctx context.Context, action store.Action) (interface{}, error) {
	payload, err := canonicalize(action)
	if err != nil {
		return nil, err
	}

	o := goja.New()
	o.Set("action", payload)
	o.Set("log", func(x interface{}) interface{} {
		switch vv := x.(type) {
		case goja.Value:
			x = vv.Export()
		}
		js, err := json.Marshal(&x)
		if err != nil {
			log.Println("script.log (can't marshal: " + err.Error() + ")")
		} else {
			log.Println(string(js))
		}
		return x
	})

	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	// We want to make sure that the following goroutine is
	// terminated as soon as possible.
	ictx, cancel := context.WithCancel(ctx)
	go func() {
		<-ictx.Done()
		// If Run calls cancel() after RunProgram returns, then
		// we'll never see this InterruptedMessage, which is
		// actually the behavior we want.  In that case, we
		// weren't actually interrupted.
		o.Interrupt(InterruptedMessage)
	}()

	v, err := o.RunProgram(h.prog)
	cancel()

	if err != nil {
		if _, is := err.(*goja.InterruptedError); is {
			return nil, Interrupted
		}
		return nil, err
	}

	return v.Export(), nil
}

// NewMapper binds each handler to the concrete type of its prototype
// action.  The result works anywhere an ActionMapper does; put it in
// front with MergeFirst to override a layout's defaults, or hand it
// to a layout as its custom mapper.
func NewMapper(handlers map[store.Action]*Handler) *store.ActionMapper {
	b := store.NewMapperBuilder()
	for prototype, h := range handlers {
		h := h
		b.Map(prototype, func(ctx context.Context, action store.Action) (interface{}, error) {
			return h.Run(ctx, action)
		})
	}
	return b.Build()
}
