// Package testutil has small helpers for tests that sling JSON
// around.
package testutil

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/tandemchat/tandem-go/data"
)

// JS renders its argument as JSON or as a string indicating an error.
// Handy in failure messages, where %#v on an entity is unreadable.
func JS(x interface{}) string {
	bs, err := json.Marshal(&x)
	if err != nil {
		log.Printf("warning: testutil.JS error %s for %#v", err, x)
		return fmt.Sprintf("%#v", x)
	}
	return string(bs)
}

// Dwimjs, when given a string or bytes, parses that data as JSON.
// When given anything else, just returns what's given.  Inline
// fixtures read better as strings.
//
// See https://en.wikipedia.org/wiki/DWIM.
func Dwimjs(x interface{}) interface{} {
	switch vv := x.(type) {
	case []byte:
		return Dwimjs(string(vv))
	case string:
		var v interface{}
		if err := json.Unmarshal([]byte(vv), &v); err != nil {
			panic(err)
		}
		return v
	default:
		return x
	}
}

// ID parses a decimal snowflake, panicking on garbage.  Fixture ids
// in tests are literals, so a panic beats an error return.
func ID(s string) data.ID {
	var id data.ID
	if err := id.UnmarshalJSON([]byte(`"` + s + `"`)); err != nil {
		panic(err)
	}
	return id
}
