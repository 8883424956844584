// Package entity wraps raw data structs with behavior.
//
// A data.X is a dumb snapshot; an entity.X is that snapshot plus a
// rest.Client, so it can edit and delete itself through the API.
// Entities are cheap values built on demand (usually from a store
// read or a REST response) and hold no state of their own beyond the
// snapshot.
//
// Edits take a builder from the request package and return a fresh
// entity wrapping the API's answer.  The receiver is never mutated.
package entity

import "fmt"

// CDNBaseURL is the root for platform-hosted assets.
const CDNBaseURL = "https://cdn.tandem.example"

func cdnURL(format string, args ...interface{}) string {
	return CDNBaseURL + fmt.Sprintf(format, args...)
}
