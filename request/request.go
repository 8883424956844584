// Package request builds the payloads for the API's edit and create
// endpoints.
//
// The API distinguishes a field that is absent (leave it alone), a
// field set to null (clear it), and a field with a value.  A Go
// struct with zero values can't say all three, so a builder keeps a
// map and only the keys you touched end up in the payload.  Nullable
// fields get a Clear method alongside their With method.
//
// Builders are values.  Every With method returns a copy, so a
// builder can be kept around and branched:
//
//	base := request.WebhookEdit{}.WithName("spidey bot")
//	a := base.WithChannel(1)
//	b := base.WithChannel(2)    // a is unaffected
//
// Request returns a fresh map each call; callers may mutate it.
package request

// fields is the accumulated payload.  Nil until the first write.
type fields map[string]interface{}

// with returns a copy with one more key.  The copy keeps builders
// value-like: the receiver's map is never written.
func (f fields) with(key string, value interface{}) fields {
	next := make(fields, len(f)+1)
	for k, v := range f {
		next[k] = v
	}
	next[key] = value
	return next
}

func (f fields) request() map[string]interface{} {
	out := make(map[string]interface{}, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
