package data

import (
	"strconv"
	"time"
)

// Epoch is the platform epoch: the millisecond timestamp that ID
// timestamps count from.
//
// The value here is 2015-01-01T00:00:00Z, which is what the hosted
// platform uses.  If you are pointing this SDK at a self-hosted
// deployment with a different epoch, change this before extracting
// timestamps from IDs.
var Epoch int64 = 1420070400000

// ID is a snowflake: a 64-bit identifier whose high bits encode a
// creation timestamp.  The platform serializes IDs as decimal strings
// in JSON (to survive JavaScript number precision), and so do we.
type ID uint64

// ParseID parses a decimal string as an ID.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(n), nil
}

// String renders the ID the way the wire does.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Timestamp extracts the creation time encoded in the ID.
func (id ID) Timestamp() time.Time {
	ms := int64(id>>22) + Epoch
	return time.Unix(0, ms*int64(time.Millisecond)).UTC()
}

// MarshalJSON writes the ID as a decimal string.
func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

// UnmarshalJSON accepts either a decimal string or (leniently) a bare
// number.  Some event mirrors re-serialize payloads with numeric ids.
func (id *ID) UnmarshalJSON(bs []byte) error {
	s := string(bs)
	if 2 <= len(s) && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "null" || s == "" {
		*id = 0
		return nil
	}
	parsed, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
