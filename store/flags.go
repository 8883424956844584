package store

import "strings"

// Flag names a family of entities that a Store can care about.  A
// Layout reports a set of enabled flags, and Store construction only
// registers the action handlers for the enabled families.
//
// Disabling a flag does not make the corresponding actions errors.
// Executing an action from a disabled family just returns nothing.
// See the Store docs for why.
type Flag uint16

const (
	FlagChannel Flag = 1 << iota
	FlagEmoji
	FlagGuild
	FlagMember
	FlagMessage
	FlagPresence
	FlagRole
	FlagUser
	FlagVoiceState
	FlagSticker
	FlagScheduledEvent

	flagEnd
)

// AllFlags enables every entity family.
const AllFlags = flagEnd - 1

// Has reports whether every flag in x is set in f.
func (f Flag) Has(x Flag) bool {
	return f&x == x
}

var flagNames = map[Flag]string{
	FlagChannel:        "channel",
	FlagEmoji:          "emoji",
	FlagGuild:          "guild",
	FlagMember:         "member",
	FlagMessage:        "message",
	FlagPresence:       "presence",
	FlagRole:           "role",
	FlagUser:           "user",
	FlagVoiceState:     "voicestate",
	FlagSticker:        "sticker",
	FlagScheduledEvent: "scheduledevent",
}

func (f Flag) String() string {
	if f == AllFlags {
		return "all"
	}
	acc := make([]string, 0, 11)
	for bit := FlagChannel; bit < flagEnd; bit <<= 1 {
		if f.Has(bit) {
			acc = append(acc, flagNames[bit])
		}
	}
	return strings.Join(acc, "|")
}

// ParseFlag maps a name like "member" (or "all") to its Flag.
func ParseFlag(name string) (Flag, bool) {
	if name == "all" {
		return AllFlags, true
	}
	for bit, n := range flagNames {
		if n == name {
			return bit, true
		}
	}
	return 0, false
}
