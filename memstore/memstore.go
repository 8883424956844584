// Package memstore is the reference in-memory Layout.
//
// Everything lives in maps behind one RWMutex.  Entities are stored
// by value, so readers always get copies and never see later
// mutations.  This layout is the one the test suites and small
// single-process bots use; anything that has to survive a restart
// wants boltstore instead.
//
// A memstore supports every entity family by default.  Build one
// with a narrower flag set to drop whole families; the store built
// from it will then ignore those actions entirely.
package memstore

import (
	"sync"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/store"
)

// Store is an in-memory store.Layout.  The zero value is not usable;
// call New.
type Store struct {
	flags  store.Flag
	custom *store.ActionMapper

	mu sync.RWMutex

	channels map[data.ID]data.Channel
	guilds   map[data.ID]data.Guild

	// guildShard remembers which shard delivered each guild, so a
	// shard invalidation knows what to drop.
	guildShard map[data.ID]int

	emojis    map[data.ID]map[data.ID]data.Emoji
	members   map[data.ID]map[data.ID]data.Member
	complete  map[data.ID]bool
	presences map[data.ID]map[data.ID]data.Presence
	roles     map[data.ID]map[data.ID]data.Role
	stickers  map[data.ID]map[data.ID]data.Sticker
	voice     map[data.ID]map[data.ID]data.VoiceState
	events    map[data.ID]map[data.ID]data.ScheduledEvent

	// eventUsers is guild -> event -> interested user set.
	eventUsers map[data.ID]map[data.ID]map[data.ID]bool

	// messages is channel -> message.
	messages map[data.ID]map[data.ID]data.Message

	users  map[data.ID]data.User
	selfID data.ID
}

// Option configures a Store at construction.
type Option func(*Store)

// WithFlags narrows the entity families the layout supports.
func WithFlags(flags store.Flag) Option {
	return func(s *Store) {
		s.flags = flags
	}
}

// WithCustomMapper attaches handlers for user-defined actions.
func WithCustomMapper(m *store.ActionMapper) Option {
	return func(s *Store) {
		s.custom = m
	}
}

// New creates an empty in-memory layout supporting all entity
// families (unless narrowed by WithFlags).
func New(opts ...Option) *Store {
	s := &Store{
		flags:      store.AllFlags,
		custom:     store.EmptyMapper(),
		channels:   map[data.ID]data.Channel{},
		guilds:     map[data.ID]data.Guild{},
		guildShard: map[data.ID]int{},
		emojis:     map[data.ID]map[data.ID]data.Emoji{},
		members:    map[data.ID]map[data.ID]data.Member{},
		complete:   map[data.ID]bool{},
		presences:  map[data.ID]map[data.ID]data.Presence{},
		roles:      map[data.ID]map[data.ID]data.Role{},
		stickers:   map[data.ID]map[data.ID]data.Sticker{},
		voice:      map[data.ID]map[data.ID]data.VoiceState{},
		events:     map[data.ID]map[data.ID]data.ScheduledEvent{},
		eventUsers: map[data.ID]map[data.ID]map[data.ID]bool{},
		messages:   map[data.ID]map[data.ID]data.Message{},
		users:      map[data.ID]data.User{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Accessor implements store.Layout.
func (s *Store) Accessor() store.DataAccessor {
	return s
}

// Updater implements store.Layout.
func (s *Store) Updater() store.GatewayUpdater {
	return s
}

// EnabledFlags implements store.Layout.
func (s *Store) EnabledFlags() store.Flag {
	return s.flags
}

// CustomMapper implements store.Layout.
func (s *Store) CustomMapper() *store.ActionMapper {
	return s.custom
}

// sub returns the inner map for a guild (or channel), making it on
// first use.  Callers hold the write lock.
func sub[T any](m map[data.ID]map[data.ID]T, outer data.ID) map[data.ID]T {
	inner := m[outer]
	if inner == nil {
		inner = map[data.ID]T{}
		m[outer] = inner
	}
	return inner
}

func countNested[T any](m map[data.ID]map[data.ID]T) int64 {
	var n int64
	for _, inner := range m {
		n += int64(len(inner))
	}
	return n
}

func collect[T any](m map[data.ID]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func collectNested[T any](m map[data.ID]map[data.ID]T) []T {
	var out []T
	for _, inner := range m {
		for _, v := range inner {
			out = append(out, v)
		}
	}
	return out
}

// lookup returns a copy of the entity, or nil if absent.  Callers
// hold at least the read lock.
func lookup[T any](m map[data.ID]T, id data.ID) *T {
	v, have := m[id]
	if !have {
		return nil
	}
	return &v
}

func lookupNested[T any](m map[data.ID]map[data.ID]T, outer, id data.ID) *T {
	inner, have := m[outer]
	if !have {
		return nil
	}
	return lookup(inner, id)
}

// dropGuild removes a guild and everything scoped to it.  Callers
// hold the write lock.
func (s *Store) dropGuild(guildID data.ID) {
	delete(s.guilds, guildID)
	delete(s.guildShard, guildID)
	delete(s.emojis, guildID)
	delete(s.members, guildID)
	delete(s.complete, guildID)
	delete(s.presences, guildID)
	delete(s.roles, guildID)
	delete(s.stickers, guildID)
	delete(s.voice, guildID)
	delete(s.events, guildID)
	delete(s.eventUsers, guildID)
	for channelID, ch := range s.channels {
		if ch.GuildID != nil && *ch.GuildID == guildID {
			delete(s.channels, channelID)
			delete(s.messages, channelID)
		}
	}
}

// pruneUsers drops users no longer referenced by any member, except
// the self user.  Callers hold the write lock.
func (s *Store) pruneUsers() {
	referenced := map[data.ID]bool{s.selfID: true}
	for _, inner := range s.members {
		for userID := range inner {
			referenced[userID] = true
		}
	}
	for userID := range s.users {
		if !referenced[userID] {
			delete(s.users, userID)
		}
	}
}
