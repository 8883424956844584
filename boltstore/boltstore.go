// Package boltstore is a store.Layout backed by a bbolt file.
//
// Entities are stored as JSON, one bucket per family.  Guild-scoped
// families key their entries "guildID/entityID" so that one prefix
// scan answers the per-guild reads; messages are scoped by channel
// the same way.  The layout is safe for concurrent use: bbolt
// serializes the writes and the readers run in their own
// transactions.
//
// A boltstore survives restarts, which is the whole point.  For a
// cache that can start cold every run, memstore is lighter.
package boltstore

import (
	"bytes"
	"encoding/json"
	"log"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/store"
)

var buckets = []string{
	"channels", "guilds", "shards", "emojis", "members", "complete",
	"presences", "roles", "stickers", "voice", "events", "eventusers",
	"messages", "users", "meta",
}

// Store is a persistent store.Layout.  Open one with Open and close
// it when done.
type Store struct {
	Debug bool

	flags  store.Flag
	custom *store.ActionMapper
	db     *bolt.DB
}

// Option configures a Store at Open.
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

// Open opens (creating if necessary) the bbolt file at filename and
// makes sure every bucket exists.
func Open(filename string, opts ...Option) (*Store, error) {
	s := &Store{
		flags:  store.AllFlags,
		custom: store.EmptyMapper(),
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := bolt.Open(filename, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	s.db = db
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
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

func (s *Store) logf(format string, args ...interface{}) {
	if s.Debug {
		log.Printf("boltstore.Store."+format, args...)
	}
}

// Keys are decimal IDs, with "/" joining the scope and the entity.

func key(id data.ID) []byte {
	return []byte(strconv.FormatUint(uint64(id), 10))
}

func scoped(outer, id data.ID) []byte {
	k := append(key(outer), '/')
	return append(k, key(id)...)
}

func scopePrefix(outer data.ID) []byte {
	return append(key(outer), '/')
}

func put(b *bolt.Bucket, k []byte, v interface{}) error {
	js, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put(k, js)
}

// getJSON decodes the value at k, or returns nil if there isn't one.
func getJSON[T any](b *bolt.Bucket, k []byte) (*T, error) {
	bs := b.Get(k)
	if bs == nil {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(bs, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func countAll(b *bolt.Bucket) int64 {
	var n int64
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		n++
	}
	return n
}

func countPrefix(b *bolt.Bucket, prefix []byte) int64 {
	var n int64
	c := b.Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		n++
	}
	return n
}

func collectAll[T any](b *bolt.Bucket) ([]T, error) {
	var out []T
	c := b.Cursor()
	for k, bs := c.First(); k != nil; k, bs = c.Next() {
		var v T
		if err := json.Unmarshal(bs, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func collectPrefix[T any](b *bolt.Bucket, prefix []byte) ([]T, error) {
	var out []T
	c := b.Cursor()
	for k, bs := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, bs = c.Next() {
		var v T
		if err := json.Unmarshal(bs, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// deletePrefix removes every key under the prefix.  Callers are in a
// write transaction.  Keys are gathered first: mutating a bucket
// under a live cursor is not safe.
func deletePrefix(b *bolt.Bucket, prefix []byte) error {
	var doomed [][]byte
	c := b.Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		doomed = append(doomed, append([]byte(nil), k...))
	}
	for _, k := range doomed {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
