// Package feed turns inbound realtime event frames into store
// actions.
//
// A frame is the wire shape `{"t": NAME, "shard": N, "d": PAYLOAD}`.
// The Dispatcher owns the table mapping event names to action
// constructors; WSFeed and MQFeed are thin transports that read
// frames off a websocket or an MQTT subscription and hand them to a
// Dispatcher.
//
// Session management -- handshakes, identify, resume, heartbeats --
// is not here.  Whatever owns the connection does that; these feeds
// consume frames from connections already established.
package feed

import (
	"context"
	"encoding/json"
	"log"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/store"
)

// Frame is one inbound event.
type Frame struct {
	Type  string          `json:"t"`
	Shard int             `json:"shard"`
	Data  json.RawMessage `json:"d"`
}

// Dispatcher routes frames to a Store.
//
// Unknown event names are skipped without error, mirroring the
// store's own permissive dispatch: an event family the layout
// doesn't care about should cost nothing.
type Dispatcher struct {
	Debug bool

	// OnError, when set, observes per-frame dispatch errors.  The
	// default logs them.  Dispatch keeps going either way; one bad
	// frame shouldn't stall a firehose.
	OnError func(frame Frame, err error)

	store *store.Store
}

// NewDispatcher creates a Dispatcher feeding the given store.
func NewDispatcher(s *store.Store) *Dispatcher {
	return &Dispatcher{store: s}
}

func (d *Dispatcher) logf(format string, args ...interface{}) {
	if d.Debug {
		log.Printf("feed.Dispatcher."+format, args...)
	}
}

func (d *Dispatcher) fail(frame Frame, err error) error {
	if d.OnError != nil {
		d.OnError(frame, err)
		return nil
	}
	log.Printf("feed.Dispatcher %s dispatch error %v", frame.Type, err)
	return err
}

// decode unmarshals a frame payload into a fresh T.
func decode[T any](frame Frame) (T, error) {
	var v T
	err := json.Unmarshal(frame.Data, &v)
	return v, err
}

// Dispatch applies one frame to the store.  Unknown event names are
// ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, frame Frame) error {
	actions, err := d.actions(frame)
	if err != nil {
		return d.fail(frame, err)
	}
	if actions == nil {
		d.logf("Dispatch skipping %q", frame.Type)
		return nil
	}
	for _, action := range actions {
		if _, err := d.store.Execute(ctx, action); err != nil {
			return d.fail(frame, err)
		}
	}
	return nil
}

// actions builds the store actions for one frame.  Most frames map
// to exactly one action; a final member chunk also completes the
// guild's member list.
func (d *Dispatcher) actions(frame Frame) ([]store.Action, error) {
	shard := frame.Shard
	switch frame.Type {
	case "READY":
		p, err := decode[data.Ready](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.Ready{ShardIndex: shard, Ready: p}}, nil

	case "CHANNEL_CREATE":
		p, err := decode[data.Channel](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.ChannelCreate{ShardIndex: shard, Channel: p}}, nil
	case "CHANNEL_UPDATE":
		p, err := decode[data.Channel](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.ChannelUpdate{ShardIndex: shard, Channel: p}}, nil
	case "CHANNEL_DELETE":
		p, err := decode[data.Channel](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.ChannelDelete{ShardIndex: shard, Channel: p}}, nil

	case "GUILD_CREATE":
		p, err := decode[data.Guild](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.GuildCreate{ShardIndex: shard, Guild: p}}, nil
	case "GUILD_UPDATE":
		p, err := decode[data.Guild](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.GuildUpdate{ShardIndex: shard, Guild: p}}, nil
	case "GUILD_DELETE":
		p, err := decode[data.Guild](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.GuildDelete{ShardIndex: shard, Guild: p}}, nil

	case "GUILD_EMOJIS_UPDATE":
		p, err := decode[data.GuildEmojisUpdate](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.EmojisUpdate{ShardIndex: shard, Update: p}}, nil
	case "GUILD_STICKERS_UPDATE":
		p, err := decode[data.GuildStickersUpdate](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.StickersUpdate{ShardIndex: shard, Update: p}}, nil

	case "GUILD_MEMBER_ADD":
		p, err := decode[data.Member](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.MemberAdd{ShardIndex: shard, Member: p}}, nil
	case "GUILD_MEMBER_UPDATE":
		p, err := decode[data.Member](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.MemberUpdate{ShardIndex: shard, Member: p}}, nil
	case "GUILD_MEMBER_REMOVE":
		p, err := decode[data.MemberRemove](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.MemberRemove{ShardIndex: shard, Remove: p}}, nil
	case "GUILD_MEMBERS_CHUNK":
		p, err := decode[data.MembersChunk](frame)
		if err != nil {
			return nil, err
		}
		actions := []store.Action{store.MembersChunk{ShardIndex: shard, Chunk: p}}
		if p.ChunkCount > 0 && p.ChunkIndex == p.ChunkCount-1 {
			// The last chunk of a full request means we've now
			// seen everyone.
			actions = append(actions, store.CompleteGuildMembers{GuildID: p.GuildID})
		}
		return actions, nil

	case "MESSAGE_CREATE":
		p, err := decode[data.Message](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.MessageCreate{ShardIndex: shard, Message: p}}, nil
	case "MESSAGE_UPDATE":
		p, err := decode[data.Message](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.MessageUpdate{ShardIndex: shard, Message: p}}, nil
	case "MESSAGE_DELETE":
		p, err := decode[data.MessageDelete](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.MessageDelete{ShardIndex: shard, Delete: p}}, nil
	case "MESSAGE_DELETE_BULK":
		p, err := decode[data.MessageDeleteBulk](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.MessageDeleteBulk{ShardIndex: shard, Delete: p}}, nil

	case "MESSAGE_REACTION_ADD":
		p, err := decode[data.MessageReaction](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.ReactionAdd{ShardIndex: shard, Reaction: p}}, nil
	case "MESSAGE_REACTION_REMOVE":
		p, err := decode[data.MessageReaction](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.ReactionRemove{ShardIndex: shard, Reaction: p}}, nil
	case "MESSAGE_REACTION_REMOVE_ALL":
		p, err := decode[data.MessageReactionRemoveAll](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.ReactionRemoveAll{ShardIndex: shard, Remove: p}}, nil
	case "MESSAGE_REACTION_REMOVE_EMOJI":
		p, err := decode[data.MessageReactionRemoveEmoji](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.ReactionRemoveEmoji{ShardIndex: shard, Remove: p}}, nil

	case "PRESENCE_UPDATE":
		p, err := decode[data.Presence](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.PresenceUpdate{ShardIndex: shard, Presence: p}}, nil

	case "GUILD_ROLE_CREATE":
		p, err := decode[data.GuildRole](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.RoleCreate{ShardIndex: shard, Role: p}}, nil
	case "GUILD_ROLE_UPDATE":
		p, err := decode[data.GuildRole](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.RoleUpdate{ShardIndex: shard, Role: p}}, nil
	case "GUILD_ROLE_DELETE":
		p, err := decode[data.GuildRoleDelete](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.RoleDelete{ShardIndex: shard, Delete: p}}, nil

	case "USER_UPDATE":
		p, err := decode[data.User](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.UserUpdate{ShardIndex: shard, User: p}}, nil

	case "VOICE_STATE_UPDATE":
		p, err := decode[data.VoiceState](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.VoiceStateUpdate{ShardIndex: shard, State: p}}, nil

	case "GUILD_SCHEDULED_EVENT_CREATE":
		p, err := decode[data.ScheduledEvent](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.ScheduledEventCreate{ShardIndex: shard, Event: p}}, nil
	case "GUILD_SCHEDULED_EVENT_UPDATE":
		p, err := decode[data.ScheduledEvent](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.ScheduledEventUpdate{ShardIndex: shard, Event: p}}, nil
	case "GUILD_SCHEDULED_EVENT_DELETE":
		p, err := decode[data.ScheduledEvent](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.ScheduledEventDelete{ShardIndex: shard, Event: p}}, nil
	case "GUILD_SCHEDULED_EVENT_USER_ADD":
		p, err := decode[data.ScheduledEventUser](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.ScheduledEventUserAdd{ShardIndex: shard, User: p}}, nil
	case "GUILD_SCHEDULED_EVENT_USER_REMOVE":
		p, err := decode[data.ScheduledEventUser](frame)
		if err != nil {
			return nil, err
		}
		return []store.Action{store.ScheduledEventUserRemove{ShardIndex: shard, User: p}}, nil
	}

	return nil, nil
}
