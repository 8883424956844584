// Package main is a command-line store debugger: point it at a
// layout, throw events at it, and poke at what got cached.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/jsccast/yaml"

	"github.com/tandemchat/tandem-go/boltstore"
	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/feed"
	"github.com/tandemchat/tandem-go/memstore"
	"github.com/tandemchat/tandem-go/store"
)

type Opts struct {
	boltFile string
	flags    string
	echo     bool
}

func main() {

	opts := &Opts{}
	flag.StringVar(&opts.boltFile, "b", "", "bolt file (default: in-memory layout)")
	flag.StringVar(&opts.flags, "f", "all", "comma-separated entity flags (e.g. channel,guild,member)")
	flag.BoolVar(&opts.echo, "e", false, "echo input")
	flag.Parse()

	if err := opts.run(); err != nil {
		panic(err)
	}
}

func parseFlags(s string) (store.Flag, error) {
	var flags store.Flag
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		f, have := store.ParseFlag(name)
		if !have {
			return 0, fmt.Errorf("unknown flag '%s'", name)
		}
		flags |= f
	}
	return flags, nil
}

// Snapshot is what save writes and load reads.  Loading replays the
// entities as synthetic create events, so whatever layout is behind
// the store rebuilds its own representation.
type Snapshot struct {
	Guilds   []data.Guild   `yaml:"guilds,omitempty"`
	Channels []data.Channel `yaml:"channels,omitempty"`
	Members  []data.Member  `yaml:"members,omitempty"`
	Messages []data.Message `yaml:"messages,omitempty"`
	Users    []data.User    `yaml:"users,omitempty"`
}

func (opts *Opts) run() error {

	in := os.Stdin
	w := os.Stdout

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flags, err := parseFlags(opts.flags)
	if err != nil {
		return err
	}

	var layout store.Layout
	if opts.boltFile == "" {
		layout = memstore.New(memstore.WithFlags(flags))
	} else {
		b, err := boltstore.Open(opts.boltFile, boltstore.WithFlags(flags))
		if err != nil {
			return err
		}
		defer b.Close()
		layout = b
	}

	s := store.FromLayout(layout)
	dispatcher := feed.NewDispatcher(s)

	var (
		count = regexp.MustCompile(`^count +([a-z]+)( +([0-9]+))?`)

		get = regexp.MustCompile(`^get +([a-z]+)( +([0-9]+))?( +([0-9]+))?`)

		event = regexp.MustCompile(`^event +(.*)`)

		save = regexp.MustCompile(`^save +(.*)`)

		load = regexp.MustCompile(`^load +(.*)`)

		help = regexp.MustCompile(`^(help|h|\?)`)

		outputPrefix = "# "

		say = func(format string, args ...interface{}) {
			fmt.Fprintf(w, outputPrefix+format+"\n", args...)
		}

		protest = func(format string, args ...interface{}) {
			say("error: "+format, args...)
		}

		render = func(x interface{}, err error) {
			if err != nil {
				protest("%s", err)
				return
			}
			if x == nil {
				say("nothing")
				return
			}
			js, err := json.MarshalIndent(&x, outputPrefix, "  ")
			if err != nil {
				protest("can't render: %s", err)
				return
			}
			say("%s", js)
		}
	)

	say("flags: %s", flags)

	r := bufio.NewReader(in)
	for {
		line, err := r.ReadString('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)

		if opts.echo {
			fmt.Println(line)
		}

		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		var ss []string

		if ss = help.FindStringSubmatch(line); 0 < len(ss) {
			for _, s := range strings.Split(doc(), "\n") {
				say("%s", s)
			}
			continue
		}

		if ss = count.FindStringSubmatch(line); 0 < len(ss) {
			action, err := countAction(ss[1], ss[3])
			if err != nil {
				protest("%s", err)
				continue
			}
			render(s.Execute(ctx, action))
			continue
		}

		if ss = get.FindStringSubmatch(line); 0 < len(ss) {
			action, err := getAction(ss[1], ss[3], ss[5])
			if err != nil {
				protest("%s", err)
				continue
			}
			render(s.Execute(ctx, action))
			continue
		}

		if ss = event.FindStringSubmatch(line); 0 < len(ss) {
			var frame feed.Frame
			if err := json.Unmarshal([]byte(ss[1]), &frame); err != nil {
				protest("couldn't parse frame %s: %s", ss[1], err)
				continue
			}
			if err := dispatcher.Dispatch(ctx, frame); err != nil {
				protest("dispatch failed: %s", err)
				continue
			}
			say("applied %s", frame.Type)
			continue
		}

		if ss = save.FindStringSubmatch(line); 0 < len(ss) {
			snap, err := snapshot(ctx, s)
			if err != nil {
				protest("snapshot failed: %s", err)
				continue
			}
			bs, err := yaml.Marshal(snap)
			if err != nil {
				return err // Internal error
			}
			if err = os.WriteFile(ss[1], bs, 0644); err != nil {
				protest("writing file: %s", err)
				continue
			}
			say("saved %s", ss[1])
			continue
		}

		if ss = load.FindStringSubmatch(line); 0 < len(ss) {
			bs, err := os.ReadFile(ss[1])
			if err != nil {
				protest("reading file '%s': %s", ss[1], err)
				continue
			}
			var snap Snapshot
			if err = yaml.Unmarshal(bs, &snap); err != nil {
				protest("loading data: %s", err)
				continue
			}
			if err = replay(ctx, s, &snap); err != nil {
				protest("replay failed: %s", err)
				continue
			}
			say("loaded %s", ss[1])
			continue
		}

		protest("unsupported command: %s", line)
	}
}

func id(s string) (data.ID, error) {
	var v data.ID
	if s == "" {
		return 0, fmt.Errorf("missing id")
	}
	if err := v.UnmarshalJSON([]byte(`"` + s + `"`)); err != nil {
		return 0, err
	}
	return v, nil
}

func countAction(kind, guild string) (store.Action, error) {
	if guild == "" {
		switch kind {
		case "channels":
			return store.CountTotalChannels{}, nil
		case "emojis":
			return store.CountTotalEmojis{}, nil
		case "guilds":
			return store.CountTotalGuilds{}, nil
		case "members":
			return store.CountTotalMembers{}, nil
		case "messages":
			return store.CountTotalMessages{}, nil
		case "presences":
			return store.CountTotalPresences{}, nil
		case "roles":
			return store.CountTotalRoles{}, nil
		case "stickers":
			return store.CountTotalStickers{}, nil
		case "users":
			return store.CountTotalUsers{}, nil
		case "voice":
			return store.CountTotalVoiceStates{}, nil
		}
		return nil, fmt.Errorf("can't count '%s'", kind)
	}

	g, err := id(guild)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "channels":
		return store.CountChannelsInGuild{GuildID: g}, nil
	case "emojis":
		return store.CountEmojisInGuild{GuildID: g}, nil
	case "members":
		return store.CountMembersInGuild{GuildID: g}, nil
	case "exact":
		return store.CountExactMembersInGuild{GuildID: g}, nil
	case "presences":
		return store.CountPresencesInGuild{GuildID: g}, nil
	case "roles":
		return store.CountRolesInGuild{GuildID: g}, nil
	case "stickers":
		return store.CountStickersInGuild{GuildID: g}, nil
	case "voice":
		return store.CountVoiceStatesInGuild{GuildID: g}, nil
	case "messages":
		// Here the id is a channel, not a guild.
		return store.CountMessagesInChannel{ChannelID: g}, nil
	}
	return nil, fmt.Errorf("can't count '%s' in a guild", kind)
}

func getAction(kind, first, second string) (store.Action, error) {
	if first == "" {
		switch kind {
		case "channels":
			return store.GetChannels{}, nil
		case "emojis":
			return store.GetEmojis{}, nil
		case "guilds":
			return store.GetGuilds{}, nil
		case "members":
			return store.GetMembers{}, nil
		case "messages":
			return store.GetMessages{}, nil
		case "presences":
			return store.GetPresences{}, nil
		case "roles":
			return store.GetRoles{}, nil
		case "stickers":
			return store.GetStickers{}, nil
		case "users":
			return store.GetUsers{}, nil
		case "voice":
			return store.GetVoiceStates{}, nil
		}
		return nil, fmt.Errorf("can't get '%s'", kind)
	}

	a, err := id(first)
	if err != nil {
		return nil, err
	}

	if second == "" {
		switch kind {
		case "channel":
			return store.GetChannelByID{ChannelID: a}, nil
		case "guild":
			return store.GetGuildByID{GuildID: a}, nil
		case "user":
			return store.GetUserByID{UserID: a}, nil
		case "channels":
			return store.GetChannelsInGuild{GuildID: a}, nil
		case "emojis":
			return store.GetEmojisInGuild{GuildID: a}, nil
		case "members":
			return store.GetMembersInGuild{GuildID: a}, nil
		case "exact":
			return store.GetExactMembersInGuild{GuildID: a}, nil
		case "messages":
			return store.GetMessagesInChannel{ChannelID: a}, nil
		case "presences":
			return store.GetPresencesInGuild{GuildID: a}, nil
		case "roles":
			return store.GetRolesInGuild{GuildID: a}, nil
		case "stickers":
			return store.GetStickersInGuild{GuildID: a}, nil
		case "voice":
			return store.GetVoiceStatesInGuild{GuildID: a}, nil
		case "events":
			return store.GetScheduledEventsInGuild{GuildID: a}, nil
		}
		return nil, fmt.Errorf("can't get '%s' by one id", kind)
	}

	b, err := id(second)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "emoji":
		return store.GetEmojiByID{GuildID: a, EmojiID: b}, nil
	case "member":
		return store.GetMemberByID{GuildID: a, UserID: b}, nil
	case "message":
		return store.GetMessageByID{ChannelID: a, MessageID: b}, nil
	case "presence":
		return store.GetPresenceByID{GuildID: a, UserID: b}, nil
	case "role":
		return store.GetRoleByID{GuildID: a, RoleID: b}, nil
	case "sticker":
		return store.GetStickerByID{GuildID: a, StickerID: b}, nil
	case "voice":
		return store.GetVoiceStateByID{GuildID: a, UserID: b}, nil
	case "event":
		return store.GetScheduledEventByID{GuildID: a, EventID: b}, nil
	case "eventusers":
		return store.GetScheduledEventUsersInEvent{GuildID: a, EventID: b}, nil
	}
	return nil, fmt.Errorf("can't get '%s' by two ids", kind)
}

func snapshot(ctx context.Context, s *store.Store) (*Snapshot, error) {
	snap := &Snapshot{}

	var err error
	if snap.Guilds, err = store.As[[]data.Guild](s.Execute(ctx, store.GetGuilds{})); err != nil {
		return nil, err
	}
	if snap.Channels, err = store.As[[]data.Channel](s.Execute(ctx, store.GetChannels{})); err != nil {
		return nil, err
	}
	if snap.Members, err = store.As[[]data.Member](s.Execute(ctx, store.GetMembers{})); err != nil {
		return nil, err
	}
	if snap.Messages, err = store.As[[]data.Message](s.Execute(ctx, store.GetMessages{})); err != nil {
		return nil, err
	}
	if snap.Users, err = store.As[[]data.User](s.Execute(ctx, store.GetUsers{})); err != nil {
		return nil, err
	}

	return snap, nil
}

func replay(ctx context.Context, s *store.Store, snap *Snapshot) error {
	for _, g := range snap.Guilds {
		if _, err := s.Execute(ctx, store.GuildCreate{Guild: g}); err != nil {
			return err
		}
	}
	for _, ch := range snap.Channels {
		if _, err := s.Execute(ctx, store.ChannelCreate{Channel: ch}); err != nil {
			return err
		}
	}
	for _, m := range snap.Members {
		if _, err := s.Execute(ctx, store.MemberAdd{Member: m}); err != nil {
			return err
		}
	}
	for _, m := range snap.Messages {
		if _, err := s.Execute(ctx, store.MessageCreate{Message: m}); err != nil {
			return err
		}
	}
	for _, u := range snap.Users {
		if _, err := s.Execute(ctx, store.UserUpdate{User: u}); err != nil {
			return err
		}
	}
	return nil
}

func doc() string {
	return `
  count KIND [GUILD]         Count cached entities (channels, guilds,
                             members, exact, messages, ...); with a
                             guild id, count within that guild.  For
                             messages the id is a channel.
  get KINDS [ID]             List entities (channels, guilds, users, ...),
                             optionally scoped to a guild or channel.
  get KIND ID [ID]           Fetch one entity (channel 3, guild 1,
                             member 1 7, message 3 5, ...).
  event FRAME                Apply a gateway event, where FRAME is JSON
                             like {"t":"CHANNEL_CREATE","d":{...}}.
  save FILENAME              Save a YAML snapshot of the cache.
  load FILENAME              Replay a YAML snapshot into the cache.
  help                       Show this documentation.
`
}
