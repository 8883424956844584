package entity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/request"
	"github.com/tandemchat/tandem-go/rest"
)

var ctx = context.Background()

func testClient(t *testing.T, handler http.HandlerFunc) *rest.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return rest.NewClient("t", rest.WithBaseURL(srv.URL))
}

func strPtr(s string) *string { return &s }

func TestAttachmentSpoiler(t *testing.T) {
	plain := NewAttachment(data.Attachment{Filename: "cat.png"})
	hidden := NewAttachment(data.Attachment{Filename: "SPOILER_cat.png"})

	if plain.IsSpoiler() {
		t.Fatal("plain marked spoiler")
	}
	if !hidden.IsSpoiler() {
		t.Fatal("hidden not marked spoiler")
	}
}

func TestApplicationEmojiImageURL(t *testing.T) {
	id := data.ID(42)

	still := NewApplicationEmoji(nil, 1, data.Emoji{ID: &id, Animated: false})
	url, err := still.ImageURL()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(url, "/emojis/42.png") {
		t.Fatalf("url == %q", url)
	}

	moving := NewApplicationEmoji(nil, 1, data.Emoji{ID: &id, Animated: true})
	url, _ = moving.ImageURL()
	if !strings.HasSuffix(url, "/emojis/42.gif") {
		t.Fatalf("url == %q", url)
	}

	unicode := NewApplicationEmoji(nil, 1, data.Emoji{Name: strPtr("🌮")})
	if _, err := unicode.ImageURL(); err != ErrNoEmojiID {
		t.Fatalf("err == %v", err)
	}
}

func TestMemberAccessors(t *testing.T) {
	joined := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMember(nil, data.Member{
		User:     data.User{ID: 7, Username: "homer"},
		Nick:     strPtr("Homer"),
		JoinedAt: joined,
		Pending:  true,
	})

	if got := m.Nickname(); got != "Homer" {
		t.Fatalf("nickname == %q", got)
	}
	if got := m.JoinedAt(); !got.Equal(joined) {
		t.Fatalf("joined == %v", got)
	}
	if !m.IsPending() {
		t.Fatal("not pending")
	}
	if _, boosting := m.PremiumSince(); boosting {
		t.Fatal("boosting")
	}

	bare := NewMember(nil, data.Member{User: data.User{Username: "homer"}})
	if got := bare.Nickname(); got != "" {
		t.Fatalf("nickname == %q", got)
	}
}

func TestChannelAccessors(t *testing.T) {
	nsfw := true
	limit := 30
	c := NewChannel(nil, data.Channel{
		Topic:            strPtr("donuts"),
		NSFW:             &nsfw,
		RateLimitPerUser: &limit,
	})

	if got := c.Topic(); got != "donuts" {
		t.Fatalf("topic == %q", got)
	}
	if !c.IsNSFW() {
		t.Fatal("not nsfw")
	}
	if got := c.RateLimit(); got != 30 {
		t.Fatalf("rate limit == %d", got)
	}

	bare := NewChannel(nil, data.Channel{})
	if bare.IsNSFW() || bare.Topic() != "" || bare.RateLimit() != 0 {
		t.Fatal("bare channel has leftovers")
	}
}

func TestWebhookAvatarURL(t *testing.T) {
	w := NewWebhook(nil, data.Webhook{ID: 9, Avatar: strPtr("a1b2")})
	if got := w.AvatarURL(); !strings.HasSuffix(got, "/avatars/9/a1b2.png") {
		t.Fatalf("url == %q", got)
	}

	if got := NewWebhook(nil, data.Webhook{ID: 9}).AvatarURL(); got != "" {
		t.Fatalf("url == %q", got)
	}
}

func TestGuildEmojiFormat(t *testing.T) {
	id := data.ID(42)

	e := NewGuildEmoji(nil, 1, data.Emoji{ID: &id, Name: strPtr("blobwave")})
	if got := e.Format(); got != "<:blobwave:42>" {
		t.Fatalf("got %q", got)
	}

	e = NewGuildEmoji(nil, 1, data.Emoji{ID: &id, Name: strPtr("blobwave"), Animated: true})
	if got := e.Format(); got != "<a:blobwave:42>" {
		t.Fatalf("got %q", got)
	}

	e = NewGuildEmoji(nil, 1, data.Emoji{Name: strPtr("🌮")})
	if got := e.Format(); got != "🌮" {
		t.Fatalf("got %q", got)
	}
}

func TestMemberEditDelegates(t *testing.T) {
	var sent map[string]interface{}
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PATCH" || r.URL.Path != "/guilds/10/members/7" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&sent); err != nil {
			t.Fatal(err)
		}
		json.NewEncoder(w).Encode(data.Member{
			User: data.User{ID: 7, Username: "u"},
			Nick: strPtr("newnick"),
		})
	})

	m := NewMember(client, data.Member{GuildID: 10, User: data.User{ID: 7, Username: "u"}})

	updated, err := m.Edit(ctx, request.GuildMemberEdit{}.
		WithNickname("newnick").
		WithMute(true))
	if err != nil {
		t.Fatal(err)
	}

	if sent["nick"] != "newnick" || sent["mute"] != true {
		t.Fatalf("sent == %v", sent)
	}
	if updated.DisplayName() != "newnick" {
		t.Fatalf("display == %q", updated.DisplayName())
	}
	// The original wrapper still holds the old snapshot.
	if m.DisplayName() != "u" {
		t.Fatalf("original display == %q", m.DisplayName())
	}
}

func TestChannelNarrowing(t *testing.T) {
	forum := NewChannel(nil, data.Channel{ID: 1, Type: data.ChannelTypeForum})
	if _, err := forum.AsForum(); err != nil {
		t.Fatal(err)
	}
	if _, err := forum.AsStage(); err != ErrWrongChannelType {
		t.Fatalf("err == %v", err)
	}

	text := NewChannel(nil, data.Channel{ID: 2, Type: data.ChannelTypeText})
	if _, err := text.AsForum(); err != ErrWrongChannelType {
		t.Fatalf("err == %v", err)
	}
}

func TestWebhookEditSendsReason(t *testing.T) {
	var reason string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		reason = r.Header.Get("X-Audit-Log-Reason")
		json.NewEncoder(w).Encode(data.Webhook{ID: 100, Name: strPtr("renamed")})
	})

	wh := NewWebhook(client, data.Webhook{ID: 100, Name: strPtr("old")})
	updated, err := wh.Edit(ctx, request.WebhookEdit{}.
		WithName("renamed").
		WithReason("spring cleaning"))
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name() != "renamed" {
		t.Fatalf("name == %q", updated.Name())
	}
	if reason == "" {
		t.Fatal("no reason header")
	}
}

func TestScheduledEventNextOccurrence(t *testing.T) {
	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	oneShot := NewScheduledEvent(nil, data.ScheduledEvent{
		StartTime: start,
		Status:    data.EventScheduled,
	})
	next, ok := oneShot.NextOccurrence(start.Add(-time.Hour))
	if !ok || !next.Equal(start) {
		t.Fatalf("next == %v, ok == %v", next, ok)
	}
	if _, ok := oneShot.NextOccurrence(start.Add(time.Hour)); ok {
		t.Fatal("one-shot recurred")
	}

	// Every Monday at 18:00.
	weekly := NewScheduledEvent(nil, data.ScheduledEvent{
		StartTime:  start,
		Status:     data.EventScheduled,
		Recurrence: strPtr("0 18 * * 1"),
	})
	next, ok = weekly.NextOccurrence(start)
	if !ok {
		t.Fatal("no next occurrence")
	}
	if next.Weekday() != time.Monday || next.Hour() != 18 {
		t.Fatalf("next == %v", next)
	}

	canceled := NewScheduledEvent(nil, data.ScheduledEvent{
		StartTime:  start,
		Status:     data.EventCanceled,
		Recurrence: strPtr("0 18 * * 1"),
	})
	if _, ok := canceled.NextOccurrence(start); ok {
		t.Fatal("canceled event recurred")
	}
}

func TestMessageContentHTML(t *testing.T) {
	m := NewMessage(nil, data.Message{Content: "hello **world**"})
	if got := m.ContentHTML(); !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("got %q", got)
	}
}
