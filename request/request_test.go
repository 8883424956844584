package request

import (
	"testing"

	"github.com/tandemchat/tandem-go/data"
)

func TestBuildersAreValues(t *testing.T) {
	base := WebhookEdit{}.WithName("spidey bot")

	a := base.WithChannel(1)
	b := base.WithChannel(2)

	if got := a.Request()["channel_id"]; got != data.ID(1) {
		t.Fatalf("a channel == %v", got)
	}
	if got := b.Request()["channel_id"]; got != data.ID(2) {
		t.Fatalf("b channel == %v", got)
	}
	// The shared base never learned about a channel.
	if _, have := base.Request()["channel_id"]; have {
		t.Fatal("base mutated")
	}
}

func TestUntouchedFieldsStayAbsent(t *testing.T) {
	req := GuildMemberEdit{}.WithMute(true).Request()

	if len(req) != 1 {
		t.Fatalf("req == %v", req)
	}
	if req["mute"] != true {
		t.Fatalf("mute == %v", req["mute"])
	}
	if _, have := req["nick"]; have {
		t.Fatal("nick present without being set")
	}
}

func TestClearMeansNull(t *testing.T) {
	req := GuildMemberEdit{}.ClearNickname().DisconnectVoice().Request()

	for _, key := range []string{"nick", "channel_id"} {
		v, have := req[key]
		if !have {
			t.Fatalf("%s absent", key)
		}
		if v != nil {
			t.Fatalf("%s == %v", key, v)
		}
	}

	req = GuildMemberEdit{}.WithNickname("muscle memory").Request()
	if req["nick"] != "muscle memory" {
		t.Fatalf("nick == %v", req["nick"])
	}

	// Clear after With wins, and vice versa.
	req = GuildMemberEdit{}.WithNickname("muscle memory").ClearNickname().Request()
	if req["nick"] != nil {
		t.Fatalf("nick == %v", req["nick"])
	}
}

func TestRequestReturnsFreshMap(t *testing.T) {
	b := ApplicationEmojiEdit{}.WithName("blobwave")

	first := b.Request()
	first["name"] = "tampered"

	if got := b.Request()["name"]; got != "blobwave" {
		t.Fatalf("name == %v", got)
	}
}

func TestReasonRidesAlong(t *testing.T) {
	b := StageChannelEdit{}.WithName("town hall").WithReason("rename sweep")
	if b.Reason() != "rename sweep" {
		t.Fatalf("reason == %q", b.Reason())
	}
	// The reason is a header, not a payload field.
	if _, have := b.Request()["reason"]; have {
		t.Fatal("reason leaked into payload")
	}
}
