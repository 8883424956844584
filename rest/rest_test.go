package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tandemchat/tandem-go/data"
)

var ctx = context.Background()

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("token-of-the-test-bot", WithBaseURL(srv.URL))
}

func TestWebhookLifecycle(t *testing.T) {
	hooks := map[string]data.Webhook{}

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bot token-of-the-test-bot" {
			t.Fatalf("auth header %q", got)
		}
		switch r.Method + " " + r.URL.Path {
		case "POST /channels/1/webhooks":
			var body map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			name := body["name"].(string)
			hook := data.Webhook{ID: 100, ChannelID: 1, Name: &name}
			hooks["100"] = hook
			json.NewEncoder(w).Encode(hook)
		case "GET /channels/1/webhooks":
			out := []data.Webhook{}
			for _, h := range hooks {
				out = append(out, h)
			}
			json.NewEncoder(w).Encode(out)
		case "GET /webhooks/100":
			json.NewEncoder(w).Encode(hooks["100"])
		case "PATCH /webhooks/100":
			var body map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			h := hooks["100"]
			name := body["name"].(string)
			h.Name = &name
			hooks["100"] = h
			json.NewEncoder(w).Encode(h)
		case "DELETE /webhooks/100":
			delete(hooks, "100")
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})

	hook, err := client.Webhooks.CreateWebhook(ctx, 1, Payload{"name": "spidey bot"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if hook.ID != 100 || *hook.Name != "spidey bot" {
		t.Fatalf("hook == %+v", hook)
	}

	list, err := client.Webhooks.GetChannelWebhooks(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("list == %v", list)
	}

	hook, err = client.Webhooks.ModifyWebhook(ctx, 100, Payload{"name": "renamed"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if *hook.Name != "renamed" {
		t.Fatalf("hook == %+v", hook)
	}

	if err := client.Webhooks.DeleteWebhook(ctx, 100, ""); err != nil {
		t.Fatal(err)
	}
	if len(hooks) != 0 {
		t.Fatalf("hooks == %v", hooks)
	}
}

func TestAuditReasonHeader(t *testing.T) {
	var reason string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		reason = r.Header.Get("X-Audit-Log-Reason")
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.Channels.DeleteChannel(ctx, 1, "cleaning house"); err != nil {
		t.Fatal(err)
	}
	if reason != "cleaning%20house" {
		t.Fatalf("reason == %q", reason)
	}
}

func TestErrorMapping(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    10015,
			"message": "Unknown Webhook",
		})
	})

	_, err := client.Webhooks.GetWebhook(ctx, 7)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err == %v", err)
	}
	if apiErr.StatusCode != 404 || apiErr.Code != 10015 || apiErr.Message != "Unknown Webhook" {
		t.Fatalf("apiErr == %+v", apiErr)
	}
}

func TestNullClearsField(t *testing.T) {
	var raw map[string]json.RawMessage
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatal(err)
		}
		json.NewEncoder(w).Encode(data.Webhook{ID: 100})
	})

	// An explicit nil must survive as JSON null: the API treats a
	// missing key and a null key differently.
	_, err := client.Webhooks.ModifyWebhook(ctx, 100, Payload{"avatar": nil}, "")
	if err != nil {
		t.Fatal(err)
	}
	v, have := raw["avatar"]
	if !have {
		t.Fatal("avatar key missing")
	}
	if string(v) != "null" {
		t.Fatalf("avatar == %s", v)
	}
}
