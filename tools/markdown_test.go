package tools

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tandemchat/tandem-go/data"
)

func TestRenderMessageHTML(t *testing.T) {
	m := data.Message{Content: "this is **important**"}
	got := RenderMessageHTML(m)
	if !strings.Contains(got, "<strong>important</strong>") {
		t.Fatalf("got %q", got)
	}
}

func TestWriteMessageHTML(t *testing.T) {
	m := data.Message{
		ID:      5,
		Author:  data.User{Username: "homer <script>"},
		Content: "breakfast",
		Attachments: []data.Attachment{
			{Filename: "donut.png", URL: "https://cdn.example/donut.png", Size: 42},
		},
	}

	var buf bytes.Buffer
	if err := WriteMessageHTML(m, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"homer &lt;script&gt;",
		"breakfast",
		"donut.png",
		"42 bytes",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}
