package entity

import (
	"context"
	"strings"

	"github.com/tandemchat/tandem-go/data"
	"github.com/tandemchat/tandem-go/rest"
	"github.com/tandemchat/tandem-go/tools"
)

// spoilerPrefix marks an attachment whose preview should be hidden.
const spoilerPrefix = "SPOILER_"

// Attachment is a file attached to a message.
type Attachment struct {
	Data data.Attachment
}

// NewAttachment wraps an attachment snapshot.
func NewAttachment(d data.Attachment) Attachment {
	return Attachment{Data: d}
}

// Filename is the name the attachment was uploaded with.
func (a Attachment) Filename() string { return a.Data.Filename }

// Size is the attachment's size in bytes.
func (a Attachment) Size() int { return a.Data.Size }

// URL is the source URL of the file.
func (a Attachment) URL() string { return a.Data.URL }

// ProxyURL is the proxied URL of the file.
func (a Attachment) ProxyURL() string { return a.Data.ProxyURL }

// ContentType is the attachment's media type, or "" when the
// platform didn't detect one.
func (a Attachment) ContentType() string {
	if a.Data.ContentType == nil {
		return ""
	}
	return *a.Data.ContentType
}

// Height returns the image height and whether the platform set one.
func (a Attachment) Height() (int, bool) {
	if a.Data.Height == nil {
		return 0, false
	}
	return *a.Data.Height, true
}

// Width returns the image width and whether the platform set one.
func (a Attachment) Width() (int, bool) {
	if a.Data.Width == nil {
		return 0, false
	}
	return *a.Data.Width, true
}

// IsEphemeral reports whether the attachment came from an ephemeral
// message and will disappear with it.
func (a Attachment) IsEphemeral() bool { return a.Data.Ephemeral }

// IsSpoiler reports whether the attachment is hidden behind a
// spoiler cover.
func (a Attachment) IsSpoiler() bool {
	return strings.HasPrefix(a.Data.Filename, spoilerPrefix)
}

// IsImage guesses from the dimension fields, which the platform
// only sets for images and videos.
func (a Attachment) IsImage() bool {
	return a.Data.Height != nil && a.Data.Width != nil
}

// Message is a message in a channel.
type Message struct {
	Data data.Message

	rest *rest.Client
}

// NewMessage wraps a message snapshot.
func NewMessage(client *rest.Client, d data.Message) Message {
	return Message{Data: d, rest: client}
}

// Content is the raw markdown content.
func (m Message) Content() string { return m.Data.Content }

// Author is the user that sent the message.
func (m Message) Author() data.User { return m.Data.Author }

// IsEdited reports whether the message has been edited.
func (m Message) IsEdited() bool { return m.Data.EditedAt != nil }

// Attachments wraps the message's raw attachments.
func (m Message) Attachments() []Attachment {
	out := make([]Attachment, len(m.Data.Attachments))
	for i, a := range m.Data.Attachments {
		out[i] = NewAttachment(a)
	}
	return out
}

// ContentHTML renders the message's markdown content as HTML.
func (m Message) ContentHTML() string {
	return tools.RenderMessageHTML(m.Data)
}

// Edit replaces the message content.
func (m Message) Edit(ctx context.Context, content string) (Message, error) {
	updated, err := m.rest.Channels.EditMessage(ctx, m.Data.ChannelID, m.Data.ID, rest.Payload{"content": content})
	if err != nil {
		return m, err
	}
	return NewMessage(m.rest, *updated), nil
}

// Delete removes the message.
func (m Message) Delete(ctx context.Context, reason string) error {
	return m.rest.Channels.DeleteMessage(ctx, m.Data.ChannelID, m.Data.ID, reason)
}
