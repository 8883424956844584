// Package tools holds odds and ends that help humans look at
// platform data: markdown rendering, mostly.
package tools

import (
	"fmt"
	"html"
	"io"

	md "github.com/russross/blackfriday/v2"

	"github.com/tandemchat/tandem-go/data"
)

// RenderMessageHTML renders a message's markdown content as an HTML
// fragment.
func RenderMessageHTML(m data.Message) string {
	return string(md.Run([]byte(m.Content)))
}

// WriteMessageHTML writes a fuller HTML rendering of the message:
// the author line, the rendered content, and an attachment listing.
func WriteMessageHTML(m data.Message, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	f(`<div class="message" id="%s">`, m.ID)
	f(`<div class="author">%s</div>`, html.EscapeString(m.Author.Username))
	f(`<div class="content">%s</div>`, md.Run([]byte(m.Content)))

	if 0 < len(m.Attachments) {
		f(`<ul class="attachments">`)
		for _, a := range m.Attachments {
			f(`<li><a href="%s">%s</a> (%d bytes)</li>`,
				html.EscapeString(a.URL), html.EscapeString(a.Filename), a.Size)
		}
		f(`</ul>`)
	}

	f(`</div>`)

	return nil
}
