// Package markdown renders text display content into sanitized HTML for local previews.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// mentionRegex matches user, role and channel mentions such as <@123>, <@&123>, <#123>.
var mentionRegex = regexp.MustCompile(`&lt;(@&amp;|@!?|#)(\d+)&gt;`)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	md := goldmark.New(
		goldmark.WithRendererOptions(html.WithHardWraps()),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)

	p := bluemonday.UGCPolicy()
	p.AllowElements("span")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^mention-(user|role|channel)$`)).OnElements("span")
	p.AllowAttrs("data-id").Matching(regexp.MustCompile(`^\d+$`)).OnElements("span")
	p.RequireNoFollowOnLinks(true)

	return &Renderer{md: md, policy: p}
}

// Render converts markdown to HTML, highlights mentions and strips anything unsafe.
func (r *Renderer) Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	withMentions := mentionRegex.ReplaceAllStringFunc(buf.String(), func(m string) string {
		parts := mentionRegex.FindStringSubmatch(m)
		class := "mention-user"
		switch parts[1] {
		case "@&amp;":
			class = "mention-role"
		case "#":
			class = "mention-channel"
		}
		return `<span class="` + class + `" data-id="` + parts[2] + `">` + m + `</span>`
	})
	return strings.TrimSpace(r.policy.Sanitize(withMentions)), nil
}
