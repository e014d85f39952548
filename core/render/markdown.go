// Package render provides output renderers for the chatpipe pipeline.
// This file implements the Markdown renderer, which produces a readable
// transcript with one section per message.
package render

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/gaurav-prasanna/chatpipe/core"
)

// DefaultTitle heads transcripts whose conversation has no title.
const DefaultTitle = "Chat Transcript"

// timestampLayout matches how exports are usually dated by hand.
const timestampLayout = "2006-01-02 15:04:05"

// MarkdownRenderer writes a conversation as a Markdown transcript.
type MarkdownRenderer struct {
	// Frontmatter prepends a YAML block describing the conversation.
	Frontmatter bool
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer(frontmatter bool) *MarkdownRenderer {
	return &MarkdownRenderer{Frontmatter: frontmatter}
}

// frontmatter is the YAML header written when Frontmatter is set.
type frontmatter struct {
	Title    string `yaml:"title"`
	Model    string `yaml:"model,omitempty"`
	Source   string `yaml:"source,omitempty"`
	Messages int    `yaml:"messages"`
	Created  string `yaml:"created,omitempty"`
}

// Render emits the title heading, the model and timestamp lines when known,
// then a level-2 role heading and the verbatim content of every message.
func (r *MarkdownRenderer) Render(conv *core.Conversation) ([]byte, error) {
	title := strings.Join(strings.Fields(conv.Title), " ")
	if title == "" {
		title = DefaultTitle
	}

	var b strings.Builder

	if r.Frontmatter {
		fm := frontmatter{
			Title:    title,
			Model:    conv.Model,
			Source:   string(conv.Source),
			Messages: len(conv.Messages),
		}
		if !conv.CreatedAt.IsZero() {
			fm.Created = conv.CreatedAt.Format(timestampLayout)
		}
		data, err := yaml.Marshal(fm)
		if err != nil {
			return nil, fmt.Errorf("marshaling frontmatter: %w", err)
		}
		b.WriteString("---\n")
		b.Write(data)
		b.WriteString("---\n\n")
	}

	fmt.Fprintf(&b, "# %s\n\n", title)

	var meta bool
	if conv.Model != "" {
		fmt.Fprintf(&b, "**Model:** %s\n", conv.Model)
		meta = true
	}
	if !conv.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "**Timestamp:** %s\n", conv.CreatedAt.Format(timestampLayout))
		meta = true
	}
	if meta {
		b.WriteString("\n")
	}

	for i, m := range conv.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n", m.Role.Label(), m.Content)
	}

	return []byte(b.String()), nil
}

// Suffix returns the output name suffix for Markdown output.
func (r *MarkdownRenderer) Suffix() string {
	return ".md"
}
