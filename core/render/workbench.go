// Package render: Workbench renderer.
// Builds the Workbench JSON array from a conversation. The Workbench schema
// only has slots for role and content, so the conversation's model and title
// are dropped here on purpose.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/chatpipe/core"
)

// WorkbenchMessage is one element of a Workbench JSON document. The key
// names and role spellings are the ones the Workbench detector accepts, so
// Workbench output can be fed back in unchanged.
type WorkbenchMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// workbenchEnvelope is the {"messages": [...]} wrapper older tools expect.
type workbenchEnvelope struct {
	Messages []WorkbenchMessage `json:"messages"`
}

// WorkbenchRenderer produces Workbench JSON.
type WorkbenchRenderer struct {
	// Envelope wraps the array in {"messages": [...]}.
	Envelope bool
}

// NewWorkbenchRenderer creates a WorkbenchRenderer.
func NewWorkbenchRenderer(envelope bool) *WorkbenchRenderer {
	return &WorkbenchRenderer{Envelope: envelope}
}

// Render encodes the messages in order as indented JSON. HTML characters
// are written as-is rather than \u-escaped. Keys always come out as role
// then content, and \uXXXX escapes in the input have already been decoded,
// so re-rendering a Workbench file only reproduces it when it used that
// key order and literal characters.
func (r *WorkbenchRenderer) Render(conv *core.Conversation) ([]byte, error) {
	msgs := make([]WorkbenchMessage, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		msgs = append(msgs, WorkbenchMessage{Role: string(m.Role), Content: m.Content})
	}

	var v any = msgs
	if r.Envelope {
		v = workbenchEnvelope{Messages: msgs}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Suffix returns the output name suffix for Workbench output.
func (r *WorkbenchRenderer) Suffix() string {
	return "_converted.json"
}
