package core

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Role is the speaker of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole matches s case-sensitively against the recognized roles.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleSystem, RoleUser, RoleAssistant:
		return r, true
	}
	return "", false
}

// Label returns the capitalized role name used in rendered headings.
// A Caser carries state between calls, so each call gets its own.
func (r Role) Label() string {
	return cases.Title(language.English).String(string(r))
}

// SourceFormat names the input schema a Conversation was detected from.
type SourceFormat string

const (
	SourcePlayground  SourceFormat = "playground"
	SourceWorkbench   SourceFormat = "workbench"
	SourceChatGPTHTML SourceFormat = "chatgpt_html"
)

// Format selects the output representation.
type Format string

const (
	FormatMarkdown  Format = "markdown"
	FormatWorkbench Format = "workbench"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatMarkdown, FormatWorkbench:
		return f, nil
	case "":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unsupported output format %q (want markdown or workbench)", s)
}

// Message is one turn of a conversation.
type Message struct {
	Role    Role
	Content string
}

// Conversation is the canonical model every input is normalized into.
// Messages are in conversation order.
type Conversation struct {
	Messages  []Message
	Model     string // only set for Playground input
	Title     string
	Source    SourceFormat
	CreatedAt time.Time
}

// Validate checks the invariants renderers rely on: at least one message,
// and every role recognized.
func (c *Conversation) Validate() error {
	if len(c.Messages) == 0 {
		return &FormatError{Reason: ReasonEmptyConversation, Source: c.Source}
	}
	for i, m := range c.Messages {
		if _, ok := ParseRole(string(m.Role)); !ok {
			return &FormatError{
				Reason: ReasonInvalidRole,
				Source: c.Source,
				Detail: fmt.Sprintf("message %d has role %q", i+1, m.Role),
			}
		}
	}
	return nil
}
