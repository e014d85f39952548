package detect

import (
	"strings"

	"github.com/gaurav-prasanna/chatpipe/core"
	"github.com/gaurav-prasanna/chatpipe/core/normalize"
)

// ChatGPTHTML reads a chat page saved from the ChatGPT web UI. Turn discovery
// is delegated to Extractor so the markup heuristics can change without
// touching the rest of the pipeline.
type ChatGPTHTML struct {
	Extractor  core.TurnExtractor
	Normalizer core.Normalizer
}

func (ChatGPTHTML) Source() core.SourceFormat { return core.SourceChatGPTHTML }

func (ChatGPTHTML) Match(doc *Document) bool {
	return doc.Kind == KindHTML
}

func (c ChatGPTHTML) Normalize(doc *Document) (*core.Conversation, error) {
	// The extractor deletes noise nodes, so it parses its own copy of Raw
	// and doc.HTML stays intact.
	turns, err := c.Extractor.ExtractTurns(doc.Raw)
	if err != nil {
		return nil, &core.ParseError{Syntax: "html", Err: err}
	}
	if len(turns) == 0 {
		return nil, formatErr(core.SourceChatGPTHTML, core.ReasonMissingRequiredField, "no conversation turn elements found")
	}

	conv := &core.Conversation{}
	if doc.HTML != nil {
		conv.Title = strings.TrimSpace(doc.HTML.Find("title").First().Text())
	}

	for i, turn := range turns {
		role, ok := core.ParseRole(turn.Role)
		if !ok {
			return nil, formatErr(core.SourceChatGPTHTML, core.ReasonInvalidRole, "turn %d has role %q", i+1, turn.Role)
		}
		content, err := normalize.TurnContent(c.Normalizer, turn)
		if err != nil {
			return nil, formatErr(core.SourceChatGPTHTML, core.ReasonMalformedInput, "turn %d: %v", i+1, err)
		}
		// Attachment-only turns have nothing left once uploads are dropped.
		if content == "" {
			continue
		}
		conv.Messages = append(conv.Messages, core.Message{Role: role, Content: content})
	}
	return conv, nil
}
