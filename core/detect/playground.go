package detect

import (
	"errors"
	"slices"

	"github.com/gaurav-prasanna/chatpipe/core"
)

// Playground reads vendor playground exports. Two shapes are accepted:
//
//	{"model": "...", "instructions": "...", "input": [{"role": "user", "content": [{"type": "input_text", "text": "..."}]}]}
//	{"model": "...", "turns": [{"prompt": "...", "response": "..."}]}
//
// and a bare array of prompt/response turns.
type Playground struct{}

func (Playground) Source() core.SourceFormat { return core.SourcePlayground }

func (Playground) Match(doc *Document) bool {
	if doc.Kind != KindJSON {
		return false
	}
	if obj, ok := asObject(doc.JSON); ok {
		return (hasKey(obj, "input") || hasKey(obj, "turns")) && !hasKey(obj, "messages")
	}
	if arr, ok := asArray(doc.JSON); ok {
		return len(arr) > 0 && everyElement(arr, isPromptTurn)
	}
	return false
}

func isPromptTurn(obj map[string]any) bool {
	return !hasKey(obj, "role") && (hasKey(obj, "prompt") || hasKey(obj, "response"))
}

func (p Playground) Normalize(doc *Document) (*core.Conversation, error) {
	if arr, ok := asArray(doc.JSON); ok {
		msgs, err := p.turnMessages(arr)
		if err != nil {
			return nil, err
		}
		return &core.Conversation{Messages: msgs}, nil
	}

	obj, _ := asObject(doc.JSON)
	conv := &core.Conversation{}

	model, _, ok := stringField(obj, "model")
	if !ok {
		return nil, formatErr(core.SourcePlayground, core.ReasonMalformedInput, `"model" must be a string`)
	}
	conv.Model = model

	title, _, ok := stringField(obj, "title")
	if !ok {
		return nil, formatErr(core.SourcePlayground, core.ReasonMalformedInput, `"title" must be a string`)
	}
	conv.Title = title

	if hasKey(obj, "input") {
		items, ok := asArray(obj["input"])
		if !ok {
			return nil, formatErr(core.SourcePlayground, core.ReasonMalformedInput, `"input" must be an array`)
		}
		instructions, _, ok := stringField(obj, "instructions")
		if !ok {
			return nil, formatErr(core.SourcePlayground, core.ReasonMalformedInput, `"instructions" must be a string`)
		}
		if instructions != "" {
			conv.Messages = append(conv.Messages, core.Message{Role: core.RoleSystem, Content: instructions})
		}
		msgs, err := p.inputMessages(items)
		if err != nil {
			return nil, err
		}
		conv.Messages = append(conv.Messages, msgs...)
		return conv, nil
	}

	turns, ok := asArray(obj["turns"])
	if !ok {
		return nil, formatErr(core.SourcePlayground, core.ReasonMalformedInput, `"turns" must be an array`)
	}
	msgs, err := p.turnMessages(turns)
	if err != nil {
		return nil, err
	}
	conv.Messages = msgs
	return conv, nil
}

// turnMessages expands prompt/response pairs: a non-empty prompt becomes a
// user message, a non-empty response an assistant message, in that order.
func (Playground) turnMessages(turns []any) ([]core.Message, error) {
	var msgs []core.Message
	for i, el := range turns {
		turn, ok := asObject(el)
		if !ok {
			return nil, formatErr(core.SourcePlayground, core.ReasonMalformedInput, "turn %d is not an object", i+1)
		}
		prompt, hasPrompt, ok := stringField(turn, "prompt")
		if !ok {
			return nil, formatErr(core.SourcePlayground, core.ReasonMalformedInput, `turn %d: "prompt" must be a string`, i+1)
		}
		response, hasResponse, ok := stringField(turn, "response")
		if !ok {
			return nil, formatErr(core.SourcePlayground, core.ReasonMalformedInput, `turn %d: "response" must be a string`, i+1)
		}
		if !hasPrompt && !hasResponse {
			return nil, formatErr(core.SourcePlayground, core.ReasonMissingRequiredField, `turn %d has neither "prompt" nor "response"`, i+1)
		}
		if prompt != "" {
			msgs = append(msgs, core.Message{Role: core.RoleUser, Content: prompt})
		}
		if response != "" {
			msgs = append(msgs, core.Message{Role: core.RoleAssistant, Content: response})
		}
	}
	return msgs, nil
}

// partTypes lists, per playground role, the content part types that carry
// the message text.
var partTypes = map[string]struct {
	role  core.Role
	types []string
}{
	"user":      {core.RoleUser, []string{"input_text", "text"}},
	"assistant": {core.RoleAssistant, []string{"output_text", "text"}},
	"system":    {core.RoleSystem, []string{"input_text", "text"}},
	"developer": {core.RoleSystem, []string{"input_text", "text"}},
}

// inputMessages converts Responses-style input items. Items without a role
// that are not messages (tool calls, reasoning) carry no conversation text
// and are skipped, as are messages whose text is empty.
func (Playground) inputMessages(items []any) ([]core.Message, error) {
	var msgs []core.Message
	for i, el := range items {
		item, ok := asObject(el)
		if !ok {
			return nil, formatErr(core.SourcePlayground, core.ReasonMalformedInput, "input item %d is not an object", i+1)
		}

		role, hasRole, ok := stringField(item, "role")
		if !ok {
			return nil, formatErr(core.SourcePlayground, core.ReasonMalformedInput, `input item %d: "role" must be a string`, i+1)
		}
		if !hasRole {
			typ, _, _ := stringField(item, "type")
			if typ == "" || typ == "message" {
				return nil, formatErr(core.SourcePlayground, core.ReasonMissingRequiredField, `input item %d has no "role"`, i+1)
			}
			continue
		}

		spec, known := partTypes[role]
		if !known {
			return nil, formatErr(core.SourcePlayground, core.ReasonInvalidRole, "input item %d has role %q", i+1, role)
		}

		text, err := partText(item["content"], spec.types)
		if err != nil {
			return nil, formatErr(core.SourcePlayground, core.ReasonMalformedInput, "input item %d: %v", i+1, err)
		}
		if text == "" {
			continue
		}
		msgs = append(msgs, core.Message{Role: spec.role, Content: text})
	}
	return msgs, nil
}

// partText returns the first text part of one of the wanted types. Content
// may also be a plain string.
func partText(content any, types []string) (string, error) {
	switch c := content.(type) {
	case nil:
		return "", nil
	case string:
		return c, nil
	case []any:
		for _, el := range c {
			part, ok := asObject(el)
			if !ok {
				return "", errors.New("content part is not an object")
			}
			typ, _, _ := stringField(part, "type")
			if !slices.Contains(types, typ) {
				continue
			}
			text, _, ok := stringField(part, "text")
			if !ok {
				return "", errors.New(`content part "text" must be a string`)
			}
			return text, nil
		}
		return "", nil
	}
	return "", errors.New(`"content" must be a string or an array of parts`)
}
