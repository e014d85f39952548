package detect

import (
	"github.com/gaurav-prasanna/chatpipe/core"
)

// Workbench reads arrays of explicit {role, content} objects, either bare or
// wrapped in a {"messages": [...]} envelope.
type Workbench struct{}

func (Workbench) Source() core.SourceFormat { return core.SourceWorkbench }

func (Workbench) Match(doc *Document) bool {
	if doc.Kind != KindJSON {
		return false
	}
	if obj, ok := asObject(doc.JSON); ok {
		return hasKey(obj, "messages") && !hasKey(obj, "input") && !hasKey(obj, "turns")
	}
	if arr, ok := asArray(doc.JSON); ok {
		return everyElement(arr, func(obj map[string]any) bool { return hasKey(obj, "role") })
	}
	return false
}

func (Workbench) Normalize(doc *Document) (*core.Conversation, error) {
	conv := &core.Conversation{}

	list, ok := asArray(doc.JSON)
	if !ok {
		obj, _ := asObject(doc.JSON)
		if list, ok = asArray(obj["messages"]); !ok {
			return nil, formatErr(core.SourceWorkbench, core.ReasonMalformedInput, `"messages" must be an array`)
		}
		title, _, ok := stringField(obj, "title")
		if !ok {
			return nil, formatErr(core.SourceWorkbench, core.ReasonMalformedInput, `"title" must be a string`)
		}
		conv.Title = title
	}

	conv.Messages = make([]core.Message, 0, len(list))
	for i, el := range list {
		m, ok := asObject(el)
		if !ok {
			return nil, formatErr(core.SourceWorkbench, core.ReasonMalformedInput, "message %d is not an object", i+1)
		}

		rawRole, present, ok := stringField(m, "role")
		switch {
		case !present:
			return nil, formatErr(core.SourceWorkbench, core.ReasonMissingRequiredField, `message %d has no "role"`, i+1)
		case !ok:
			return nil, formatErr(core.SourceWorkbench, core.ReasonMalformedInput, `message %d: "role" must be a string`, i+1)
		}
		role, valid := core.ParseRole(rawRole)
		if !valid {
			return nil, formatErr(core.SourceWorkbench, core.ReasonInvalidRole, "message %d has role %q", i+1, rawRole)
		}

		key := "content"
		if !hasKey(m, key) && hasKey(m, "text") {
			key = "text"
		}
		content, present, ok := stringField(m, key)
		switch {
		case !present:
			return nil, formatErr(core.SourceWorkbench, core.ReasonMissingRequiredField, `message %d has no "content"`, i+1)
		case !ok:
			return nil, formatErr(core.SourceWorkbench, core.ReasonMalformedInput, `message %d: %q must be a string`, i+1, key)
		}

		conv.Messages = append(conv.Messages, core.Message{Role: role, Content: content})
	}
	return conv, nil
}
