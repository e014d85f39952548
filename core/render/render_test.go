package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/chatpipe/core"
)

func greeting() *core.Conversation {
	return &core.Conversation{
		Source: core.SourceWorkbench,
		Messages: []core.Message{
			{Role: core.RoleUser, Content: "Hi"},
			{Role: core.RoleAssistant, Content: "Hello!"},
		},
	}
}

func playground() *core.Conversation {
	return &core.Conversation{
		Source:    core.SourcePlayground,
		Model:     "gpt-x",
		Title:     "Math",
		CreatedAt: time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC),
		Messages: []core.Message{
			{Role: core.RoleUser, Content: "2+2?"},
			{Role: core.RoleAssistant, Content: "4"},
		},
	}
}

func TestMarkdownRender(t *testing.T) {
	tests := []struct {
		name string
		conv *core.Conversation
		want string
	}{
		{
			name: "default title",
			conv: greeting(),
			want: "# Chat Transcript\n\n## User\n\nHi\n\n## Assistant\n\nHello!\n",
		},
		{
			name: "model and timestamp",
			conv: playground(),
			want: "# Math\n\n**Model:** gpt-x\n**Timestamp:** 2026-10-17 09:30:00\n\n" +
				"## User\n\n2+2?\n\n## Assistant\n\n4\n",
		},
		{
			name: "system message and multi-line content",
			conv: &core.Conversation{
				Title: "Multi\nline   title",
				Messages: []core.Message{
					{Role: core.RoleSystem, Content: "Be brief."},
					{Role: core.RoleAssistant, Content: "one\ntwo\n\n*three*"},
				},
			},
			want: "# Multi line title\n\n## System\n\nBe brief.\n\n## Assistant\n\none\ntwo\n\n*three*\n",
		},
	}

	r := NewMarkdownRenderer(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.conv)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarkdownRender_Frontmatter(t *testing.T) {
	got, err := NewMarkdownRenderer(true).Render(playground())
	require.NoError(t, err)

	out := string(got)
	require.True(t, strings.HasPrefix(out, "---\n"))
	head, body, found := strings.Cut(strings.TrimPrefix(out, "---\n"), "---\n\n")
	require.True(t, found)

	assert.Contains(t, head, "title: Math")
	assert.Contains(t, head, "model: gpt-x")
	assert.Contains(t, head, "source: playground")
	assert.Contains(t, head, "messages: 2")
	assert.True(t, strings.HasPrefix(body, "# Math\n"))
}

func TestMarkdownRender_UserThenAssistantOrder(t *testing.T) {
	got, err := NewMarkdownRenderer(false).Render(greeting())
	require.NoError(t, err)

	out := string(got)
	user := strings.Index(out, "User")
	hi := strings.Index(out, "Hi")
	assistant := strings.Index(out, "Assistant")
	hello := strings.Index(out, "Hello!")
	assert.True(t, user < hi && hi < assistant && assistant < hello, out)
}

func TestWorkbenchRender(t *testing.T) {
	got, err := NewWorkbenchRenderer(false).Render(greeting())
	require.NoError(t, err)

	want := `[
  {
    "role": "user",
    "content": "Hi"
  },
  {
    "role": "assistant",
    "content": "Hello!"
  }
]
`
	assert.Equal(t, want, string(got))
}

func TestWorkbenchRender_RoundTripModuloWhitespace(t *testing.T) {
	input := `[{"role":"user","content":"Hi"},{"role":"assistant","content":"Hello!"}]`

	got, err := NewWorkbenchRenderer(false).Render(greeting())
	require.NoError(t, err)

	var compact bytes.Buffer
	require.NoError(t, json.Compact(&compact, got))
	assert.Equal(t, input, compact.String())
}

func TestWorkbenchRender_CanonicalKeyOrder(t *testing.T) {
	// The source wrote content first and escaped the accent.
	conv := &core.Conversation{Messages: []core.Message{
		{Role: core.RoleUser, Content: "caf\u00e9"},
	}}
	got, err := NewWorkbenchRenderer(false).Render(conv)
	require.NoError(t, err)

	var compact bytes.Buffer
	require.NoError(t, json.Compact(&compact, got))
	assert.Equal(t, `[{"role":"user","content":"café"}]`, compact.String())
}

func TestMarkdownRender_Concurrent(t *testing.T) {
	r := NewMarkdownRenderer(false)
	want, err := r.Render(playground())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				out, err := r.Render(playground())
				if err != nil {
					return
				}
				results[i] = out
			}
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, string(want), string(got))
	}
}

func TestWorkbenchRender_DropsModelAndTitle(t *testing.T) {
	got, err := NewWorkbenchRenderer(false).Render(playground())
	require.NoError(t, err)

	assert.NotContains(t, string(got), "gpt-x")
	assert.NotContains(t, string(got), "Math")

	var msgs []WorkbenchMessage
	require.NoError(t, json.Unmarshal(got, &msgs))
	assert.Equal(t, []WorkbenchMessage{
		{Role: "user", Content: "2+2?"},
		{Role: "assistant", Content: "4"},
	}, msgs)
}

func TestWorkbenchRender_Envelope(t *testing.T) {
	got, err := NewWorkbenchRenderer(true).Render(greeting())
	require.NoError(t, err)

	var env struct {
		Messages []WorkbenchMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(got, &env))
	assert.Len(t, env.Messages, 2)
}

func TestWorkbenchRender_NoHTMLEscaping(t *testing.T) {
	conv := &core.Conversation{Messages: []core.Message{
		{Role: core.RoleUser, Content: "is <b>x</b> & y?"},
	}}
	got, err := NewWorkbenchRenderer(false).Render(conv)
	require.NoError(t, err)
	assert.Contains(t, string(got), `"is <b>x</b> & y?"`)
}

func TestSelect(t *testing.T) {
	r, err := Select(core.FormatMarkdown, Options{Frontmatter: true})
	require.NoError(t, err)
	assert.Equal(t, ".md", r.Suffix())
	assert.True(t, r.(*MarkdownRenderer).Frontmatter)

	r, err = Select(core.FormatWorkbench, Options{Envelope: true})
	require.NoError(t, err)
	assert.Equal(t, "_converted.json", r.Suffix())
	assert.True(t, r.(*WorkbenchRenderer).Envelope)

	_, err = Select("pdf", Options{})
	assert.Error(t, err)
}
