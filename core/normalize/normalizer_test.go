package normalize

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/chatpipe/core"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "paragraph with emphasis",
			html: "<p>It is <strong>4</strong>.</p>",
			want: []string{"It is **4**."},
		},
		{
			name: "fenced code",
			html: `<pre><code class="language-go">fmt.Println("hi")</code></pre>`,
			want: []string{"```", `fmt.Println("hi")`},
		},
		{
			name: "list",
			html: "<ul><li>one</li><li>two</li></ul>",
			want: []string{"one", "two"},
		},
	}

	n := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.html)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			assert.NotContains(t, got, "\n\n\n")
			assert.Equal(t, strings.TrimSpace(got), got)
		})
	}
}

type fakeNormalizer struct {
	out string
	err error
}

func (f *fakeNormalizer) Normalize(string) (string, error) { return f.out, f.err }

func TestTurnContent(t *testing.T) {
	plain := core.Turn{Role: "user", HTML: "<div>hi</div>", Text: "hi"}
	got, err := TurnContent(&fakeNormalizer{out: "unused"}, plain)
	require.NoError(t, err)
	assert.Equal(t, "hi", got)

	rich := core.Turn{Role: "assistant", HTML: "<p>x</p>", Rich: true, Text: "x"}
	got, err = TurnContent(&fakeNormalizer{out: "converted"}, rich)
	require.NoError(t, err)
	assert.Equal(t, "converted", got)

	boom := errors.New("boom")
	_, err = TurnContent(&fakeNormalizer{err: boom}, rich)
	assert.ErrorIs(t, err, boom)
}
