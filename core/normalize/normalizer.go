// Package normalize implements the Normalizer interface.
// It converts the HTML of a rich conversation turn (code blocks, tables,
// lists) into Markdown so it survives as text in every output format.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/gaurav-prasanna/chatpipe/core"
)

var blankRunRegex = regexp.MustCompile(`\n{3,}`)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts an HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	markdown = blankRunRegex.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown), nil
}

// TurnContent returns the message body for an extracted turn: Markdown for
// rich turns, the trimmed visible text otherwise.
func TurnContent(n core.Normalizer, turn core.Turn) (string, error) {
	if !turn.Rich {
		return turn.Text, nil
	}
	return n.Normalize(turn.HTML)
}
