// Package extract implements the TurnExtractor interface for ChatGPT HTML
// exports. It isolates the conversation turns from a saved chat page by:
//  1. Removing noise and attachment elements (images, file tiles, buttons)
//  2. Finding the turn containers, by author-role attribute or by position
//  3. Picking each turn's content container and flagging rich markup
package extract

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/chatpipe/core"
)

// roleAttr is the attribute ChatGPT puts on every message container.
const roleAttr = "data-message-author-role"

// noiseSelectors are removed before extraction. Attachments are dropped
// silently; they are not part of the text of a turn.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"img", "picture", "figure", "figcaption",
	"svg", "canvas", "video", "audio", "iframe",
	"button", "input", "select", "textarea", "form",
	`[data-testid*="file"]`, `[data-testid*="attachment"]`,
	".sr-only",
}

// fallbackTurnSelectors locate turns in exports that lack the role attribute.
// Roles are then assigned by position.
var fallbackTurnSelectors = []string{
	`[data-testid^="conversation-turn"]`,
	"article",
}

// richSelector matches markup that loses meaning as flat text.
const richSelector = "pre, code, table, blockquote, ul, ol, h1, h2, h3, h4, h5, h6"

// maxLangLabel bounds how long a code-block language label can be.
const maxLangLabel = 20

// ChatGPTExtractor pulls turns out of ChatGPT chat-page HTML.
type ChatGPTExtractor struct{}

// New creates a ChatGPTExtractor.
func New() *ChatGPTExtractor {
	return &ChatGPTExtractor{}
}

// ExtractTurns returns every turn container in document order. Turns whose
// content is empty (attachment-only) are still returned; callers decide
// whether to keep them. src is parsed into a fresh tree because noise
// removal edits it in place.
func (e *ChatGPTExtractor) ExtractTurns(src string) ([]core.Turn, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	doc.Find("pre").Each(func(_ int, pre *goquery.Selection) {
		simplifyCodeBlock(pre)
	})

	var turns []core.Turn
	var convErr error

	tagged := doc.Find("[" + roleAttr + "]")
	if tagged.Length() > 0 {
		tagged.EachWithBreak(func(_ int, s *goquery.Selection) bool {
			role, _ := s.Attr(roleAttr)
			turn, err := buildTurn(strings.ToLower(strings.TrimSpace(role)), s)
			if err != nil {
				convErr = err
				return false
			}
			turns = append(turns, turn)
			return true
		})
		return turns, convErr
	}

	for _, sel := range fallbackTurnSelectors {
		containers := doc.Find(sel)
		if containers.Length() == 0 {
			continue
		}
		containers.EachWithBreak(func(i int, s *goquery.Selection) bool {
			turn, err := buildTurn(positionalRole(i), s)
			if err != nil {
				convErr = err
				return false
			}
			turns = append(turns, turn)
			return true
		})
		break
	}
	return turns, convErr
}

// positionalRole alternates user and assistant, starting with user.
func positionalRole(i int) string {
	if i%2 == 0 {
		return string(core.RoleUser)
	}
	return string(core.RoleAssistant)
}

// buildTurn picks the content container of a turn. Assistant replies keep
// their rendered Markdown in a .markdown div; user turns are plain.
func buildTurn(role string, s *goquery.Selection) (core.Turn, error) {
	content := s
	rich := false
	if md := s.Find(".markdown").First(); md.Length() > 0 {
		content = md
		rich = true
	} else if s.Find(richSelector).Length() > 0 {
		rich = true
	}

	inner, err := content.Html()
	if err != nil {
		return core.Turn{}, fmt.Errorf("serializing turn: %w", err)
	}

	return core.Turn{
		Role: role,
		HTML: inner,
		Rich: rich,
		Text: plainText(content),
	}, nil
}

// blockElements start a new line in plain-text output.
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"header": true, "footer": true, "li": true, "tr": true,
	"dd": true, "dt": true, "hr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// plainText flattens s the way a browser lays it out: block elements and
// <br> become line breaks, other whitespace collapses to single spaces.
// Text under a whitespace-pre* class (how ChatGPT shows user prompts) keeps
// its own line breaks.
func plainText(s *goquery.Selection) string {
	var t textBuilder
	t.walk(s, false)
	lines := strings.Split(string(t.buf), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

type textBuilder struct {
	buf []byte
}

func (t *textBuilder) walk(s *goquery.Selection, pre bool) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		name := goquery.NodeName(c)
		switch {
		case name == "#text":
			t.text(c.Text(), pre)
		case name == "br":
			t.trimSpace()
			t.buf = append(t.buf, '\n')
		case blockElements[name]:
			t.newline()
			t.walk(c, pre || preservesWhitespace(c))
			t.newline()
		case strings.HasPrefix(name, "#"):
			// comments and doctype
		default:
			t.walk(c, pre || preservesWhitespace(c))
		}
	})
}

func (t *textBuilder) text(s string, pre bool) {
	if pre {
		t.buf = append(t.buf, strings.ReplaceAll(s, "\r\n", "\n")...)
		return
	}
	collapsed := strings.Join(strings.Fields(s), " ")
	if collapsed == "" {
		if len(s) > 0 && !t.atBreak() {
			t.buf = append(t.buf, ' ')
		}
		return
	}
	if isSpace(s[0]) && !t.atBreak() {
		t.buf = append(t.buf, ' ')
	}
	t.buf = append(t.buf, collapsed...)
	if isSpace(s[len(s)-1]) {
		t.buf = append(t.buf, ' ')
	}
}

// newline ends the current line unless it is already empty.
func (t *textBuilder) newline() {
	t.trimSpace()
	if len(t.buf) > 0 && t.buf[len(t.buf)-1] != '\n' {
		t.buf = append(t.buf, '\n')
	}
}

func (t *textBuilder) trimSpace() {
	for len(t.buf) > 0 && (t.buf[len(t.buf)-1] == ' ' || t.buf[len(t.buf)-1] == '\t') {
		t.buf = t.buf[:len(t.buf)-1]
	}
}

// atBreak reports whether the output already ends in whitespace.
func (t *textBuilder) atBreak() bool {
	return len(t.buf) == 0 || t.buf[len(t.buf)-1] == '\n' || t.buf[len(t.buf)-1] == ' '
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func preservesWhitespace(s *goquery.Selection) bool {
	for _, class := range strings.Fields(s.AttrOr("class", "")) {
		if strings.HasPrefix(class, "whitespace-pre") {
			return true
		}
	}
	return false
}

// simplifyCodeBlock rewrites ChatGPT's decorated code blocks
// (<pre><div>python</div>...<code>...</code></pre>) into a plain
// <pre><code class="language-python"> so the Markdown converter fences them.
func simplifyCodeBlock(pre *goquery.Selection) {
	lang := ""
	pre.Find("div").EachWithBreak(func(_ int, d *goquery.Selection) bool {
		if d.Children().Length() > 0 {
			return true
		}
		txt := strings.TrimSpace(d.Text())
		if txt == "" {
			return true
		}
		if len(txt) <= maxLangLabel && !strings.ContainsAny(txt, " \t\n") {
			lang = txt
		}
		return false
	})

	code := pre.Find("code").First()
	if lang == "" && code.Length() > 0 {
		for _, class := range strings.Fields(code.AttrOr("class", "")) {
			if l, ok := strings.CutPrefix(class, "language-"); ok {
				lang = l
				break
			}
		}
	}

	text := pre.Text()
	if code.Length() > 0 {
		text = code.Text()
	}
	text = strings.Trim(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var b strings.Builder
	b.WriteString("<pre><code")
	if lang != "" {
		b.WriteString(` class="language-`)
		b.WriteString(html.EscapeString(strings.ToLower(lang)))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(html.EscapeString(text))
	b.WriteString("</code></pre>")
	pre.ReplaceWithHtml(b.String())
}
