package render

import (
	"fmt"

	"github.com/gaurav-prasanna/chatpipe/core"
)

// Options tweak the renderers beyond their defaults.
type Options struct {
	Frontmatter bool // Markdown: prepend YAML front matter
	Envelope    bool // Workbench: wrap messages in {"messages": [...]}
}

// Select creates the Renderer for format.
func Select(format core.Format, opts Options) (core.Renderer, error) {
	switch format {
	case core.FormatMarkdown:
		return NewMarkdownRenderer(opts.Frontmatter), nil
	case core.FormatWorkbench:
		return NewWorkbenchRenderer(opts.Envelope), nil
	default:
		return nil, fmt.Errorf("no renderer for output format %q", format)
	}
}
