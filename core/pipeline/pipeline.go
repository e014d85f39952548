// Package pipeline wires the chatpipe stages together:
// parse → detect/normalize → render.
//
// A Pipeline holds no per-conversion state and can be shared by concurrent
// callers.
package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gaurav-prasanna/chatpipe/core"
	"github.com/gaurav-prasanna/chatpipe/core/detect"
	"github.com/gaurav-prasanna/chatpipe/core/extract"
	"github.com/gaurav-prasanna/chatpipe/core/fetch"
	"github.com/gaurav-prasanna/chatpipe/core/normalize"
	"github.com/gaurav-prasanna/chatpipe/core/render"
)

// Options configure a Pipeline.
type Options struct {
	// Title overrides whatever title the source carries.
	Title string
	// Render is passed to the selected renderer.
	Render render.Options
	// Logger receives debug output; defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// Result is the outcome of one conversion.
type Result struct {
	Conversation *core.Conversation
	Output       []byte
	// Suffix is the renderer's output-name suffix (".md", "_converted.json").
	Suffix string
}

// Pipeline converts conversation exports.
type Pipeline struct {
	detector *detect.Detector
	opts     Options
	log      logrus.FieldLogger
}

// New creates a Pipeline with the standard detector.
func New(opts Options) *Pipeline {
	return NewWithDetector(detect.New(extract.New(), normalize.New()), opts)
}

// NewWithDetector creates a Pipeline around a custom detector.
func NewWithDetector(d *detect.Detector, opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{detector: d, opts: opts, log: log}
}

// Convert is the one-call form: raw bytes in, rendered text out, with
// default options.
func Convert(raw []byte, format core.Format) (string, error) {
	res, err := New(Options{}).Convert(&core.FetchResult{Data: raw}, format)
	if err != nil {
		return "", err
	}
	return string(res.Output), nil
}

// Normalize parses and detects in, returning the canonical conversation.
// The input's file name and modification time fill in the title and
// timestamp when the source has none.
func (p *Pipeline) Normalize(in *core.FetchResult) (*core.Conversation, error) {
	doc, err := detect.Parse(in.Data)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	conv, err := p.detector.Detect(doc)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}

	switch {
	case p.opts.Title != "":
		conv.Title = p.opts.Title
	case conv.Title == "":
		conv.Title = titleFromPath(in.Path)
	}
	conv.CreatedAt = in.ModTime

	p.log.WithFields(logrus.Fields{
		"path":     in.Path,
		"source":   conv.Source,
		"messages": len(conv.Messages),
		"model":    conv.Model,
	}).Debug("Detected conversation")

	return conv, nil
}

// Convert normalizes in and renders it in format.
func (p *Pipeline) Convert(in *core.FetchResult, format core.Format) (*Result, error) {
	renderer, err := render.Select(format, p.opts.Render)
	if err != nil {
		return nil, err
	}

	conv, err := p.Normalize(in)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := renderer.Render(conv)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	p.log.WithFields(logrus.Fields{
		"path":     in.Path,
		"format":   format,
		"bytes":    len(out),
		"duration": time.Since(start),
	}).Debug("Rendered conversation")

	return &Result{Conversation: conv, Output: out, Suffix: renderer.Suffix()}, nil
}

// titleFromPath derives a title from an input file name ("chat_log.json"
// becomes "chat_log"). Stdin and unnamed inputs have none.
func titleFromPath(path string) string {
	if path == "" || path == fetch.StdinPath {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
