package detect

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/unicode"

	"github.com/gaurav-prasanna/chatpipe/core"
)

// Kind is the underlying syntax of an input document.
type Kind int

const (
	KindJSON Kind = iota + 1
	KindHTML
)

func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindHTML:
		return "html"
	}
	return "unknown"
}

// Document is a parsed input, before any schema has been recognized.
type Document struct {
	Kind Kind
	JSON any               // generic value tree, numbers as json.Number
	HTML *goquery.Document // set for KindHTML
	Raw  string            // decoded text with any BOM removed
}

var errTrailingData = errors.New("unexpected data after top-level value")

// Parse decodes raw input bytes into a Document. It only checks syntax;
// whether the document is a conversation is decided by the Detector.
func Parse(raw []byte) (*Document, error) {
	if !utf8.Valid(raw) {
		return nil, &core.ParseError{Syntax: "utf-8", Err: errors.New("input is not valid UTF-8 text")}
	}
	decoded, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, &core.ParseError{Syntax: "utf-8", Err: err}
	}
	text := string(decoded)

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &core.FormatError{Reason: core.ReasonUnrecognizedFormat, Detail: "input is empty"}
	}

	switch trimmed[0] {
	case '{', '[':
		v, err := decodeJSON(trimmed)
		if err != nil {
			return nil, &core.ParseError{Syntax: "json", Err: err}
		}
		return &Document{Kind: KindJSON, JSON: v, Raw: text}, nil
	case '<':
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
		if err != nil {
			return nil, &core.ParseError{Syntax: "html", Err: err}
		}
		return &Document{Kind: KindHTML, HTML: doc, Raw: text}, nil
	}

	return nil, &core.FormatError{
		Reason: core.ReasonUnrecognizedFormat,
		Detail: "input is neither a JSON object/array nor an HTML document",
	}
}

func decodeJSON(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return v, nil
}
