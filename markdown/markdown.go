// Package markdown renders post bodies from Markdown to HTML as templ components.
package markdown

import (
	"bytes"
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithASTTransformers(util.Prioritized(externalLinks{}, 100)),
	),
)

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Render(w, content)
	})
}

// Render writes the HTML representation of src to w. Raw HTML in src is
// omitted from the output.
func Render(w io.Writer, src string) error {
	return md.Convert([]byte(src), w)
}

// HTML returns the HTML representation of src.
func HTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, src); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// externalLinks makes links to other hosts open in a new tab.
type externalLinks struct{}

func (externalLinks) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		u, err := url.Parse(string(link.Destination))
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
			return ast.WalkContinue, nil
		}
		link.SetAttributeString("target", []byte("_blank"))
		link.SetAttributeString("rel", []byte("noopener noreferrer"))
		return ast.WalkContinue, nil
	})
}
