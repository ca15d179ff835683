// Package markdown renders post summaries. Image and link targets that are
// site paths are rewritten to live under the site base path.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/eringen/pubindex/listing"
)

// converters holds one goldmark.Markdown per base path.
var converters sync.Map

func converter(basePath string) goldmark.Markdown {
	if md, ok := converters.Load(basePath); ok {
		return md.(goldmark.Markdown)
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(basePathTransformer{basePath: basePath}, 100)),
		),
	)
	actual, _ := converters.LoadOrStore(basePath, md)
	return actual.(goldmark.Markdown)
}

// Summary returns a templ.Component rendering md as HTML.
func Summary(md, basePath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, SummaryHTML(md, basePath))
		return err
	})
}

// SummaryHTML renders md as HTML. Raw HTML and dangerous URLs are dropped.
// If conversion fails the escaped source is returned.
func SummaryHTML(md, basePath string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := converter(basePath).Convert([]byte(md), &buf); err != nil {
		return html.EscapeString(md)
	}
	return buf.String()
}

// basePathTransformer moves image sources and rooted link targets under
// basePath.
type basePathTransformer struct {
	basePath string
}

func (t basePathTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Image:
			if dest := string(n.Destination); isSitePath(dest) {
				n.Destination = []byte(listing.ResolveAssetPath(dest, t.basePath))
			}
		case *ast.Link:
			if dest := string(n.Destination); strings.HasPrefix(dest, "/") && !strings.HasPrefix(dest, "//") {
				n.Destination = []byte(listing.JoinBase(t.basePath, dest))
			}
		}
		return ast.WalkContinue, nil
	})
}

// isSitePath reports whether an image source refers to a file on this site:
// a rooted or relative path without a scheme.
func isSitePath(dest string) bool {
	if dest == "" || strings.HasPrefix(dest, "//") || strings.HasPrefix(dest, "#") {
		return false
	}
	if i := strings.IndexAny(dest, ":/?#"); i >= 0 && dest[i] == ':' {
		return false
	}
	return true
}
