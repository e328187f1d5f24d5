package application

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// maxCommentHTML caps rendered output so a pathological comment cannot bloat responses
const maxCommentHTML = 16 * 1024

// CommentRenderer converts a comment message to display HTML
type CommentRenderer interface {
	Render(message string) (string, error)
}

// externalLinkTransformer marks every link in a comment as untrusted and
// replaces embedded images with plain links to them.
type externalLinkTransformer struct{}

func (t *externalLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	var images []*ast.Image

	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := n.(type) {
		case *ast.Link:
			markExternal(v)
		case *ast.AutoLink:
			v.SetAttributeString("rel", []byte("nofollow noopener"))
		case *ast.Image:
			images = append(images, v)
		}
		return ast.WalkContinue, nil
	})

	for _, img := range images {
		link := ast.NewLink()
		link.Destination = img.Destination
		link.Title = img.Title
		for child := img.FirstChild(); child != nil; {
			next := child.NextSibling()
			link.AppendChild(link, child)
			child = next
		}
		markExternal(link)
		img.Parent().ReplaceChild(img.Parent(), img, link)
	}
}

func markExternal(link *ast.Link) {
	link.SetAttributeString("rel", []byte("nofollow noopener"))
	link.SetAttributeString("target", []byte("_blank"))
}

type markdownCommentRenderer struct {
	renderer goldmark.Markdown
}

func NewCommentRenderer() CommentRenderer {
	renderer := goldmark.New(
		goldmark.WithExtensions(
			extension.Linkify,
			extension.Strikethrough,
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(&externalLinkTransformer{}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	return &markdownCommentRenderer{
		renderer: renderer,
	}
}

// Render converts message to HTML. Raw HTML in the message is not passed through.
func (r *markdownCommentRenderer) Render(message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.renderer.Convert([]byte(message), &buf); err != nil {
		return "", fmt.Errorf("failed to convert comment markdown to HTML: %w", err)
	}

	if buf.Len() > maxCommentHTML {
		return "", fmt.Errorf("rendered comment exceeds %d bytes", maxCommentHTML)
	}

	return strings.TrimSpace(buf.String()), nil
}
