package content

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// KeyLinkPrefix starts the destination of links written as [[Key]]
const KeyLinkPrefix = "#key="

// RenderHTML converts markdown to HTML. [[Key]] becomes a link to KeyLinkPrefix+Key.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	prev := p.RegisterInline('[', nil)
	p.RegisterInline('[', keyLink(prev))

	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

var keyLinkPattern = regexp.MustCompile(`\[\[([^\[\]\n]+)\]\]`)

// LinkKeys rewrites [[Key]] as a plain markdown link, for renderers that only
// understand standard links
func LinkKeys(md string) string {
	return keyLinkPattern.ReplaceAllStringFunc(md, func(m string) string {
		key := strings.TrimSpace(m[2 : len(m)-2])
		if key == "" {
			return m
		}
		return "[" + key + "](" + KeyLinkPrefix + url.QueryEscape(key) + ")"
	})
}

// KeyFromLink returns the key of a link produced for [[Key]]
func KeyFromLink(destination string) (string, bool) {
	if !strings.HasPrefix(destination, KeyLinkPrefix) {
		return "", false
	}
	key, err := url.QueryUnescape(strings.TrimPrefix(destination, KeyLinkPrefix))
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}

// keyLink parses [[Key]] and falls back to fn for every other bracket
func keyLink(fn parser.InlineParser) parser.InlineParser {
	return func(p *parser.Parser, original []byte, offset int) (int, ast.Node) {
		data := original[offset:]
		n := len(data)
		// minimum: [[X]]
		if n < 5 || data[1] != '[' {
			return fn(p, original, offset)
		}
		end := strings.Index(string(data[2:]), "]]")
		if end <= 0 {
			return fn(p, original, offset)
		}
		key := strings.TrimSpace(string(data[2 : 2+end]))
		if key == "" || strings.ContainsAny(key, "[\n") {
			return fn(p, original, offset)
		}

		link := &ast.Link{Destination: []byte(KeyLinkPrefix + url.QueryEscape(key))}
		ast.AppendChild(link, &ast.Text{Leaf: ast.Leaf{Literal: []byte(key)}})
		return 2 + end + 2, link
	}
}
