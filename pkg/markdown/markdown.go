// Package markdown renders stored question and answer text to sanitized HTML
// with fenced code blocks, syntax highlighting and tables.
package markdown

import (
	"bytes"
	"html/template"
	"regexp"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const DefaultStyle = "github"

var classPattern = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	css    template.CSS
}

func NewRenderer(style string) *Renderer {
	if styles.Get(style) == styles.Fallback {
		style = DefaultStyle
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		// 保留原始 HTML，交由 bluemonday 清洗
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	// 高亮使用 class 输出，清洗时保留 class 属性
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(classPattern).OnElements("pre", "code", "span", "div")

	var css bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&css, styles.Get(style)); err != nil {
		css.Reset()
	}

	return &Renderer{
		md:     md,
		policy: policy,
		css:    template.CSS(css.String()),
	}
}

// Render converts Markdown to sanitized HTML. Empty input yields empty output.
func (r *Renderer) Render(text string) template.HTML {
	if text == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}

// CSS returns the stylesheet for highlighted code blocks.
func (r *Renderer) CSS() template.CSS {
	return r.css
}
