package guide

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/weldyapp/weldy/internal/progress"
)

// Generator renders guide pages into a static HTML site.
type Generator struct {
	OutputDir string
	Title     string
	// WriteMarkdown also writes each page's markdown source next to its HTML.
	WriteMarkdown bool
	Reporter      progress.Reporter
}

// NewGenerator creates a Generator writing to outputDir.
func NewGenerator(outputDir, title string) *Generator {
	return &Generator{
		OutputDir: outputDir,
		Title:     title,
		Reporter:  progress.Nop{},
	}
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title     string
	SiteTitle string
	Content   template.HTML
	Nav       []navLink
	BasePath  string
}

type navLink struct {
	Title  string
	Href   string
	Active bool
}

// Generate renders pages and writes the site. Returns the number of pages written.
func (g *Generator) Generate(pages []Page) (int, error) {
	if len(pages) == 0 {
		return 0, fmt.Errorf("no pages to generate")
	}
	reporter := g.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}

	md := newMarkdown()
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing page template: %w", err)
	}

	reporter.Start(len(pages))
	for i, p := range pages {
		if err := g.renderPage(md, tmpl, pages, p); err != nil {
			return i, fmt.Errorf("rendering %s: %w", p.Path, err)
		}
		reporter.Update(i+1, p.Path)
	}
	reporter.Finish()

	return len(pages), nil
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// renderPage converts a single page to HTML and writes it.
func (g *Generator) renderPage(md goldmark.Markdown, tmpl *template.Template, pages []Page, p Page) error {
	var htmlBuf bytes.Buffer
	if err := md.Convert([]byte(p.Markdown), &htmlBuf); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	htmlRelPath := mdPathToHTML(p.Path)
	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(htmlRelPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	if g.WriteMarkdown {
		mdPath := filepath.Join(g.OutputDir, filepath.FromSlash(p.Path))
		if err := os.WriteFile(mdPath, []byte(p.Markdown), 0o644); err != nil {
			return err
		}
	}

	basePath := strings.Repeat("../", strings.Count(htmlRelPath, "/"))

	nav := make([]navLink, 0, len(pages))
	for _, other := range pages {
		nav = append(nav, navLink{
			Title:  other.Title,
			Href:   basePath + mdPathToHTML(other.Path),
			Active: other.Path == p.Path,
		})
	}

	data := pageData{
		Title:     p.Title,
		SiteTitle: g.Title,
		Content:   template.HTML(rewriteMDLinks(htmlBuf.String())),
		Nav:       nav,
		BasePath:  basePath,
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}

// rewriteMDLinks changes relative .md links in HTML content to .html links.
func rewriteMDLinks(content string) string {
	return strings.ReplaceAll(content, `.md"`, `.html"`)
}

func mdPathToHTML(p string) string {
	return strings.TrimSuffix(p, ".md") + ".html"
}
