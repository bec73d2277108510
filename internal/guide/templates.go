package guide

// pageTemplate is the Go html/template for each guide page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.SiteTitle}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body>
  <nav class="sidebar">
    <h2 class="site-title">{{.SiteTitle}}</h2>
    <ul>
      {{range .Nav}}<li{{if .Active}} class="active"{{end}}><a href="{{.Href}}">{{.Title}}</a></li>
      {{end}}
    </ul>
  </nav>
  <main class="content">
    {{.Content}}
  </main>
</body>
</html>
`

// cssContent is the guide stylesheet.
const cssContent = `*, *::before, *::after { box-sizing: border-box; }
body {
  margin: 0;
  display: flex;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  color: #1f2328;
  line-height: 1.6;
}
.sidebar {
  width: 280px;
  min-height: 100vh;
  padding: 1.5rem 1rem;
  background: #f6f8fa;
  border-right: 1px solid #d0d7de;
}
.sidebar ul { list-style: none; padding: 0; margin: 0; }
.sidebar li { margin: 0.25rem 0; }
.sidebar a { color: #1f2328; text-decoration: none; }
.sidebar li.active a { color: #d35400; font-weight: 600; }
.site-title { font-size: 1.1rem; margin-top: 0; }
.content { flex: 1; max-width: 860px; padding: 2rem 3rem; }
.content img { max-width: 100%; border-radius: 6px; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d0d7de; padding: 0.4rem 0.8rem; text-align: left; }
pre { padding: 1rem; overflow-x: auto; border-radius: 6px; }
`
