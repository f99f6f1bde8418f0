package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// statusPage color-codes outcomes: up green, down red, unresolved amber.
var statusPage = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="60">
<title>{{.Title}}</title>
<style>
body { font-family: monospace; background: #fff; color: #222; }
.up { color: #0a7d33; }
.down { color: #c0201e; }
.unknown { color: #c77700; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>last cycle: {{.CheckedAt}}</p>
<ul>
{{- range .Rows}}
<li class="{{.Class}}">{{.Line}}</li>
{{- end}}
</ul>
</body>
</html>
`))

type pageRow struct {
	Class string
	Line  string
}

// RenderHTML renders the status page for a report. Shared by the web
// sink (file output) and the HTTP status server.
func RenderHTML(title string, report domain.CycleReport) ([]byte, error) {
	rows := make([]pageRow, 0, len(report.Statuses))
	for _, st := range report.Statuses {
		rows = append(rows, pageRow{Class: st.Outcome.String(), Line: st.Line()})
	}
	var buf bytes.Buffer
	err := statusPage.Execute(&buf, struct {
		Title     string
		CheckedAt string
		Rows      []pageRow
	}{
		Title:     title,
		CheckedAt: report.CheckedAt.Format("2006-01-02 15:04:05 MST"),
		Rows:      rows,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WebSink rewrites a static HTML status page every cycle.
type WebSink struct {
	Path  string
	Title string
}

func NewWebSink(path, title string) *WebSink {
	if title == "" {
		title = "host status"
	}
	return &WebSink{Path: path, Title: title}
}

func (w *WebSink) Name() string { return "web" }

func (w *WebSink) Record(ctx context.Context, report domain.CycleReport) error {
	html, err := RenderHTML(w.Title, report)
	if err != nil {
		return err
	}
	// Write-then-rename so a reader never sees a half-written page.
	tmp := w.Path + ".tmp"
	if err := os.WriteFile(tmp, html, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(tmp), err)
	}
	return os.Rename(tmp, w.Path)
}
