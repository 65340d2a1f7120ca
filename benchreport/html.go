// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"io"

	"github.com/google/safehtml/template"
)

const reportText = `
{{- range .}}
<h2>{{.Title}}</h2>
<table class='netbench'>
<thead><tr>{{range .Columns}}<th>{{.}}{{end}}</thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}{{end}}
{{- end}}
</tbody>
{{- if .Stats}}
<tfoot>
{{- range .Stats}}
<tr class='stat'>{{range .}}<td>{{.}}{{end}}
{{- end}}
</tfoot>
{{- end}}
</table>
{{- end}}
`

var htmlTemplate = template.Must(template.New("report").Parse(reportText))

const htmlHeader = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Network Benchmark Results</title>
<style>
.netbench { border-collapse: collapse; }
.netbench th { border-bottom: 1px solid #666; }
.netbench td:nth-child(1n+2) { text-align: right; padding: 0em 1em; }
.netbench .stat td { color: #444; }
.netbench tfoot tr:first-child td { border-top: 1px solid #ccc; }
</style>
</head>
<body>
`

const htmlFooter = `</body>
</html>
`

// FormatHTMLPage writes a complete HTML document holding sections.
func FormatHTMLPage(w io.Writer, sections []Section) error {
	if _, err := io.WriteString(w, htmlHeader); err != nil {
		return err
	}
	if err := FormatHTML(w, sections); err != nil {
		return err
	}
	_, err := io.WriteString(w, htmlFooter)
	return err
}

// FormatHTML writes an HTML rendering of sections to w.
func FormatHTML(w io.Writer, sections []Section) error {
	views := make([]view, len(sections))
	for i, s := range sections {
		views[i] = newView(s)
	}
	return htmlTemplate.Execute(w, views)
}
