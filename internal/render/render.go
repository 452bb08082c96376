package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

// defaultTemplate prints either an issue or an issue type.
const defaultTemplate = `{{- with .Issue -}}
{{ .Key }} [{{ .IssueType }}{{ if .IsSubtask }}, sub-task{{ end }}] {{ .Summary }}
{{- if .Labels }}
labels: {{ .Labels | sortAlpha | join ", " }}
{{- end }}
{{- with .ParentIssue }}
parent: {{ .Key }} {{ .Summary }}
{{- else }}{{ with .Parent }}
parent: {{ . }}
{{- end }}{{ end }}
{{- with .Type }}
type: {{ .Name }}{{ with .Description }} - {{ . }}{{ end }}
{{- end }}
{{- range .ErrorMessages }}
error: {{ . }}
{{- end }}
{{- end -}}
{{- with .IssueType -}}
{{ .Name }}{{ if .IsSubtask }} (sub-task){{ end }}{{ with .Description }}
{{ . }}{{ end }}
{{- range .ErrorMessages }}
error: {{ . }}
{{- end }}
{{- end }}
`

// View is the root object handed to templates. Exactly one of Issue and IssueType is set.
type View struct {
	Issue     *IssueData
	IssueType *IssueTypeData
}

// FuncMap returns sprig's text functions plus JIRA helpers.
func FuncMap() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["formatJiraDate"] = formatJiraDate
	return fm
}

// NewTemplate parses the template file at path, or the built-in template when path is empty.
func NewTemplate(path string) (*template.Template, error) {
	if path == "" {
		return template.New("default").Funcs(FuncMap()).Parse(defaultTemplate)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	tmpl, err := template.New(filepath.Base(path)).Funcs(FuncMap()).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return tmpl, nil
}

// Text executes tmpl with v and guarantees a trailing newline.
func Text(w io.Writer, tmpl *template.Template, v View) error {
	var b strings.Builder
	if err := tmpl.Execute(&b, v); err != nil {
		return fmt.Errorf("template error: %w", err)
	}
	out := strings.TrimLeft(b.String(), "\n")
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v View) error {
	var payload any = v.IssueType
	if v.Issue != nil {
		payload = v.Issue
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// formatJiraDate parses a Jira timestamp and returns it formatted using the provided layout.
// If parsing fails, the original string is returned.
func formatJiraDate(input, layout string) string {
	input = strings.Replace(input, "Z", "+0000", 1) // normalize timezone
	parsed, err := time.Parse("2006-01-02T15:04:05.000-0700", input)
	if err != nil {
		return input
	}
	return parsed.Format(layout)
}
