package notification

import (
	"bytes"
	"fmt"
	"text/template"
)

// TemplateData contains all the fields available for email template rendering
type TemplateData struct {
	Greeting   string // Dynamic greeting based on recipient count
	Repository string
	Reference  string // "#123" or empty
	Title      string
	Summary    string
	Report     string
	SenderName string
}

// EmailTemplate contains the templates for rendering emails
type EmailTemplate struct {
	SubjectFormat string
	PlainText     string
	HTML          string
}

// DefaultTemplate is the standard email template for asset size reports
var DefaultTemplate = EmailTemplate{
	SubjectFormat: "{{.Repository}}{{.Reference}}: asset sizes{{if .Summary}} ({{.Summary}}){{end}}",
	PlainText: `{{.Greeting}}

Here is the asset size report for {{.Repository}}{{.Reference}}{{if .Title}} "{{.Title}}"{{end}}.

{{.Report}}

~{{.SenderName}}`,
	HTML: `<div dir="ltr">{{.Greeting}}<br><br>
Here is the asset size report for {{.Repository}}{{.Reference}}{{if .Title}} &quot;{{.Title}}&quot;{{end}}.<br><br>
<pre>{{.Report}}</pre>
~{{.SenderName}}</div>`,
}

// FormatGreeting creates an appropriate greeting based on number of recipients
// 1 recipient: "Hi John,"
// 2 recipients: "Hi John & Jane,"
// 0 or 3+ recipients: "Hi all,"
func FormatGreeting(recipients []Recipient) string {
	switch len(recipients) {
	case 1:
		return fmt.Sprintf("Hi %s,", getFirstName(recipients[0].Name))
	case 2:
		return fmt.Sprintf("Hi %s & %s,", getFirstName(recipients[0].Name), getFirstName(recipients[1].Name))
	default:
		return "Hi all,"
	}
}

// getFirstName extracts the first name from a full name
func getFirstName(fullName string) string {
	if fullName == "" {
		return "there"
	}
	for i, c := range fullName {
		if c == ' ' {
			return fullName[:i]
		}
	}
	return fullName
}

// FormatReference returns "#<number>" for pull requests and "" otherwise
func FormatReference(number int) string {
	if number <= 0 {
		return ""
	}
	return fmt.Sprintf("#%d", number)
}

// RenderSubject renders the email subject using the template
func (t *EmailTemplate) RenderSubject(data TemplateData) (string, error) {
	return renderTemplate("subject", t.SubjectFormat, data)
}

// RenderPlainText renders the plain text email body
func (t *EmailTemplate) RenderPlainText(data TemplateData) (string, error) {
	return renderTemplate("plaintext", t.PlainText, data)
}

// RenderHTML renders the HTML email body
func (t *EmailTemplate) RenderHTML(data TemplateData) (string, error) {
	return renderTemplate("html", t.HTML, data)
}

func renderTemplate(name, tmplStr string, data TemplateData) (string, error) {
	tmpl, err := template.New(name).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
