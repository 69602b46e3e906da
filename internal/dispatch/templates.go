package dispatch

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

const (
	TemplateActivation    = "activation_email"
	TemplatePasswordReset = "password_reset_email"
)

type emailTemplate struct {
	subject string
	body    *template.Template
}

var templates = map[string]emailTemplate{
	TemplateActivation: {
		subject: "Activate Your JobDeck Account",
		body: template.Must(template.New(TemplateActivation).Parse(`<html><body>
<p>Hello,</p>
<p>Thanks for registering. Click the link below to activate your account:</p>
<p><a href="{{.ActivationURL}}">{{.ActivationURL}}</a></p>
<p>The link is valid for 24 hours. If you did not register, please ignore this email.</p>
</body></html>`)),
	},
	TemplatePasswordReset: {
		subject: "Reset Your JobDeck Password",
		body: template.Must(template.New(TemplatePasswordReset).Parse(`<html><body>
<p>Hello,</p>
<p>We received a request to reset your password. Use the link below:</p>
<p><a href="{{.ResetURL}}">{{.ResetURL}}</a></p>
<p>The link is valid for 1 hour. If you did not request this, please ignore this email.</p>
</body></html>`)),
	},
}

// render produces subject, html body and a plain-text fallback for a job.
// An unknown template id or a render error is non-retryable.
func render(templateId string, params map[string]string) (subject, htmlBody, textBody string, err error) {
	tmpl, ok := templates[templateId]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", templateId)
	}

	var buf bytes.Buffer
	if err := tmpl.body.Execute(&buf, params); err != nil {
		return "", "", "", fmt.Errorf("failed to render template %q: %w", templateId, err)
	}

	htmlBody = buf.String()
	return tmpl.subject, htmlBody, stripTags(htmlBody), nil
}

var tagRegex = regexp.MustCompile(`<[^>]*>`)

// stripTags derives the plain-text alternative from the html body.
func stripTags(s string) string {
	s = tagRegex.ReplaceAllString(s, "")
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}
