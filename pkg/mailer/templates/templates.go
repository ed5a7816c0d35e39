package templates

import (
	"bytes"
	"fmt"
	html "html/template"
	"strings"
	text "text/template"
)

const Welcome = "welcome"

var welcomeHTML = html.Must(html.New(Welcome).Parse(`<!doctype html>
<html>
  <body style="font-family:sans-serif;max-width:560px;margin:0 auto;padding:24px">
    <h2>Welcome to {{.AppName}}, {{.FirstName}}!</h2>
    <p>Your account <strong>@{{.Username}}</strong> is ready. Start a draft whenever
    inspiration strikes &mdash; the editor autosaves while you write.</p>
    <p style="color:#888;font-size:12px">You are receiving this because this address
    was used to register at {{.AppName}}.</p>
  </body>
</html>`))

var welcomeText = text.Must(text.New(Welcome).Parse(
	"Welcome to {{.AppName}}, {{.FirstName}}!\n\n" +
		"Your account @{{.Username}} is ready. Start a draft whenever inspiration strikes.\n"))

// Render produces subject, text and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, textBody, htmlBody string, err error) {
	switch strings.ToLower(name) {
	case Welcome:
		var hb, tb bytes.Buffer
		if err = welcomeHTML.Execute(&hb, data); err != nil {
			return "", "", "", err
		}
		if err = welcomeText.Execute(&tb, data); err != nil {
			return "", "", "", err
		}
		subject = fmt.Sprintf("Welcome to %v", data["AppName"])
		return subject, tb.String(), hb.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
