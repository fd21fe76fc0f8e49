package report

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"ponto-backend/internal/mailer"
)

var emailTemplate = template.Must(template.New("report-email").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Subject}}</title></head>
<body style="font-family: Arial, sans-serif; color: #333; line-height: 1.6;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: #2563eb; color: #fff; padding: 20px; text-align: center; border-radius: 8px 8px 0 0;">
      <h1 style="margin: 0;">{{.AppName}}</h1>
      <p style="margin: 4px 0 0;">{{.Tagline}}</p>
    </div>
    <div style="background: #f9fafb; padding: 20px; border-radius: 0 0 8px 8px;">
      <p>{{.Greeting}}</p>
      <p>{{.Intro}}</p>
      <div style="background: #fff; padding: 15px; border-left: 4px solid #2563eb; margin: 20px 0;">
        <strong>{{.InfoTitle}}</strong>
        <ul>
          <li>{{.InfoPeriod}}</li>
          <li>{{.InfoFormat}}</li>
          <li>{{.InfoGenerated}}</li>
        </ul>
      </div>
      <p style="font-size: 12px; color: #6b7280;">{{.Footer}}</p>
    </div>
  </div>
</body>
</html>
`))

type emailView struct {
	Subject       string
	AppName       string
	Tagline       string
	Greeting      string
	Intro         string
	InfoTitle     string
	InfoPeriod    string
	InfoFormat    string
	InfoGenerated string
	Footer        string
}

func buildEmail(labels Labels, period Period, format Format, now time.Time, to string, file *File) (mailer.Message, error) {
	if format == "" {
		format = FormatPDF
	}
	periodLabel := labels.Period(period)
	view := emailView{
		Subject:       labels.text("email_subject", map[string]any{"AppName": labels.AppName, "Period": periodLabel}),
		AppName:       labels.AppName,
		Tagline:       labels.text("email_tagline", nil),
		Greeting:      labels.text("email_greeting", nil),
		Intro:         labels.text("email_intro", map[string]any{"Period": periodLabel}),
		InfoTitle:     labels.text("email_info_title", nil),
		InfoPeriod:    labels.text("email_info_period", map[string]any{"Period": periodLabel}),
		InfoFormat:    labels.text("email_info_format", map[string]any{"Format": strings.ToUpper(string(format))}),
		InfoGenerated: labels.text("email_info_generated", map[string]any{"Date": now.UTC().Format(dateLayout + " 15:04:05")}),
		Footer:        labels.text("email_footer", map[string]any{"AppName": labels.AppName}),
	}

	var body bytes.Buffer
	if err := emailTemplate.Execute(&body, view); err != nil {
		return mailer.Message{}, &EncodingError{Kind: KindGeneric, Format: format, Err: err}
	}

	return mailer.Message{
		To:      to,
		Subject: view.Subject,
		HTML:    body.String(),
		Attachments: []mailer.Attachment{
			{Filename: file.Name, Data: file.Data, MimeType: file.MimeType},
		},
	}, nil
}
