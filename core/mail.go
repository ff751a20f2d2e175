package core

import (
	"bytes"
	"net/mail"
	"sync"
	texttmpl "text/template"

	"github.com/pkg/errors"
)

var (
	templates map[string]*texttmpl.Template
	tmplInit  sync.Once
	tmplErr   error
)

type (
	EmailMessage struct {
		To      []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
	}

	ContextData struct {
		FrontendBaseURL string
		Data            interface{}
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

// ParseEmailTemplates parses all email templates upfront so that a broken
// template fails at startup rather than on first send.
func ParseEmailTemplates(logger Logger) {
	tmplInit.Do(parseTemplates)
	if tmplErr != nil {
		logger.Fatal("parsing email templates", tmplErr)
	}
}

func parseTemplates() {
	templates = make(map[string]*texttmpl.Template)
	for name, body := range emailTemplates {
		tmpl, err := texttmpl.New(name).Parse(body)
		if err != nil {
			tmplErr = errors.Wrapf(err, "parsing email template %q", name)
			return
		}
		templates[name] = tmpl
	}
}

func (m *EmailMessage) Render(conf *Config) error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
		return nil
	}
	if m.TemplateName == "" {
		return nil
	}

	tmplInit.Do(parseTemplates)
	tmpl, ok := templates[m.TemplateName]
	if !ok {
		return errors.Errorf("unknown email template %q", m.TemplateName)
	}

	var buff bytes.Buffer
	data := ContextData{FrontendBaseURL: conf.FrontendBaseURL, Data: m.TemplateData}
	if err := tmpl.Execute(&buff, data); err != nil {
		return err
	}
	m.TextContent = buff.String()
	return nil
}

func (m *EmailMessage) HasRecipients() bool {
	return len(m.To) > 0
}

func (m *EmailMessage) HasContent() bool {
	return m.TextContent != "" || m.BodyStr != ""
}

// emailTemplates holds the text templates by name. Inlined rather than read
// from disk so binaries stay self-contained.
var emailTemplates = map[string]string{
	"revision-schedule-created": `Hi {{.Data.UserName}},

Your revision schedule "{{.Data.ScheduleName}}" is ready: {{.Data.SessionCount}} sessions
planned between {{.Data.StartDate}} and {{.Data.EndDate}}.

Open your study calendar: {{.FrontendBaseURL}}/revision
`,
}
