package bot

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"dafi.es/dafibot/internal/election"
)

//go:embed templates/*
var templates embed.FS

var nominationTmpl *template.Template
var helpTmpl *template.Template

// markdownEscaper escapes the characters legacy Telegram Markdown treats as markup.
var markdownEscaper = strings.NewReplacer(
	`_`, `\_`,
	`*`, `\*`,
	"`", "\\`",
	`[`, `\[`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

var funcs = template.FuncMap{
	"md": escapeMarkdown,
}

// InitTemplates parses the embedded message templates.
// Must be called at startup before handling any messages.
func InitTemplates() error {
	var err error
	nominationTmpl, err = parseTemplate("nomination.md")
	if err != nil {
		return err
	}
	helpTmpl, err = parseTemplate("help.md")
	if err != nil {
		return err
	}
	return nil
}

func parseTemplate(name string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(funcs).ParseFS(templates, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// NominationData is the summary admins see for a nomination request.
type NominationData struct {
	Role      election.Role
	Group     *election.Group
	Requester Member
	// Current is the user holding the role now, nil if vacant.
	Current *election.User
}

// RenderNominationMessage renders the Markdown request sent to the admin chat.
func RenderNominationMessage(data NominationData) (string, error) {
	return render(nominationTmpl, data)
}

// RenderHelpMessage renders the command list.
func RenderHelpMessage() (string, error) {
	return render(helpTmpl, nil)
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", tmpl.Name(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// decisionMessage is the text replacing the admin request once decided.
func decisionMessage(d *election.Decision, admin *election.User) string {
	if !d.Approved {
		return fmt.Sprintf(MsgFmtDecisionDenied, d.Requester.FullName(), admin.FullName())
	}
	return fmt.Sprintf(MsgFmtDecisionAccepted,
		d.Requester.FullName(), admin.FullName(), d.Role.Title(), d.Group.Ref(), d.Group.Course)
}

// requesterMessage is the direct message telling the requester the outcome.
func requesterMessage(d *election.Decision) string {
	if !d.Approved {
		return fmt.Sprintf(MsgFmtRequestDenied, d.Role.Title())
	}
	return fmt.Sprintf(MsgFmtRequestAccepted, d.Role.Title(), d.Group.Number, d.Group.Year)
}
