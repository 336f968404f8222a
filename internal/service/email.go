package service

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"

	"github.com/aetherdigital/backend/internal/config"
	emailProvider "github.com/aetherdigital/backend/pkg/email"
	"github.com/aetherdigital/backend/templates"
)

type verificationEmail struct {
	subject  string
	template *template.Template
}

func newVerificationEmail(cfg config.EmailConfig) (*verificationEmail, error) {
	var fsys fs.FS = templates.FS
	if cfg.Templates.Dir != "" {
		fsys = os.DirFS(cfg.Templates.Dir)
	}

	name := cfg.Templates.Verification
	if name == "" {
		name = templates.Verification
	}

	t, err := template.ParseFS(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("parse verification template failed: %w", err)
	}

	subject := cfg.Subject
	if subject == "" {
		subject = "Confirme seu e-mail"
	}

	return &verificationEmail{subject: subject, template: t}, nil
}

type verificationEmailInput struct {
	Username       string
	ConfirmURL     string
	ExpiresInHours int
}

func (e *verificationEmail) build(to string, input verificationEmailInput) (emailProvider.SendEmailInput, error) {
	sendInput := emailProvider.SendEmailInput{Subject: e.subject, To: to}

	if err := sendInput.GenerateBodyFromTemplate(e.template, input); err != nil {
		return sendInput, fmt.Errorf("generate email failed: %w", err)
	}

	return sendInput, nil
}
