package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/mail"
)

type SendEmailInput struct {
	To      string
	Subject string
	Body    string
}

// Sender hands a rendered HTML message to a mail transport.
type Sender interface {
	Send(input SendEmailInput) error
}

// GenerateBodyFromHTML executes the named template from fsys into Body.
func (e *SendEmailInput) GenerateBodyFromHTML(fsys fs.FS, templateFileName string, data interface{}) error {
	t, err := template.ParseFS(fsys, templateFileName)
	if err != nil {
		return fmt.Errorf("parse file failed: %w", err)
	}

	return e.GenerateBodyFromTemplate(t, data)
}

func (e *SendEmailInput) GenerateBodyFromTemplate(t *template.Template, data interface{}) error {
	buf := new(bytes.Buffer)
	if err := t.Execute(buf, data); err != nil {
		return fmt.Errorf("email data injection failed: %w", err)
	}

	e.Body = buf.String()

	return nil
}

func (e *SendEmailInput) Validate() error {
	if e.To == "" {
		return errors.New("empty to")
	}

	if e.Subject == "" || e.Body == "" {
		return errors.New("empty subject/body")
	}

	if !IsEmailValid(e.To) {
		return errors.New("invalid to email")
	}

	return nil
}

func IsEmailValid(address string) bool {
	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return false
	}

	return parsed.Address == address
}
