// Package templates embeds the HTML sent by email and rendered on confirmation.
package templates

import "embed"

//go:embed *.html
var FS embed.FS

const (
	Verification = "verification.html"
	Status       = "status.html"
)
