package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	EmailSent    = "sent"
	EmailFailed  = "failed"
	EmailSkipped = "skipped"

	SignupCreated   = "created"
	SignupDuplicate = "duplicate"
	SignupError     = "error"
)

var (
	VerificationEmails = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verification_emails_total",
		Help: "Confirmation emails by dispatch result.",
	}, []string{"result"})

	Confirmations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verification_confirmations_total",
		Help: "Confirmation attempts by outcome.",
	}, []string{"outcome"})

	Signups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "signups_total",
		Help: "Signup attempts by result.",
	}, []string{"result"})
)
