package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Accounts created through Register.",
	})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})

	refreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_token_refreshes_total",
		Help: "Refresh token rotations by outcome.",
	}, []string{"outcome"})

	passwordResetsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_password_resets_total",
		Help: "Password reset flow progress by stage.",
	}, []string{"stage"})
)

const (
	outcomeSuccess   = "success"
	outcomeNotFound  = "not_found"
	outcomeBadCreds  = "bad_credentials"
	outcomeRejected  = "rejected"
	outcomeThrottled = "throttled"

	stageRequested = "requested"
	stageCompleted = "completed"
)
