// Package metrics defines and registers the custom Prometheus metrics of the
// credential service. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics are registered with the default registry through promauto, so
// they are exported by the /metrics endpoint without further setup.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "credentials"

// Result label values shared by the counters below.
const (
	ResultSuccess            = "success"
	ResultEmailExists        = "email_exists"
	ResultInvalidInput       = "invalid_input"
	ResultInvalidCredentials = "invalid_credentials"
	ResultStoreError         = "store_error"
	ResultMissing            = "missing"
	ResultInvalid            = "invalid"
)

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: success, email_exists, invalid_input or store_error
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts. Unknown email and wrong password share
// the invalid_credentials label.
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Token metrics ─────────────────────────────────────────────────────────────

// TokenChecksTotal counts authorization gate decisions.
// Label:
//   - result: success, missing or invalid
var TokenChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_checks_total",
		Help:      "Total number of session token checks at the authorization gate.",
	},
	[]string{"result"},
)
