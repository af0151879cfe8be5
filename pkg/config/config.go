package config

import (
	"github.com/kelseyhightower/envconfig"
)

// App holds every knob the service reads from the environment. Nothing is
// required: a missing store, relay, broker or collector puts that feature in
// degraded mode instead of failing startup.
type App struct {
	// Network
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// Mail relay
	SMTPHost   string `envconfig:"SMTP_HOST"`
	SMTPPort   int    `envconfig:"SMTP_PORT" default:"465"`
	SMTPUser   string `envconfig:"SMTP_USER"`
	SMTPPass   string `envconfig:"SMTP_PASS"`
	FromEmail  string `envconfig:"FROM_EMAIL"`
	AdminEmail string `envconfig:"ADMIN_EMAIL"`

	// Operator access
	AdminToken string `envconfig:"ADMIN_TOKEN"`

	// KV store (REST endpoint + bearer token)
	KVRestURL   string `envconfig:"KV_REST_API_URL"`
	KVRestToken string `envconfig:"KV_REST_API_TOKEN"`

	// Event broker
	RabbitURL string `envconfig:"RABBIT_URL"`

	// Observability
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Env          string `envconfig:"ENV" default:"dev"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}

// SMTPConfigured reports whether the full relay credential set is present.
// Partial configuration counts as unconfigured.
func (c App) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != "" &&
		c.FromEmail != "" && c.AdminEmail != ""
}

// KVConfigured reports whether the booking store can be reached at all.
func (c App) KVConfigured() bool {
	return c.KVRestURL != "" && c.KVRestToken != ""
}
