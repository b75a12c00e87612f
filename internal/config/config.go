package config

import (
	"github.com/opentofu/cluster-notifier/internal/notify"
)

type Config struct {
	Notifier notify.Notifier
}

// Handler returns the event handler delivering through the configured notifier.
func (c Config) Handler() *notify.Handler {
	return notify.NewHandler(c.Notifier)
}
