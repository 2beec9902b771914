package module

import (
	"time"

	"quando/internal/platform/config"
	"quando/internal/services/reminder/service"
)

// FromConfig reads with REMINDER_ prefix
func FromConfig(cfg config.Conf) service.Options {
	c := cfg.Prefix("REMINDER_")
	return service.Options{
		Interval:  c.MayDuration("INTERVAL", time.Minute),
		Lookahead: c.MayDuration("LOOKAHEAD", 15*time.Minute),
		BatchSize: c.MayInt("BATCH_SIZE", 100),
	}
}
