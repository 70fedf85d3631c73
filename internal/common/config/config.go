// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Scheduler     SchedulerConfig     `mapstructure:"scheduler"`
	Push          PushConfig          `mapstructure:"push"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// NotificationsConfig holds settings for the notification core: history
// retention, default quiet hours installed at registration, and the
// optional template registry file.
type NotificationsConfig struct {
	HistoryLimit     int    `mapstructure:"history_limit"`
	QuietHoursStart  string `mapstructure:"quiet_hours_start"` // "HH:MM"
	QuietHoursEnd    string `mapstructure:"quiet_hours_end"`   // "HH:MM"
	TemplateRegistry string `mapstructure:"template_registry"` // optional JSON file
}

// SchedulerConfig holds settings for the campaign scheduler.
type SchedulerConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	TickInterval int  `mapstructure:"tick_interval"` // milliseconds
}

// PushConfig selects the delivery driver for drained notifications.
type PushConfig struct {
	Driver string `mapstructure:"driver"` // "simulated" or "sns"

	SNS struct {
		Region   string `mapstructure:"region"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`

	Timeout    int `mapstructure:"timeout"`     // milliseconds, per send
	MaxRetries int `mapstructure:"max_retries"` // per-item send attempts
	RetryDelay int `mapstructure:"retry_delay"` // milliseconds, initial backoff
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
