package cmd

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// Config carries everything the process needs from the environment.
type Config struct {
	HTTPPort string

	// AdminIDs is the operator roster; the first id is the primary admin
	// and can never be removed.
	AdminIDs []kernel.ActorID

	// SessionTTL is how long an inactive conversational session survives
	// before the sweep job removes it.
	SessionTTL time.Duration

	// DisconnectReminderInterval paces the repeating disconnect approval
	// prompts to admins.
	DisconnectReminderInterval time.Duration

	// PendingOrderThreshold is how long a pool order may wait before the
	// reminder job nags the admins about it.
	PendingOrderThreshold time.Duration

	// ChannelBridgeURL points at the messaging connector's HTTP bridge.
	// Empty means outbound messages are only logged.
	ChannelBridgeURL string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
}

// UseDatabase reports whether PostgreSQL persistence is configured.
// Without it the process keeps all state in memory.
func (c Config) UseDatabase() bool {
	return c.DBHost != ""
}

// PostgresDSN builds the connection string for GORM.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
