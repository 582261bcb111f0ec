package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Notification channel kinds accepted by alert rules.
const (
	NotifySystem = "system"
	NotifyEmail  = "email"
)

// AlertRule is one persisted price alert. Rules are append-only: they are
// deactivated, never mutated or deleted.
type AlertRule struct {
	ID            int64
	CropName      string
	UpperLimit    decimal.Decimal
	LowerLimit    decimal.Decimal
	NotifyVia     string
	Active        bool
	CreatedAt     time.Time
	LastTriggered *time.Time
}
