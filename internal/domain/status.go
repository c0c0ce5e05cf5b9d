package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatusCheck is a client liveness ping recorded for diagnostics
type StatusCheck struct {
	ID         uuid.UUID `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}
