package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExportEvent records that a PDF was produced. It deliberately carries no
// résumé content.
type ExportEvent struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Template  string    `json:"template"`
	Language  string    `json:"language"`
	Renderer  string    `json:"renderer"`
	SizeBytes int       `json:"size_bytes"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
}
