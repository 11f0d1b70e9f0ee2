package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newID mints entity identifiers; a variable so tests can pin ids.
var newID = uuid.New

// formatDocumentNumber renders human-readable document numbers such as
// INV-2026-0001.
func formatDocumentNumber(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}

// clock returns the current time; services hold one so tests can freeze it.
type clock func() time.Time
