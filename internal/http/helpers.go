package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// parseCompany extracts the selected company from query parameters.
func parseCompany(r *http.Request) string {
	return sanitizeInput(r.URL.Query().Get("company"))
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// formatRatio renders a debt-to-equity style ratio with two decimals.
func formatRatio(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// formatPct renders a percentage with one decimal, e.g. "33.3%".
func formatPct(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
