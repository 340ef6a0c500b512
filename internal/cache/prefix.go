package cache

import "fmt"

// Prefix namespaces keys written by one feature.
type Prefix string

const (
	// SentMessages maps a provider txguid to the RFC3339 time it was sent.
	SentMessages Prefix = "sent_messages"
	// VerifySessions maps a verification session to the number it was started for.
	VerifySessions Prefix = "verify_sessions"
)

func (p Prefix) Key(id string) string {
	return fmt.Sprintf("%s:%s", p, id)
}
