package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

var hashSalt string

// InitHashSalt loads the log hash salt from the environment. Call once at
// startup, before any request logging happens.
func InitHashSalt() {
	hashSalt = os.Getenv("LOG_HASH_SALT")
	if hashSalt == "" {
		hashSalt = "default-salt-change-in-production"
	}
}

// InitHashSaltForTesting sets the salt directly, bypassing the environment.
func InitHashSaltForTesting(salt string) {
	hashSalt = salt
}

// HashUsername creates a privacy-preserving hash of a login name.
// This allows tracing a user's actions through the logs without exposing
// the actual account identifier.
func HashUsername(username string) string {
	data := username + ":" + hashSalt
	hash := sha256.Sum256([]byte(data))
	// First 8 characters are enough to correlate log lines.
	return hex.EncodeToString(hash[:])[:8]
}

// HashToken creates a privacy-preserving hash of a session token.
func HashToken(token string) string {
	data := token + ":" + hashSalt
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])[:8]
}

// SanitizeText redacts user-provided text while preserving length
// information for debugging.
func SanitizeText(text string) string {
	if text == "" {
		return "<empty>"
	}

	words := strings.Fields(text)
	return fmt.Sprintf("<redacted: %d words, %d chars>", len(words), len(text))
}
