package helper

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HashcodeTimestamp formats t the way every attendance hashcode embeds it.
func HashcodeTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// PlainHashcode builds "{entityID}-{eventID}-{timestamp}" for contingent and team rows.
func PlainHashcode(entityID, eventID int, at time.Time) string {
	return strconv.Itoa(entityID) + "-" + strconv.Itoa(eventID) + "-" + HashcodeTimestamp(at)
}

// SaltedHashcode is the hex SHA-256 of the dash-joined parts plus the
// timestamp and a random salt. Two calls never return the same value.
func SaltedHashcode(at time.Time, parts ...string) string {
	return SHA256Hex(strings.Join(append(parts, HashcodeTimestamp(at), NewSalt()), "-"))
}

// NewSalt returns a random salt string.
func NewSalt() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func SHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
