package utils

import (
	"fmt"
	"strings"
	"time"
)

// ReferencePrefix values used by the engines.
const (
	PrefixTransaction = "TRX"
	PrefixAccount     = "SAV"
	PrefixLeave       = "IZN"
)

// GenerateReferenceNumber builds a business key of the form
// {PREFIX}{yyyymmddHHMMSS}{4-byte hex suffix}. Uniqueness is only probabilistic;
// callers must probe storage and retry on collision.
func GenerateReferenceNumber(prefix string, now time.Time) (string, error) {
	suffix, err := GenerateSecureRandomString(4)
	if err != nil {
		return "", fmt.Errorf("failed to generate reference suffix: %w", err)
	}
	return fmt.Sprintf("%s%s%s", prefix, now.UTC().Format("20060102150405"), strings.ToUpper(suffix)), nil
}

// GenerateLeaveNumber builds a date-encoded leave number, e.g. IZN20250310A1B2C3D4.
func GenerateLeaveNumber(now time.Time) (string, error) {
	suffix, err := GenerateSecureRandomString(4)
	if err != nil {
		return "", fmt.Errorf("failed to generate leave number suffix: %w", err)
	}
	return fmt.Sprintf("%s%s%s", PrefixLeave, now.UTC().Format("20060102"), strings.ToUpper(suffix)), nil
}
