// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draws

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	refPrefix    = "REF"
	refSuffixLen = 5
	refAlphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"

	// refMaxAttempts bounds the ledger's retry loop when a generated
	// reference collides with an existing one.
	refMaxAttempts = 3
)

// NewReference builds a participation reference number: a fixed prefix, the
// creation instant in base36 milliseconds, and a random base36 suffix,
// uppercased. The time component keeps references roughly sortable; the
// suffix makes same-millisecond collisions overwhelmingly unlikely. The
// ledger's unique constraint catches the rest.
func NewReference(now time.Time) (string, error) {
	b := make([]byte, refSuffixLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate reference suffix: %w", err)
	}

	suffix := make([]byte, refSuffixLen)
	for i, c := range b {
		suffix[i] = refAlphabet[int(c)%len(refAlphabet)]
	}

	ts := strconv.FormatInt(now.UnixMilli(), 36)
	return strings.ToUpper(refPrefix + "-" + ts + "-" + string(suffix)), nil
}
