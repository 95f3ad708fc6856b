// Package accesscode produces the deterministic monthly signup codes that
// gate registration for privileged roles. Codes are a pure function of
// (role, calendar month): every caller computes the same 11-digit string
// within a month, and the string rolls over on the 1st.
//
// The arithmetic is bit-compatible with the generator that produced codes
// already in circulation, so the wraparound behavior below is contractual:
// the seed chain runs in 32-bit signed arithmetic and the LCG step uses a
// truncated (sign-of-dividend) modulo, exactly as the reference does.
package accesscode

import (
	"strings"
	"time"

	"github.com/bframe197/MilMedMatch/internal/model"
)

const codeLength = 11

// For returns the access code for the given role in the month containing now.
func For(role model.Role, now time.Time) string {
	return ForMonth(role, now.Year(), int(now.Month())-1)
}

// ForMonth returns the access code for (role, year, monthIndex) where
// monthIndex is zero-based (January = 0).
func ForMonth(role model.Role, year, monthIndex int) string {
	monthKey := year*12 + monthIndex

	// Seed chain: seed = seed*31 + charCode, wrapping at 32 bits per step.
	seed := int32(monthKey)
	for _, c := range string(role) {
		seed = (seed << 5) - seed + int32(c)
	}

	// LCG digits. The running value may be negative; the modulo must keep
	// the sign of the dividend (Go's % does), and the digit is the absolute
	// value of the low decimal digit.
	s := int64(seed)
	var b strings.Builder
	b.Grow(codeLength)
	for i := 0; i < codeLength; i++ {
		s = (s*1664525 + 1013904223) % (1 << 32)
		d := s % 10
		if d < 0 {
			d = -d
		}
		b.WriteByte(byte('0' + d))
	}
	return b.String()
}
