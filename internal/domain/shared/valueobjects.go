// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages.
package shared

import (
	"regexp"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// ID Value Objects
// ═══════════════════════════════════════════════════════════════════════════

// UUID validation regex (simple version).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// MentorID represents a unique mentor identifier (UUID format).
type MentorID string

// IsValid checks if the mentor ID is a valid UUID.
func (m MentorID) IsValid() bool {
	return uuidRegex.MatchString(string(m))
}

// String returns the string representation.
func (m MentorID) String() string {
	return string(m)
}

// IsEmpty checks if the ID is empty.
func (m MentorID) IsEmpty() bool {
	return m == ""
}

// ParticipantID represents a unique participant identifier (UUID format).
type ParticipantID string

// IsValid checks if the participant ID is a valid UUID.
func (p ParticipantID) IsValid() bool {
	return uuidRegex.MatchString(string(p))
}

// String returns the string representation.
func (p ParticipantID) String() string {
	return string(p)
}

// IsEmpty checks if the ID is empty.
func (p ParticipantID) IsEmpty() bool {
	return p == ""
}

// ═══════════════════════════════════════════════════════════════════════════
// Rating Value Object
// ═══════════════════════════════════════════════════════════════════════════

// RatingScale is the upper bound of the mentor rating scale.
const RatingScale = 5.0

// RatingNeutral is the midpoint used when a rating is absent.
// New mentors without session feedback must never be scored as zero.
const RatingNeutral = RatingScale / 2

// Rating represents a mentor rating on the [0,5] scale.
// The zero value with Known=false means "no feedback yet".
type Rating struct {
	Value float64
	Known bool
}

// NewRating creates a known rating.
func NewRating(value float64) (Rating, error) {
	r := Rating{Value: value, Known: true}
	if !r.IsValid() {
		return Rating{}, ErrInvalidRating
	}
	return r, nil
}

// UnknownRating returns an absent rating.
func UnknownRating() Rating {
	return Rating{}
}

// IsValid checks the rating is within the [0,5] scale.
func (r Rating) IsValid() bool {
	if !r.Known {
		return true
	}
	return r.Value >= 0 && r.Value <= RatingScale
}

// OrNeutral returns the rating value, or the neutral midpoint when absent.
func (r Rating) OrNeutral() float64 {
	if !r.Known {
		return RatingNeutral
	}
	return r.Value
}

// AtLeast reports whether the rating meets a minimum threshold.
// An absent rating never meets a positive threshold: minRating is a hard
// filter and candidacy requires demonstrated feedback.
func (r Rating) AtLeast(min float64) bool {
	if min <= 0 {
		return true
	}
	return r.Known && r.Value >= min
}

// ═══════════════════════════════════════════════════════════════════════════
// Tag Value Object
// ═══════════════════════════════════════════════════════════════════════════

// NormalizeTag canonicalizes a skill/industry tag: trimmed, lowercased,
// inner whitespace collapsed to single dashes.
func NormalizeTag(tag string) string {
	t := strings.ToLower(strings.TrimSpace(tag))
	return strings.Join(strings.Fields(t), "-")
}

// NormalizeTags canonicalizes a tag list, dropping empties and duplicates
// while preserving first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := NormalizeTag(tag)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
