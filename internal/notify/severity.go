// Package notify decides the tone of a notification from a progress snapshot,
// renders it for each messaging channel and fans it out to every enabled one.
package notify

import (
	"fmt"

	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/models"
)

// Severity is the tone of an accountability alert.
type Severity string

const (
	SeverityGentle Severity = "gentle"
	SeverityFirm   Severity = "firm"
	SeverityHarsh  Severity = "harsh"
	SeverityBrutal Severity = "brutal"
)

// SeverityFromMissedDays walks the ladder top-down; the first band that matches wins.
func SeverityFromMissedDays(missedDays int) Severity {
	switch {
	case missedDays >= constants.BrutalMissedDays:
		return SeverityBrutal
	case missedDays >= constants.HarshMissedDays:
		return SeverityHarsh
	case missedDays >= constants.FirmMissedDays:
		return SeverityFirm
	default:
		return SeverityGentle
	}
}

// ReminderTier is the tone of a daily reminder, keyed off today's completion.
type ReminderTier string

const (
	TierZeroProgress  ReminderTier = "zero_progress"
	TierFallingShort  ReminderTier = "falling_short"
	TierGoodProgress  ReminderTier = "good_progress"
	TierBeastModeDone ReminderTier = "beast_mode"
)

// ReminderTierFor maps completed/total sessions onto a reminder tier.
func ReminderTierFor(completed, total int) ReminderTier {
	if total <= 0 || completed <= 0 {
		return TierZeroProgress
	}
	pct := float64(completed) / float64(total) * 100
	switch {
	case pct >= 100:
		return TierBeastModeDone
	case pct >= 50:
		return TierGoodProgress
	default:
		return TierFallingShort
	}
}

// MessageType is the logical event being announced.
type MessageType string

const (
	TypeDailyReminder       MessageType = "daily_reminder"
	TypeAccountabilityAlert MessageType = "accountability_alert"
	TypeCelebration         MessageType = "celebration"
)

func ParseMessageType(s string) (MessageType, error) {
	switch MessageType(s) {
	case TypeDailyReminder, TypeAccountabilityAlert, TypeCelebration:
		return MessageType(s), nil
	case "reminder":
		return TypeDailyReminder, nil
	case "alert":
		return TypeAccountabilityAlert, nil
	}
	return "", fmt.Errorf("invalid message type: %q (expected daily_reminder, accountability_alert or celebration)", s)
}

// ShouldSend reports whether a message of type t is worth sending at all.
// Accountability alerts need at least two missed days; everything else always fires.
func ShouldSend(t MessageType, p models.UserProgress) bool {
	if t == TypeAccountabilityAlert {
		return p.MissedDays >= constants.AlertMinMissedDays
	}
	return true
}
