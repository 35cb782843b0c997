package service

import (
	"fmt"
	"time"
)

const calendarDateLayout = "1/2/2006"

// RelativeTime renders a post timestamp relative to now.
func RelativeTime(t, now time.Time) string {
	hours := int(now.Sub(t) / time.Hour)

	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case hours < 168:
		return fmt.Sprintf("%dd ago", hours/24)
	default:
		return t.Format(calendarDateLayout)
	}
}

// ConversationDay renders the day of the last message in a conversation list.
func ConversationDay(t, now time.Time) string {
	hours := int(now.Sub(t) / time.Hour)

	switch {
	case hours < 24:
		return "Today"
	case hours < 48:
		return "Yesterday"
	default:
		return t.Format(calendarDateLayout)
	}
}
