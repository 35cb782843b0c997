package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)

	tt := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{name: "seconds", ago: 30 * time.Second, want: "Just now"},
		{name: "future", ago: -time.Hour, want: "Just now"},
		{name: "59m", ago: 59 * time.Minute, want: "Just now"},
		{name: "1h", ago: time.Hour, want: "1h ago"},
		{name: "23h59m", ago: 23*time.Hour + 59*time.Minute, want: "23h ago"},
		{name: "1d", ago: 24 * time.Hour, want: "1d ago"},
		{name: "47h", ago: 47 * time.Hour, want: "1d ago"},
		{name: "6d23h", ago: 167 * time.Hour, want: "6d ago"},
		{name: "7d", ago: 168 * time.Hour, want: "2/3/2024"},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RelativeTime(now.Add(-tc.ago), now))
		})
	}
}

func TestConversationDay(t *testing.T) {
	now := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", ConversationDay(now.Add(-time.Hour), now))
	assert.Equal(t, "Yesterday", ConversationDay(now.Add(-30*time.Hour), now))
	assert.Equal(t, "2/7/2024", ConversationDay(now.Add(-72*time.Hour), now))
}
