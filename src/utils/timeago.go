package utils

import (
	"strings"
	"time"

	"github.com/ararog/timeago"
)

// TimeAgo renders a unix timestamp relative to now, "just now" under a minute.
func TimeAgo(unix int64, now time.Time) string {
	t := time.Unix(unix, 0)
	if now.Sub(t) < time.Minute {
		return "just now"
	}
	got, err := timeago.TimeAgoWithTime(now, t)
	if err != nil {
		return t.UTC().Format("2006-01-02")
	}
	return strings.ToLower(got)
}
