package utils

import (
	"fmt"
	"time"
)

// RelativeAge renders how long ago t was, in the largest unit that still
// reads naturally: seconds under a minute, minutes under an hour, hours
// under a day, days under a week, weeks under a month, months under a
// year, then years.
func RelativeAge(t, now time.Time) string {
	sec := int64(now.Sub(t).Seconds())
	if sec < 1 {
		sec = 1
	}
	if sec < 60 {
		return fmt.Sprintf("%ds", sec)
	}
	min := sec / 60
	if min < 60 {
		return fmt.Sprintf("%dm", min)
	}
	hr := min / 60
	if hr < 24 {
		return fmt.Sprintf("%dh", hr)
	}
	day := hr / 24
	if day < 7 {
		return fmt.Sprintf("%dd", day)
	}
	if day < 30 {
		return fmt.Sprintf("%dw", day/7)
	}
	if day < 365 {
		return fmt.Sprintf("%dmo", day/30)
	}
	return fmt.Sprintf("%dy", day/365)
}
