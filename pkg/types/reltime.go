package types

import (
	"fmt"
	"time"
)

// RelativeTime renders the coarse human-readable age of t as seen from now:
// days if at least one day old, else hours, else minutes, else "Just now".
// Deterministic given (now, t); display-only, never persisted.
func RelativeTime(now, t time.Time) string {
	d := now.Sub(t)

	if days := int(d.Hours() / 24); days >= 1 {
		return fmt.Sprintf("%d %s ago", days, plural("day", days))
	}
	if hours := int(d.Hours()); hours >= 1 {
		return fmt.Sprintf("%d %s ago", hours, plural("hour", hours))
	}
	if minutes := int(d.Minutes()); minutes >= 1 {
		return fmt.Sprintf("%d %s ago", minutes, plural("minute", minutes))
	}
	return "Just now"
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
