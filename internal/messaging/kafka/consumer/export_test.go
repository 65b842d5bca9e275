package consumer

import "time"

// SetBackoff overrides the retry delays and returns a func restoring them.
func SetBackoff(min, max time.Duration) func() {
	prevMin, prevMax := minBackoff, maxBackoff
	minBackoff, maxBackoff = min, max
	return func() {
		minBackoff, maxBackoff = prevMin, prevMax
	}
}
