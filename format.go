package stopwatch

import "fmt"

// FormatTime renders a non-negative second count as HH:MM:SS.
// Hours past 99 widen the first field.
func FormatTime(totalSeconds int) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
