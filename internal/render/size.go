package render

import "fmt"

var sizeUnits = [...]string{"B", "KB", "MB", "GB"}

// FormatSize renders a byte count with one decimal and a binary unit.
// GB is the largest unit; bigger values stay in GB.
func FormatSize(bytes uint64) string {
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", size, sizeUnits[unit])
}
