package utils

import "fmt"

// ByteSize is an uncompressed or compressed entry size in bytes
type ByteSize uint64

const (
	Byte ByteSize = 1
	KB   ByteSize = 1024 * Byte
	MB   ByteSize = 1024 * KB
	GB   ByteSize = 1024 * MB
)

// String returns a human-readable size such as "512B", "2K" or "1.25M"
func (s ByteSize) String() string {
	formatValue := func(unit ByteSize, suffix string) string {
		val := float64(s) / float64(unit)
		if val == float64(uint64(val)) {
			return fmt.Sprintf("%.0f%s", val, suffix)
		}
		return fmt.Sprintf("%.2f%s", val, suffix)
	}

	switch {
	case s >= GB:
		return formatValue(GB, "G")
	case s >= MB:
		return formatValue(MB, "M")
	case s >= KB:
		return formatValue(KB, "K")
	default:
		return fmt.Sprintf("%dB", uint64(s))
	}
}

// Percent returns s as a percentage of total, or 0 when total is empty
func (s ByteSize) Percent(total ByteSize) float64 {
	if total == 0 {
		return 0
	}
	return float64(s) * 100 / float64(total)
}
