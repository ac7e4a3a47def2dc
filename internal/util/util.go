package util

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var dataURLPattern = regexp.MustCompile(`^data:(.*);base64,`)

// IsDataURL reports whether value carries inline base64 data rather than a hosted reference.
func IsDataURL(value string) bool {
	return dataURLPattern.MatchString(value)
}

// DecodeDataURL splits a base64 data URL into its media type and payload.
func DecodeDataURL(value string) (string, []byte, error) {
	match := dataURLPattern.FindStringSubmatch(value)
	if match == nil {
		return "", nil, errors.New("value is not a base64 data URL")
	}

	data, err := base64.StdEncoding.DecodeString(value[len(match[0]):])
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to decode base64 payload")
	}

	return match[1], data, nil
}

// Truncate cuts s to limit runes, replacing the tail with "..." when it is longer.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	const ellipsis = "..."
	runes := []rune(s)
	keep := limit - len(ellipsis)
	if keep < 0 {
		keep = 0
	}

	return string(runes[:keep]) + ellipsis
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}
