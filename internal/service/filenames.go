package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const timestampLayout = "20060102_150405"

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// Clock returns the current time; services take one so filenames are testable.
type Clock func() time.Time

func timestamped(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format(timestampLayout), ext)
}

// safeBase strips characters that are not allowed in download names.
func safeBase(name, fallback string) string {
	cleaned := unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(name), "_")
	cleaned = strings.Trim(cleaned, ". ")
	if cleaned == "" {
		return fallback
	}
	return cleaned
}
