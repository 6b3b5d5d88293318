package domain

import "strings"

// ProfileName identifies a compression preset.
type ProfileName string

const (
	ProfileLow         ProfileName = "low"
	ProfileRecommended ProfileName = "recommended"
	ProfileExtreme     ProfileName = "extreme"
)

// CompressionProfile controls how hard a document is recompressed.
type CompressionProfile struct {
	Name         ProfileName `json:"name"`
	DeflateLevel int         `json:"deflate_level"`
	ImageQuality int         `json:"image_quality"`
	Resolution   int         `json:"resolution"`
}

var profiles = map[ProfileName]CompressionProfile{
	ProfileLow:         {Name: ProfileLow, DeflateLevel: 1, ImageQuality: 95, Resolution: 300},
	ProfileRecommended: {Name: ProfileRecommended, DeflateLevel: 6, ImageQuality: 75, Resolution: 150},
	ProfileExtreme:     {Name: ProfileExtreme, DeflateLevel: 9, ImageQuality: 50, Resolution: 72},
}

// LookupProfile resolves a form value. "less" is an alias for low, anything
// unknown falls back to recommended.
func LookupProfile(name string) CompressionProfile {
	n := ProfileName(strings.ToLower(strings.TrimSpace(name)))
	if n == "less" {
		n = ProfileLow
	}
	if p, ok := profiles[n]; ok {
		return p
	}
	return profiles[ProfileRecommended]
}

// CompactStreams reports whether object and xref streams should be written.
func (p CompressionProfile) CompactStreams() bool {
	return p.DeflateLevel >= 6
}

// Profiles lists the presets from lightest to strongest.
func Profiles() []CompressionProfile {
	return []CompressionProfile{
		profiles[ProfileLow],
		profiles[ProfileRecommended],
		profiles[ProfileExtreme],
	}
}
