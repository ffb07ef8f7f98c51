package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

// tracksFile is the on-disk shape of the track label overlay:
//
//	[tracks.a]
//	name = "Beheer"
//	description = "CRM en interne tooling"
type tracksFile struct {
	Tracks map[string]roadmap.Label `toml:"tracks"`
}

// LoadTrackLabels reads the track label overlay. An empty path yields no
// overrides.
func LoadTrackLabels(path string) (map[roadmap.TrackKey]roadmap.Label, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tracks file: %w", err)
	}
	return ParseTrackLabels(data)
}

// ParseTrackLabels decodes a track label overlay. Unknown track keys are an
// error.
func ParseTrackLabels(data []byte) (map[roadmap.TrackKey]roadmap.Label, error) {
	var file tracksFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse tracks file: %w", err)
	}

	labels := make(map[roadmap.TrackKey]roadmap.Label, len(file.Tracks))
	for k, l := range file.Tracks {
		key := roadmap.TrackKey(k)
		if !slices.Contains(roadmap.TrackKeys, key) {
			return nil, fmt.Errorf("tracks file: unknown track %q", k)
		}
		labels[key] = l
	}
	return labels, nil
}
