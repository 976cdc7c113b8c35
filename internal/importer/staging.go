package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"crate/internal/manifest"
	"crate/internal/textutil"
)

// StageFolderName is the staging subdirectory whose per-playlist
// folders route imported tracks to a playlist.
const StageFolderName = "To Playlist"

// StagingLookup maps a playlist staging folder name back to the
// playlist's display name.
type StagingLookup map[string]string

// BuildStagingLookup mirrors the manifest set as staging folders under
// <stagingRoot>/To Playlist, creating any that are missing, and returns
// the folder-to-playlist mapping. A missing manifest directory yields
// an empty lookup; the staging skeleton is still created.
func BuildStagingLookup(stagingRoot, manifestDir string) (StagingLookup, error) {
	stageRoot := filepath.Join(stagingRoot, StageFolderName)
	if err := os.MkdirAll(stageRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create staging root: %w", err)
	}

	lookup := make(StagingLookup)
	entries, err := os.ReadDir(manifestDir)
	if err != nil {
		if os.IsNotExist(err) {
			return lookup, nil
		}
		return nil, fmt.Errorf("read manifest directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		playlist := manifest.FriendlyName(name)
		folder := textutil.SafeComponent(playlist, "Playlist")
		lookup[folder] = playlist
		if err := os.MkdirAll(filepath.Join(stageRoot, folder), 0o755); err != nil {
			return nil, fmt.Errorf("create staging folder %s: %w", folder, err)
		}
	}
	return lookup, nil
}

// PlaylistFor resolves the playlist a staged file targets from its path
// relative to the staging root. Files outside a known playlist folder
// carry no target.
func (l StagingLookup) PlaylistFor(relPath string) string {
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	if len(parts) < 3 || parts[0] != StageFolderName {
		return ""
	}
	return l[parts[1]]
}
