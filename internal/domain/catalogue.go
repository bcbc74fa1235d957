package domain

import (
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// DefaultCategoryName is the category created when the catalogue has none
const DefaultCategoryName = "Default"

// RecentWindow is how long after being opened a project counts as recent
const RecentWindow = 3 * 24 * time.Hour

// ErrNotFound is returned when a referenced project or category does not exist
var ErrNotFound = errors.New("not found")

// Category groups projects. Name is the natural key; ID is minted on insert.
type Category struct {
	ID     string // Empty until the category has been stored
	Name   string
	Active bool
}

// IsStored reports whether the category carries a storage identifier
func (c Category) IsStored() bool {
	return c.ID != ""
}

// Project is a catalogued directory. Path is the primary key.
type Project struct {
	Name       string
	Path       string
	LastOpened time.Time
	Category   Category
}

// IsRecent reports whether the project was opened within RecentWindow of now
func (p Project) IsRecent(now time.Time) bool {
	return now.Sub(p.LastOpened) <= RecentWindow
}

// NameFromPath derives a project name from its directory
func NameFromPath(path string) string {
	cleaned := filepath.Clean(strings.TrimSpace(path))
	base := filepath.Base(cleaned)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return base
}

// DisplayLabels returns one label per project. Projects whose name is shared
// with another listed project are labelled "name (path)".
func DisplayLabels(projects []Project) []string {
	counts := make(map[string]int, len(projects))
	for _, p := range projects {
		counts[p.Name]++
	}

	labels := make([]string, len(projects))
	for i, p := range projects {
		if counts[p.Name] > 1 {
			labels[i] = p.Name + " (" + p.Path + ")"
		} else {
			labels[i] = p.Name
		}
	}
	return labels
}

// Paths extracts the paths of the given projects, preserving order
func Paths(projects []Project) []string {
	paths := make([]string, len(projects))
	for i, p := range projects {
		paths[i] = p.Path
	}
	return paths
}
