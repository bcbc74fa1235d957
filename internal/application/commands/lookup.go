package commands

import (
	"fmt"
	"strings"

	"compass/internal/application"
	"compass/internal/domain"
	"compass/internal/ports"
)

// lookupProject finds a catalogued project by a user-supplied path. The
// cleaned absolute form is tried first, then the path exactly as given so
// rows written by older launchers still match. Returns nil when absent.
func lookupProject(store ports.CatalogueStore, field, raw string) (*domain.Project, error) {
	path, err := application.NormalizePath(field, raw)
	if err != nil {
		return nil, err
	}

	project, err := store.GetProject(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project != nil {
		return project, nil
	}

	if trimmed := strings.TrimSpace(raw); trimmed != path {
		project, err = store.GetProject(trimmed)
		if err != nil {
			return nil, fmt.Errorf("failed to load project: %w", err)
		}
	}
	return project, nil
}
