package commands

import (
	"context"
	"fmt"
	"strings"

	"compass/internal/application"
	"compass/internal/domain"
	"compass/internal/ports"
)

// EditProjectCommand renames, moves or recategorises a catalogued project.
// Empty fields are left unchanged. last_opened is preserved.
type EditProjectCommand struct {
	store    ports.CatalogueStore
	Path     string
	NewName  string
	NewPath  string
	Category string
}

// NewEditProjectCommand creates a new EditProjectCommand
func NewEditProjectCommand(store ports.CatalogueStore, path, newName, newPath, category string) *EditProjectCommand {
	return &EditProjectCommand{
		store:    store,
		Path:     path,
		NewName:  newName,
		NewPath:  newPath,
		Category: category,
	}
}

// Validate checks if the edit operation is valid
func (c *EditProjectCommand) Validate() error {
	if err := application.ValidateRequired("path", c.Path); err != nil {
		return err
	}
	if strings.TrimSpace(c.NewPath) != "" {
		if _, err := application.NormalizePath("newPath", c.NewPath); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.NewName+c.NewPath+c.Category) == "" {
		return &application.ValidationError{
			Field:   "newName",
			Message: "nothing to change",
		}
	}
	return nil
}

// Execute runs the edit project command
func (c *EditProjectCommand) Execute(ctx context.Context) (*ProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	existing, err := lookupProject(c.store, "path", c.Path)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("project %s: %w", strings.TrimSpace(c.Path), application.ErrNotFound)
	}

	updated := *existing
	if name := strings.TrimSpace(c.NewName); name != "" {
		updated.Name = name
	}
	if category := strings.TrimSpace(c.Category); category != "" {
		updated.Category = domain.Category{Name: category}
	}
	if strings.TrimSpace(c.NewPath) != "" {
		updated.Path, _ = application.NormalizePath("newPath", c.NewPath)
	}

	var project *domain.Project
	if updated.Path != existing.Path {
		project, err = c.store.MoveProject(existing.Path, updated)
	} else {
		project, err = c.store.UpsertProject(updated)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return &ProjectResult{
		Project: project,
		Message: fmt.Sprintf("Updated %s", project.Name),
	}, nil
}
