package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"compass/internal/application"
	"compass/internal/domain"
	"compass/internal/ports"
)

// ProjectResult contains the project written by a command
type ProjectResult struct {
	Project *domain.Project
	Message string
}

// AddProjectCommand catalogues an existing directory
type AddProjectCommand struct {
	store    ports.CatalogueStore
	Path     string
	Name     string // Defaults to the directory's base name
	Category string // Empty files the project under Default
	Now      time.Time
}

// NewAddProjectCommand creates a new AddProjectCommand
func NewAddProjectCommand(store ports.CatalogueStore, path, name, category string, now time.Time) *AddProjectCommand {
	return &AddProjectCommand{
		store:    store,
		Path:     path,
		Name:     name,
		Category: category,
		Now:      now,
	}
}

// Validate checks if the add operation is valid
func (c *AddProjectCommand) Validate() error {
	path, err := application.NormalizePath("path", c.Path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(c.Name) == "" && domain.NameFromPath(path) == "" {
		return &application.ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("cannot derive a name from %s", c.Path),
		}
	}
	return nil
}

// Execute runs the add project command
func (c *AddProjectCommand) Execute(ctx context.Context) (*ProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	path, _ := application.NormalizePath("path", c.Path)
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = domain.NameFromPath(path)
	}

	project, err := c.store.UpsertProject(domain.Project{
		Name:       name,
		Path:       path,
		LastOpened: c.Now,
		Category:   domain.Category{Name: strings.TrimSpace(c.Category)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add project: %w", err)
	}

	return &ProjectResult{
		Project: project,
		Message: fmt.Sprintf("Added %s to %s", project.Name, project.Category.Name),
	}, nil
}
