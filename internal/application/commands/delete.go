package commands

import (
	"context"
	"fmt"
	"strings"

	"compass/internal/application"
	"compass/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	Deleted []string
	Message string
}

// DeleteProjectsCommand removes projects from the catalogue by path.
// Directories on disk are left alone.
type DeleteProjectsCommand struct {
	store ports.CatalogueStore
	Paths []string
}

// NewDeleteProjectsCommand creates a new DeleteProjectsCommand
func NewDeleteProjectsCommand(store ports.CatalogueStore, paths []string) *DeleteProjectsCommand {
	return &DeleteProjectsCommand{
		store: store,
		Paths: paths,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteProjectsCommand) Validate() error {
	if len(c.Paths) == 0 {
		return &application.ValidationError{
			Field:   "paths",
			Message: "at least one path is required",
		}
	}
	for _, p := range c.Paths {
		if err := application.ValidateRequired("path", p); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the delete projects command
func (c *DeleteProjectsCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	deleted := make([]string, 0, len(c.Paths))
	for _, p := range c.Paths {
		project, err := lookupProject(c.store, "path", p)
		if err != nil {
			return nil, err
		}
		if project == nil {
			continue
		}
		if err := c.store.DeleteProject(project.Path); err != nil {
			return nil, fmt.Errorf("failed to delete %s: %w", project.Path, err)
		}
		deleted = append(deleted, project.Path)
	}

	return &DeleteResult{
		Deleted: deleted,
		Message: fmt.Sprintf("Deleted %d project(s)", len(deleted)),
	}, nil
}

// DeleteCategoryCommand deletes a category and every project filed under it.
// If the catalogue ends up empty the Default category is recreated.
type DeleteCategoryCommand struct {
	store ports.CatalogueStore
	Name  string
}

// NewDeleteCategoryCommand creates a new DeleteCategoryCommand
func NewDeleteCategoryCommand(store ports.CatalogueStore, name string) *DeleteCategoryCommand {
	return &DeleteCategoryCommand{
		store: store,
		Name:  name,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCategoryCommand) Validate() error {
	return application.ValidateRequired("category", c.Name)
}

// Execute runs the delete category command
func (c *DeleteCategoryCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(c.Name)
	cat, err := c.store.GetCategory(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if cat == nil {
		return &DeleteResult{Message: fmt.Sprintf("No category named %s", name)}, nil
	}

	projects, err := c.store.ListProjects(cat.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	if err := c.store.DeleteCategory(cat.ID); err != nil {
		return nil, fmt.Errorf("failed to delete category %s: %w", name, err)
	}

	if _, err := NewBootstrapCommand(c.store).Execute(ctx); err != nil {
		return nil, err
	}

	return &DeleteResult{
		Deleted: []string{cat.Name},
		Message: fmt.Sprintf("Deleted category %s and %d project(s)", cat.Name, len(projects)),
	}, nil
}
