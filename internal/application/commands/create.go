package commands

import (
	"context"
	"fmt"
	"time"

	"compass/internal/application"
	"compass/internal/ports"
)

// CreateProjectCommand scaffolds a new project directory from the configured
// template and catalogues it
type CreateProjectCommand struct {
	store      ports.CatalogueStore
	scaffolder ports.Scaffolder
	Dir        string
	Category   string
	Now        time.Time
}

// NewCreateProjectCommand creates a new CreateProjectCommand
func NewCreateProjectCommand(store ports.CatalogueStore, scaffolder ports.Scaffolder, dir, category string, now time.Time) *CreateProjectCommand {
	return &CreateProjectCommand{
		store:      store,
		scaffolder: scaffolder,
		Dir:        dir,
		Category:   category,
		Now:        now,
	}
}

// Validate checks if the create operation is valid
func (c *CreateProjectCommand) Validate() error {
	if c.scaffolder == nil {
		return fmt.Errorf("no project template configured: %w", application.ErrInvalidOperation)
	}
	return c.add("").Validate()
}

// Execute runs the create project command
func (c *CreateProjectCommand) Execute(ctx context.Context) (*ProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	dir, _ := application.NormalizePath("dir", c.Dir)
	if err := c.scaffolder.Scaffold(ctx, dir); err != nil {
		return nil, fmt.Errorf("failed to scaffold %s: %w", dir, err)
	}

	result, err := c.add(dir).Execute(ctx)
	if err != nil {
		return nil, err
	}
	result.Message = fmt.Sprintf("Created %s in %s", result.Project.Name, result.Project.Category.Name)
	return result, nil
}

func (c *CreateProjectCommand) add(dir string) *AddProjectCommand {
	if dir == "" {
		dir = c.Dir
	}
	return NewAddProjectCommand(c.store, dir, "", c.Category, c.Now)
}
