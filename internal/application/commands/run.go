package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"compass/internal/application"
	"compass/internal/ports"
)

// RunResult contains the result of launching projects
type RunResult struct {
	IDE     string
	Paths   []string
	Message string
}

// RunProjectsCommand stamps the selected projects as opened and hands them
// to one IDE process
type RunProjectsCommand struct {
	store    ports.CatalogueStore
	launcher ports.Launcher
	Paths    []string
	IDE      string
	Now      time.Time
}

// NewRunProjectsCommand creates a new RunProjectsCommand
func NewRunProjectsCommand(store ports.CatalogueStore, launcher ports.Launcher, paths []string, ide string, now time.Time) *RunProjectsCommand {
	return &RunProjectsCommand{
		store:    store,
		launcher: launcher,
		Paths:    paths,
		IDE:      ide,
		Now:      now,
	}
}

// Validate checks if the run operation is valid
func (c *RunProjectsCommand) Validate() error {
	if err := application.ValidateRequired("ide", c.IDE); err != nil {
		return err
	}
	if len(c.Paths) == 0 {
		return &application.ValidationError{
			Field:   "paths",
			Message: "select at least one project",
		}
	}
	return nil
}

// Execute runs the run projects command
func (c *RunProjectsCommand) Execute(ctx context.Context) (*RunResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(c.Paths))
	for _, p := range c.Paths {
		project, err := lookupProject(c.store, "path", p)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, fmt.Errorf("project %s: %w", strings.TrimSpace(p), application.ErrNotFound)
		}

		project.LastOpened = c.Now
		if _, err := c.store.UpsertProject(*project); err != nil {
			return nil, fmt.Errorf("failed to stamp %s: %w", project.Path, err)
		}
		paths = append(paths, project.Path)
	}

	ide := strings.TrimSpace(c.IDE)
	if err := c.launcher.Launch(ide, paths); err != nil {
		return nil, &application.LaunchError{IDE: ide, Paths: paths, Reason: err}
	}

	return &RunResult{
		IDE:     ide,
		Paths:   paths,
		Message: fmt.Sprintf("Opened %d project(s) in %s", len(paths), ide),
	}, nil
}
