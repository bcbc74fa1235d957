package commands

import (
	"context"
	"fmt"
	"strings"

	"compass/internal/application"
	"compass/internal/domain"
	"compass/internal/ports"
)

// CategoryResult contains the category touched by a command
type CategoryResult struct {
	Category *domain.Category
	Message  string
}

// ActivateCategoryCommand makes the named category the active one,
// creating it first when needed
type ActivateCategoryCommand struct {
	store ports.CatalogueStore
	Name  string
}

// NewActivateCategoryCommand creates a new ActivateCategoryCommand
func NewActivateCategoryCommand(store ports.CatalogueStore, name string) *ActivateCategoryCommand {
	return &ActivateCategoryCommand{
		store: store,
		Name:  name,
	}
}

// Validate checks if the activate operation is valid
func (c *ActivateCategoryCommand) Validate() error {
	return application.ValidateRequired("category", c.Name)
}

// Execute runs the activate category command
func (c *ActivateCategoryCommand) Execute(ctx context.Context) (*CategoryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cat, err := c.store.UpsertCategory(strings.TrimSpace(c.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert category: %w", err)
	}
	if err := c.store.SetActiveCategory(cat.ID); err != nil {
		return nil, fmt.Errorf("failed to activate category: %w", err)
	}
	cat.Active = true

	return &CategoryResult{
		Category: cat,
		Message:  fmt.Sprintf("Active category: %s", cat.Name),
	}, nil
}
