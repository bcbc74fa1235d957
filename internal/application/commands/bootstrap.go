package commands

import (
	"context"
	"fmt"

	"compass/internal/domain"
	"compass/internal/ports"
)

// BootstrapResult contains the result of preparing an empty catalogue
type BootstrapResult struct {
	Created  bool
	Category *domain.Category
	Message  string
}

// BootstrapCommand creates and activates the Default category when the
// catalogue has no categories at all
type BootstrapCommand struct {
	store ports.CatalogueStore
}

// NewBootstrapCommand creates a new BootstrapCommand
func NewBootstrapCommand(store ports.CatalogueStore) *BootstrapCommand {
	return &BootstrapCommand{store: store}
}

// Execute runs the bootstrap command
func (c *BootstrapCommand) Execute(ctx context.Context) (*BootstrapResult, error) {
	categories, err := c.store.ListCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(categories) > 0 {
		return &BootstrapResult{Message: "Catalogue already initialised"}, nil
	}

	cat, err := c.store.UpsertCategory(domain.DefaultCategoryName)
	if err != nil {
		return nil, fmt.Errorf("failed to create default category: %w", err)
	}
	if err := c.store.SetActiveCategory(cat.ID); err != nil {
		return nil, fmt.Errorf("failed to activate default category: %w", err)
	}
	cat.Active = true

	return &BootstrapResult{
		Created:  true,
		Category: cat,
		Message:  fmt.Sprintf("Created category %s", cat.Name),
	}, nil
}
