package commands

import (
	"context"
	"strings"

	"compass/internal/domain"
	"compass/internal/ports"
)

// ListProjectsCommand lists projects, optionally within one category
type ListProjectsCommand struct {
	store    ports.CatalogueStore
	Category string
}

// NewListProjectsCommand creates a new ListProjectsCommand
func NewListProjectsCommand(store ports.CatalogueStore, category string) *ListProjectsCommand {
	return &ListProjectsCommand{
		store:    store,
		Category: category,
	}
}

// Execute runs the list projects command
func (c *ListProjectsCommand) Execute(ctx context.Context) ([]domain.Project, error) {
	return c.store.ListProjects(strings.TrimSpace(c.Category))
}

// ListCategoriesCommand lists all categories
type ListCategoriesCommand struct {
	store ports.CatalogueStore
}

// NewListCategoriesCommand creates a new ListCategoriesCommand
func NewListCategoriesCommand(store ports.CatalogueStore) *ListCategoriesCommand {
	return &ListCategoriesCommand{store: store}
}

// Execute runs the list categories command
func (c *ListCategoriesCommand) Execute(ctx context.Context) ([]domain.Category, error) {
	return c.store.ListCategories()
}

// ActiveCategoryCommand returns the active category, or nil when none is set
type ActiveCategoryCommand struct {
	store ports.CatalogueStore
}

// NewActiveCategoryCommand creates a new ActiveCategoryCommand
func NewActiveCategoryCommand(store ports.CatalogueStore) *ActiveCategoryCommand {
	return &ActiveCategoryCommand{store: store}
}

// Execute runs the active category command
func (c *ActiveCategoryCommand) Execute(ctx context.Context) (*domain.Category, error) {
	return c.store.GetActiveCategory()
}
