package ports

import "compass/internal/domain"

// CatalogueStore defines durable storage for categories and projects.
// Listing is ordered case-insensitively by name.
type CatalogueStore interface {
	// Categories
	UpsertCategory(name string) (*domain.Category, error)
	GetCategory(name string) (*domain.Category, error)
	ListCategories() ([]domain.Category, error)
	GetActiveCategory() (*domain.Category, error)
	SetActiveCategory(id string) error
	DeleteCategory(id string) error

	// Projects
	UpsertProject(project domain.Project) (*domain.Project, error)
	GetProject(path string) (*domain.Project, error)
	ListProjects(category string) ([]domain.Project, error)
	DeleteProject(path string) error
	// MoveProject stores project and removes the row at oldPath atomically
	MoveProject(oldPath string, project domain.Project) (*domain.Project, error)

	// Lifecycle
	Close() error
}
