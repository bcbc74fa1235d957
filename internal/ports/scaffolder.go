package ports

import "context"

// Scaffolder generates a new project directory from a template.
// dir is the directory to create; its base name becomes the project name.
type Scaffolder interface {
	Scaffold(ctx context.Context, dir string) error
}
