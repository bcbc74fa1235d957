package commands

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"compass/internal/domain"
	"compass/internal/ports"
)

// memStore is an in-memory CatalogueStore with the same upsert rules as the
// SQLite adapter
type memStore struct {
	categories map[string]*domain.Category // by name
	projects   map[string]*domain.Project  // by path
	nextID     int
	failWith   error
	moves      []string // old paths passed to MoveProject
}

var _ ports.CatalogueStore = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		categories: make(map[string]*domain.Category),
		projects:   make(map[string]*domain.Project),
	}
}

func (m *memStore) UpsertCategory(name string) (*domain.Category, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("category name is required")
	}
	if c, ok := m.categories[name]; ok {
		cp := *c
		return &cp, nil
	}
	m.nextID++
	c := &domain.Category{ID: fmt.Sprintf("cat-%d", m.nextID), Name: name}
	m.categories[name] = c
	cp := *c
	return &cp, nil
}

func (m *memStore) GetCategory(name string) (*domain.Category, error) {
	if c, ok := m.categories[name]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) byID(id string) *domain.Category {
	for _, c := range m.categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (m *memStore) ListCategories() ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (m *memStore) GetActiveCategory() (*domain.Category, error) {
	for _, c := range m.categories {
		if c.Active {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) SetActiveCategory(id string) error {
	target := m.byID(id)
	if target == nil {
		return nil
	}
	for _, c := range m.categories {
		c.Active = false
	}
	target.Active = true
	return nil
}

func (m *memStore) DeleteCategory(id string) error {
	target := m.byID(id)
	if target == nil {
		return nil
	}
	for path, p := range m.projects {
		if p.Category.ID == id {
			delete(m.projects, path)
		}
	}
	delete(m.categories, target.Name)
	return nil
}

func (m *memStore) UpsertProject(project domain.Project) (*domain.Project, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var cat *domain.Category
	switch {
	case project.Category.Name != "":
		c, err := m.UpsertCategory(project.Category.Name)
		if err != nil {
			return nil, err
		}
		cat = c
	case project.Category.ID != "":
		cat = m.byID(project.Category.ID)
		if cat == nil {
			return nil, domain.ErrNotFound
		}
	default:
		c, _ := m.UpsertCategory(domain.DefaultCategoryName)
		cat = c
	}
	if project.Name == "" {
		project.Name = domain.NameFromPath(project.Path)
	}
	project.Category = *m.categories[cat.Name]
	m.projects[project.Path] = &project
	cp := project
	return &cp, nil
}

func (m *memStore) GetProject(path string) (*domain.Project, error) {
	if p, ok := m.projects[path]; ok {
		cp := *p
		cp.Category = *m.byID(p.Category.ID)
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) ListProjects(category string) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range m.projects {
		cat := m.byID(p.Category.ID)
		if category != "" && (cat == nil || cat.Name != category) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].Path < out[j].Path
	})
	return out, nil
}

func (m *memStore) DeleteProject(path string) error {
	delete(m.projects, path)
	return nil
}

func (m *memStore) MoveProject(oldPath string, project domain.Project) (*domain.Project, error) {
	m.moves = append(m.moves, oldPath)
	moved, err := m.UpsertProject(project)
	if err != nil {
		return nil, err
	}
	if oldPath != moved.Path {
		delete(m.projects, oldPath)
	}
	return moved, nil
}

func (m *memStore) Close() error { return nil }

// fakeLauncher records launches instead of starting processes
type fakeLauncher struct {
	calls [][]string
	err   error
}

func (f *fakeLauncher) Launch(ide string, paths []string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, append([]string{ide}, paths...))
	return nil
}

func (f *fakeLauncher) Command(ide string, paths []string) (*exec.Cmd, error) {
	return exec.Command(ide, paths...), nil
}

// fakeScaffolder records the directories it was asked to create
type fakeScaffolder struct {
	dirs []string
	err  error
}

func (f *fakeScaffolder) Scaffold(ctx context.Context, dir string) error {
	if f.err != nil {
		return f.err
	}
	f.dirs = append(f.dirs, dir)
	return nil
}
