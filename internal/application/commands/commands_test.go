package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"compass/internal/application"
	"compass/internal/domain"
)

var now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestBootstrapCommand(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	result, err := NewBootstrapCommand(store).Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Created {
		t.Fatal("expected Default to be created")
	}

	active, _ := store.GetActiveCategory()
	if active == nil || active.Name != domain.DefaultCategoryName {
		t.Fatalf("expected Default to be active, got %+v", active)
	}

	// Second run leaves the catalogue alone
	result, err = NewBootstrapCommand(store).Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Created {
		t.Error("bootstrap should not recreate Default")
	}
	cats, _ := store.ListCategories()
	if len(cats) != 1 {
		t.Errorf("expected 1 category, got %d", len(cats))
	}
}

func TestAddProjectCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		label   string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid path",
			path:    "/home/dev/api",
			wantErr: false,
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
			errMsg:  "path is required",
		},
		{
			name:    "whitespace path",
			path:    "   ",
			wantErr: true,
			errMsg:  "path is required",
		},
		{
			name:    "root path",
			path:    "/",
			wantErr: true,
			errMsg:  "filesystem root",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &AddProjectCommand{Path: tt.path, Name: tt.label}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errMsg != "" && !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAddProjectCommand_Execute(t *testing.T) {
	store := newMemStore()

	result, err := NewAddProjectCommand(store, "/home/dev/api/", "", "Work", now).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := result.Project
	if p.Name != "api" {
		t.Errorf("expected name derived from directory, got %q", p.Name)
	}
	if p.Path != "/home/dev/api" {
		t.Errorf("expected cleaned path, got %q", p.Path)
	}
	if !p.LastOpened.Equal(now) {
		t.Errorf("expected last opened %v, got %v", now, p.LastOpened)
	}
	if p.Category.Name != "Work" {
		t.Errorf("expected category Work, got %q", p.Category.Name)
	}
	if result.Message != "Added api to Work" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestAddProjectCommand_ExplicitNameAndDefaultCategory(t *testing.T) {
	store := newMemStore()

	result, err := NewAddProjectCommand(store, "/srv/site", "Marketing site", "", now).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Project.Name != "Marketing site" {
		t.Errorf("expected explicit name, got %q", result.Project.Name)
	}
	if result.Project.Category.Name != domain.DefaultCategoryName {
		t.Errorf("expected Default category, got %q", result.Project.Category.Name)
	}
}

func TestAddProjectCommand_StoreError(t *testing.T) {
	store := newMemStore()
	store.failWith = errors.New("disk I/O error")

	_, err := NewAddProjectCommand(store, "/srv/site", "", "", now).Execute(context.Background())
	if !errors.Is(err, store.failWith) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestCreateProjectCommand_Execute(t *testing.T) {
	store := newMemStore()
	scaffolder := &fakeScaffolder{}

	result, err := NewCreateProjectCommand(store, scaffolder, "/home/dev/new-tool", "Tools", now).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(scaffolder.dirs) != 1 || scaffolder.dirs[0] != "/home/dev/new-tool" {
		t.Errorf("expected scaffold of /home/dev/new-tool, got %v", scaffolder.dirs)
	}
	if result.Project.Name != "new-tool" || result.Project.Category.Name != "Tools" {
		t.Errorf("unexpected project %+v", result.Project)
	}
	if result.Message != "Created new-tool in Tools" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestCreateProjectCommand_ScaffoldFailureStoresNothing(t *testing.T) {
	store := newMemStore()
	scaffolder := &fakeScaffolder{err: errors.New("cookiecutter: exit status 1")}

	_, err := NewCreateProjectCommand(store, scaffolder, "/home/dev/broken", "", now).Execute(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	projects, _ := store.ListProjects("")
	if len(projects) != 0 {
		t.Errorf("expected no project stored, got %d", len(projects))
	}
}

func TestCreateProjectCommand_NoScaffolder(t *testing.T) {
	cmd := NewCreateProjectCommand(newMemStore(), nil, "/home/dev/x", "", now)
	if err := cmd.Validate(); !errors.Is(err, application.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation, got %v", err)
	}
}

func TestEditProjectCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		newName  string
		newPath  string
		category string
		wantErr  bool
		errMsg   string
	}{
		{name: "rename", path: "/a", newName: "b"},
		{name: "move", path: "/a", newPath: "/b"},
		{name: "recategorise", path: "/a", category: "Work"},
		{name: "empty path", path: "", newName: "b", wantErr: true, errMsg: "path is required"},
		{name: "nothing to change", path: "/a", wantErr: true, errMsg: "nothing to change"},
		{name: "new path is root", path: "/a", newPath: "/", wantErr: true, errMsg: "filesystem root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &EditProjectCommand{
				Path:     tt.path,
				NewName:  tt.newName,
				NewPath:  tt.newPath,
				Category: tt.category,
			}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				} else if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestEditProjectCommand_RenameKeepsLastOpened(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	if _, err := NewAddProjectCommand(store, "/p", "a", "Work", now).Execute(ctx); err != nil {
		t.Fatal(err)
	}

	result, err := NewEditProjectCommand(store, "/p", "b", "", "").Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Project.Name != "b" {
		t.Errorf("expected name b, got %q", result.Project.Name)
	}
	if !result.Project.LastOpened.Equal(now) {
		t.Errorf("expected last opened preserved, got %v", result.Project.LastOpened)
	}
	if result.Project.Category.Name != "Work" {
		t.Errorf("expected category preserved, got %q", result.Project.Category.Name)
	}
	projects, _ := store.ListProjects("")
	if len(projects) != 1 {
		t.Errorf("expected 1 project, got %d", len(projects))
	}
}

func TestEditProjectCommand_MoveReplacesRow(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	if _, err := NewAddProjectCommand(store, "/old/api", "", "", now).Execute(ctx); err != nil {
		t.Fatal(err)
	}

	if _, err := NewEditProjectCommand(store, "/old/api", "", "/new/api", "Work").Execute(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.moves) != 1 || store.moves[0] != "/old/api" {
		t.Errorf("expected one atomic move from /old/api, got %v", store.moves)
	}
	old, _ := store.GetProject("/old/api")
	if old != nil {
		t.Error("expected old path to be removed")
	}
	moved, _ := store.GetProject("/new/api")
	if moved == nil {
		t.Fatal("expected project at new path")
	}
	if moved.Name != "api" || moved.Category.Name != "Work" || !moved.LastOpened.Equal(now) {
		t.Errorf("unexpected moved project %+v", moved)
	}
}

func TestEditProjectCommand_NotFound(t *testing.T) {
	_, err := NewEditProjectCommand(newMemStore(), "/missing", "x", "", "").Execute(context.Background())
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProjectsCommand(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	for _, p := range []string{"/a", "/b", "/c"} {
		if _, err := NewAddProjectCommand(store, p, "", "", now).Execute(ctx); err != nil {
			t.Fatal(err)
		}
	}

	result, err := NewDeleteProjectsCommand(store, []string{"/a", "/c", "/missing"}).Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Deleted) != 2 {
		t.Errorf("expected 2 deletions reported, got %v", result.Deleted)
	}
	if result.Message != "Deleted 2 project(s)" {
		t.Errorf("unexpected message: %q", result.Message)
	}

	projects, _ := store.ListProjects("")
	if len(projects) != 1 || projects[0].Path != "/b" {
		t.Errorf("expected only /b left, got %+v", projects)
	}
}

func TestDeleteProjectsCommand_Validate(t *testing.T) {
	if err := NewDeleteProjectsCommand(newMemStore(), nil).Validate(); err == nil {
		t.Error("expected error for empty selection")
	}
	if err := NewDeleteProjectsCommand(newMemStore(), []string{"/a", " "}).Validate(); err == nil {
		t.Error("expected error for blank path")
	}
}

func TestDeleteCategoryCommand_LastCategoryRecreatesDefault(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	if _, err := NewActivateCategoryCommand(store, "Work").Execute(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := NewAddProjectCommand(store, "/p", "", "Work", now).Execute(ctx); err != nil {
		t.Fatal(err)
	}

	result, err := NewDeleteCategoryCommand(store, "Work").Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != "Deleted category Work and 1 project(s)" {
		t.Errorf("unexpected message %q", result.Message)
	}

	projects, _ := store.ListProjects("")
	if len(projects) != 0 {
		t.Errorf("expected cascade delete, got %d projects", len(projects))
	}
	cats, _ := store.ListCategories()
	if len(cats) != 1 || cats[0].Name != domain.DefaultCategoryName || !cats[0].Active {
		t.Errorf("expected only an active Default, got %+v", cats)
	}
}

func TestDeleteCategoryCommand_UnknownIsNoop(t *testing.T) {
	store := newMemStore()
	if _, err := store.UpsertCategory("Work"); err != nil {
		t.Fatal(err)
	}

	result, err := NewDeleteCategoryCommand(store, "Play").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Deleted) != 0 {
		t.Errorf("expected nothing deleted, got %v", result.Deleted)
	}
	cats, _ := store.ListCategories()
	if len(cats) != 1 {
		t.Errorf("expected Work untouched, got %+v", cats)
	}
}

func TestActivateCategoryCommand(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	if _, err := NewActivateCategoryCommand(store, "A").Execute(ctx); err != nil {
		t.Fatal(err)
	}
	result, err := NewActivateCategoryCommand(store, " B ").Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Category.Name != "B" || !result.Category.Active {
		t.Errorf("unexpected result %+v", result.Category)
	}

	cats, _ := store.ListCategories()
	active := 0
	for _, c := range cats {
		if c.Active {
			active++
		}
	}
	if active != 1 {
		t.Errorf("expected exactly one active category, got %d", active)
	}

	if err := NewActivateCategoryCommand(store, "").Validate(); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestListCommands(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	if _, err := NewAddProjectCommand(store, "/w/b", "", "Work", now).Execute(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := NewAddProjectCommand(store, "/w/a", "", "Work", now).Execute(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := NewAddProjectCommand(store, "/p/c", "", "Play", now).Execute(ctx); err != nil {
		t.Fatal(err)
	}

	work, err := NewListProjectsCommand(store, "Work").Execute(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(work) != 2 || work[0].Name != "a" || work[1].Name != "b" {
		t.Errorf("unexpected Work listing %+v", work)
	}

	all, _ := NewListProjectsCommand(store, "").Execute(ctx)
	if len(all) != 3 {
		t.Errorf("expected 3 projects, got %d", len(all))
	}

	cats, _ := NewListCategoriesCommand(store).Execute(ctx)
	if len(cats) != 2 || cats[0].Name != "Play" {
		t.Errorf("unexpected categories %+v", cats)
	}

	active, err := NewActiveCategoryCommand(store).Execute(ctx)
	if err != nil || active != nil {
		t.Errorf("expected no active category, got %+v, %v", active, err)
	}
}

func TestRunProjectsCommand(t *testing.T) {
	store := newMemStore()
	launcher := &fakeLauncher{}
	ctx := context.Background()
	earlier := now.Add(-10 * 24 * time.Hour)

	for _, p := range []string{"/a", "/b"} {
		if _, err := NewAddProjectCommand(store, p, "", "Work", earlier).Execute(ctx); err != nil {
			t.Fatal(err)
		}
	}

	result, err := NewRunProjectsCommand(store, launcher, []string{"/a", "/b"}, "code", now).Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(launcher.calls) != 1 {
		t.Fatalf("expected one launch, got %d", len(launcher.calls))
	}
	want := []string{"code", "/a", "/b"}
	for i, arg := range want {
		if launcher.calls[0][i] != arg {
			t.Errorf("launch arg %d = %q, want %q", i, launcher.calls[0][i], arg)
		}
	}

	for _, path := range []string{"/a", "/b"} {
		p, _ := store.GetProject(path)
		if !p.LastOpened.Equal(now) {
			t.Errorf("%s: expected last opened %v, got %v", path, now, p.LastOpened)
		}
		if p.Category.Name != "Work" {
			t.Errorf("%s: category changed to %q", path, p.Category.Name)
		}
	}
	if result.Message != "Opened 2 project(s) in code" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestRunProjectsCommand_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("no ide", func(t *testing.T) {
		err := NewRunProjectsCommand(newMemStore(), &fakeLauncher{}, []string{"/a"}, "", now).Validate()
		if err == nil || !contains(err.Error(), "IDE command is required") {
			t.Errorf("unexpected error %v", err)
		}
	})

	t.Run("no selection", func(t *testing.T) {
		err := NewRunProjectsCommand(newMemStore(), &fakeLauncher{}, nil, "code", now).Validate()
		if err == nil {
			t.Error("expected error")
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		launcher := &fakeLauncher{}
		_, err := NewRunProjectsCommand(newMemStore(), launcher, []string{"/missing"}, "code", now).Execute(ctx)
		if !errors.Is(err, application.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if len(launcher.calls) != 0 {
			t.Error("launcher should not run")
		}
	})

	t.Run("launch failure", func(t *testing.T) {
		store := newMemStore()
		if _, err := NewAddProjectCommand(store, "/a", "", "", now).Execute(ctx); err != nil {
			t.Fatal(err)
		}
		cause := errors.New("exec: \"nope\": executable file not found in $PATH")
		_, err := NewRunProjectsCommand(store, &fakeLauncher{err: cause}, []string{"/a"}, "nope", now).Execute(ctx)

		var launchErr *application.LaunchError
		if !errors.As(err, &launchErr) {
			t.Fatalf("expected LaunchError, got %v", err)
		}
		if !errors.Is(err, cause) {
			t.Error("expected LaunchError to wrap the cause")
		}
	})
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && len(substr) > 0 && findSubstring(s, substr)))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
