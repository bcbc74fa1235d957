// Package scaffold creates project directories from a cookiecutter template.
package scaffold

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"compass/internal/ports"
)

// ErrExists is returned when the target directory is already present
var ErrExists = errors.New("directory already exists")

// Cookiecutter implements ports.Scaffolder by shelling out to the
// cookiecutter CLI and, optionally, python's venv module
type Cookiecutter struct {
	template   string
	createVenv bool
	binary     string
	python     string
	run        func(*exec.Cmd) error
	log        *zap.Logger
}

var _ ports.Scaffolder = (*Cookiecutter)(nil)

// Option configures the Cookiecutter scaffolder
type Option func(*Cookiecutter)

// WithVenv controls whether a venv is created inside new projects
func WithVenv(enabled bool) Option {
	return func(c *Cookiecutter) {
		c.createVenv = enabled
	}
}

// WithPython overrides the interpreter used to create the venv
func WithPython(python string) Option {
	return func(c *Cookiecutter) {
		if python != "" {
			c.python = python
		}
	}
}

// WithLogger sets the logger used to record scaffolding
func WithLogger(log *zap.Logger) Option {
	return func(c *Cookiecutter) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a scaffolder for the given template (path or git URL)
func New(template string, opts ...Option) *Cookiecutter {
	c := &Cookiecutter{
		template: template,
		binary:   "cookiecutter",
		python:   "python3",
		run:      runCombined,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scaffold renders the template into dir. The template receives the
// directory's base name as project_name and is written to dir's parent.
func (c *Cookiecutter) Scaffold(ctx context.Context, dir string) error {
	if strings.TrimSpace(c.template) == "" {
		return fmt.Errorf("no cookiecutter template configured")
	}

	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%s: %w", dir, ErrExists)
	}

	cmd := exec.CommandContext(ctx, c.binary, cookiecutterArgs(c.template, dir)...)
	if err := c.run(cmd); err != nil {
		return fmt.Errorf("cookiecutter failed: %w", err)
	}
	c.log.Info("scaffolded project", zap.String("dir", dir), zap.String("template", c.template))

	if !c.createVenv {
		return nil
	}

	venv := exec.CommandContext(ctx, c.python, venvArgs(dir)...)
	if err := c.run(venv); err != nil {
		return fmt.Errorf("venv creation failed: %w", err)
	}
	c.log.Debug("created venv", zap.String("dir", dir))
	return nil
}

func cookiecutterArgs(template, dir string) []string {
	return []string{
		template,
		"--no-input",
		"--output-dir", filepath.Dir(dir),
		"project_name=" + filepath.Base(dir),
	}
}

func venvArgs(dir string) []string {
	return []string{"-m", "venv", filepath.Join(dir, "venv")}
}

// runCombined runs cmd and folds its output into the error on failure
func runCombined(cmd *exec.Cmd) error {
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(out.String())
		if msg == "" {
			return err
		}
		return fmt.Errorf("%w: %s", err, msg)
	}
	return nil
}
