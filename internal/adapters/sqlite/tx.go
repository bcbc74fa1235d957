package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"compass/internal/domain"
)

// catalogueTx groups the statements of one multi-step mutation
type catalogueTx struct {
	tx *sql.Tx
}

// withTx runs fn in a transaction, committing on success
func (s *Store) withTx(fn func(tx *catalogueTx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(&catalogueTx{tx: tx}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// upsertCategory finds a category by name or inserts it inactive
func (t *catalogueTx) upsertCategory(name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("upsert category: name is required")
	}

	var cat domain.Category
	err := t.tx.QueryRow(`
		SELECT id, name, is_active FROM categories WHERE name = ?
	`, name).Scan(&cat.ID, &cat.Name, &cat.Active)
	if err == nil {
		return &cat, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find category: %w", err)
	}

	cat = domain.Category{
		ID:   uuid.New().String(),
		Name: name,
	}
	_, err = t.tx.Exec(`
		INSERT INTO categories (id, name, is_active) VALUES (?, ?, 0)
	`, cat.ID, cat.Name)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &cat, nil
}

// categoryByID retrieves a category by ID, returning nil if absent
func (t *catalogueTx) categoryByID(id string) (*domain.Category, error) {
	var cat domain.Category
	err := t.tx.QueryRow(`
		SELECT id, name, is_active FROM categories WHERE id = ?
	`, id).Scan(&cat.ID, &cat.Name, &cat.Active)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &cat, nil
}

// resolveCategory maps a project's category reference to a stored category
func (t *catalogueTx) resolveCategory(ref domain.Category) (*domain.Category, error) {
	switch {
	case strings.TrimSpace(ref.Name) != "":
		return t.upsertCategory(ref.Name)
	case ref.IsStored():
		cat, err := t.categoryByID(ref.ID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, fmt.Errorf("category %s: %w", ref.ID, domain.ErrNotFound)
		}
		return cat, nil
	default:
		return t.upsertCategory(domain.DefaultCategoryName)
	}
}

// setActive clears the active flag everywhere, then sets it on id
func (t *catalogueTx) setActive(id string) error {
	if _, err := t.tx.Exec(`UPDATE categories SET is_active = 0`); err != nil {
		return fmt.Errorf("clear active category: %w", err)
	}
	if _, err := t.tx.Exec(`UPDATE categories SET is_active = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("set active category: %w", err)
	}
	return nil
}

// deleteProjectsIn removes every project filed under the category
func (t *catalogueTx) deleteProjectsIn(categoryID string) (int64, error) {
	res, err := t.tx.Exec(`DELETE FROM projects WHERE category_id = ?`, categoryID)
	if err != nil {
		return 0, fmt.Errorf("delete category projects: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// deleteCategory removes the category row
func (t *catalogueTx) deleteCategory(id string) error {
	if _, err := t.tx.Exec(`DELETE FROM categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// upsertProject inserts the project or updates the row sharing its path
func (t *catalogueTx) upsertProject(name, path string, lastOpened time.Time, categoryID string) error {
	_, err := t.tx.Exec(`
		INSERT INTO projects (name, path, last_opened, category_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name,
			last_opened = excluded.last_opened,
			category_id = excluded.category_id
	`, name, path, lastOpened, categoryID)
	if err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}
	return nil
}

// deleteProject removes the row at path
func (t *catalogueTx) deleteProject(path string) error {
	if _, err := t.tx.Exec(`DELETE FROM projects WHERE path = ?`, path); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
