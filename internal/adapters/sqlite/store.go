package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"compass/internal/domain"
	"compass/internal/ports"
)

const schemaVersion = "2"

const projectColumns = `
	SELECT p.name, p.path, p.last_opened, c.id, c.name, c.is_active
	FROM projects p
	LEFT JOIN categories c ON c.id = p.category_id`

// Store implements ports.CatalogueStore using SQLite
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Ensure Store implements CatalogueStore
var _ ports.CatalogueStore = (*Store)(nil)

// Option configures the Store
type Option func(*Store)

// WithLogger sets the logger used for mutation tracing
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// Open opens (creating if needed) the catalogue database at dbPath
func Open(dbPath string, opts ...Option) (*Store, error) {
	s := &Store{
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One process, one user: a single connection keeps statements ordered.
	db.SetMaxOpenConns(1)
	s.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name VARCHAR NOT NULL UNIQUE,
			is_active BOOLEAN NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS projects (
			name VARCHAR,
			path VARCHAR UNIQUE,
			last_opened TIMESTAMP,
			category_id TEXT
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := s.updateMeta(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	s.log.Debug("catalogue opened", zap.String("path", dbPath))
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// migrate upgrades databases written by older launchers. Integer category
// ids are rewritten as text, the category-less projects table gains
// category_id, and uncategorised projects are filed under Default.
func (s *Store) migrate() error {
	idType, err := s.columnType("categories", "id")
	if err != nil {
		return err
	}
	if strings.EqualFold(idType, "INTEGER") {
		if err := s.rebuildCategories(); err != nil {
			return err
		}
	}

	categoryType, err := s.columnType("projects", "category_id")
	if err != nil {
		return err
	}
	switch {
	case categoryType == "":
		if _, err := s.db.Exec(`ALTER TABLE projects ADD COLUMN category_id TEXT`); err != nil {
			return fmt.Errorf("add category_id column: %w", err)
		}
		s.log.Info("added category_id column to legacy projects table")
	case strings.EqualFold(categoryType, "INTEGER"):
		if err := s.rebuildProjects(); err != nil {
			return err
		}
	}

	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_projects_category ON projects(category_id)`); err != nil {
		return fmt.Errorf("create category index: %w", err)
	}

	var orphans int
	err = s.db.QueryRow(`
		SELECT COUNT(*) FROM projects
		WHERE category_id IS NULL OR category_id NOT IN (SELECT id FROM categories)
	`).Scan(&orphans)
	if err != nil {
		return fmt.Errorf("count uncategorised projects: %w", err)
	}
	if orphans == 0 {
		return nil
	}

	return s.withTx(func(tx *catalogueTx) error {
		cat, err := tx.upsertCategory(domain.DefaultCategoryName)
		if err != nil {
			return err
		}
		_, err = tx.tx.Exec(`
			UPDATE projects SET category_id = ?
			WHERE category_id IS NULL OR category_id NOT IN (SELECT id FROM categories)
		`, cat.ID)
		if err != nil {
			return fmt.Errorf("attach uncategorised projects: %w", err)
		}
		s.log.Info("attached uncategorised projects", zap.Int("count", orphans), zap.String("category", cat.Name))
		return nil
	})
}

// columnType returns the declared type of table.column, or "" if the
// column does not exist
func (s *Store) columnType(table, column string) (string, error) {
	rows, err := s.db.Query(`SELECT name, type FROM pragma_table_info(?)`, table)
	if err != nil {
		return "", fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return "", err
		}
		if name == column {
			return typ, nil
		}
	}
	return "", rows.Err()
}

// rebuildCategories replaces an autoincrement categories table with the
// text-keyed one, keeping ids as their decimal strings
func (s *Store) rebuildCategories() error {
	err := s.withTx(func(tx *catalogueTx) error {
		_, err := tx.tx.Exec(`
			CREATE TABLE categories_text (
				id TEXT PRIMARY KEY,
				name VARCHAR NOT NULL UNIQUE,
				is_active BOOLEAN NOT NULL DEFAULT 0
			);
			INSERT INTO categories_text (id, name, is_active)
				SELECT CAST(id AS TEXT), name, COALESCE(is_active, 0)
				FROM categories WHERE name IS NOT NULL;
			DROP TABLE categories;
			ALTER TABLE categories_text RENAME TO categories;
		`)
		return err
	})
	if err != nil {
		return fmt.Errorf("rebuild categories: %w", err)
	}
	s.log.Info("rewrote integer category ids as text")
	return nil
}

// rebuildProjects retypes projects.category_id from INTEGER to TEXT
func (s *Store) rebuildProjects() error {
	err := s.withTx(func(tx *catalogueTx) error {
		_, err := tx.tx.Exec(`
			DROP INDEX IF EXISTS idx_projects_category;
			CREATE TABLE projects_text (
				name VARCHAR,
				path VARCHAR UNIQUE,
				last_opened TIMESTAMP,
				category_id TEXT
			);
			INSERT INTO projects_text (name, path, last_opened, category_id)
				SELECT name, path, last_opened, CAST(category_id AS TEXT)
				FROM projects;
			DROP TABLE projects;
			ALTER TABLE projects_text RENAME TO projects;
		`)
		return err
	})
	if err != nil {
		return fmt.Errorf("rebuild projects: %w", err)
	}
	s.log.Info("rewrote integer project category ids as text")
	return nil
}

// updateMeta records the schema version
func (s *Store) updateMeta() error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
	return err
}

// UpsertCategory returns the category with the given name, creating it
// inactive if it does not exist yet
func (s *Store) UpsertCategory(name string) (*domain.Category, error) {
	var cat *domain.Category
	err := s.withTx(func(tx *catalogueTx) error {
		var err error
		cat, err = tx.upsertCategory(name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// GetCategory retrieves a category by name
func (s *Store) GetCategory(name string) (*domain.Category, error) {
	var cat domain.Category
	err := s.db.QueryRow(`
		SELECT id, name, is_active FROM categories WHERE name = ?
	`, strings.TrimSpace(name)).Scan(&cat.ID, &cat.Name, &cat.Active)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &cat, nil
}

// ListCategories returns all categories ordered by name, ignoring case
func (s *Store) ListCategories() ([]domain.Category, error) {
	rows, err := s.db.Query(`
		SELECT id, name, is_active FROM categories
		ORDER BY name COLLATE NOCASE ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Active); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetActiveCategory returns the active category, or nil when none is active
func (s *Store) GetActiveCategory() (*domain.Category, error) {
	var cat domain.Category
	err := s.db.QueryRow(`
		SELECT id, name, is_active FROM categories WHERE is_active = 1 LIMIT 1
	`).Scan(&cat.ID, &cat.Name, &cat.Active)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active category: %w", err)
	}
	return &cat, nil
}

// SetActiveCategory makes the category with id the only active one.
// Nothing changes when id does not exist.
func (s *Store) SetActiveCategory(id string) error {
	return s.withTx(func(tx *catalogueTx) error {
		cat, err := tx.categoryByID(id)
		if err != nil {
			return err
		}
		if cat == nil {
			s.log.Debug("set active: category gone", zap.String("id", id))
			return nil
		}
		if err := tx.setActive(id); err != nil {
			return err
		}
		s.log.Debug("category activated", zap.String("name", cat.Name))
		return nil
	})
}

// DeleteCategory removes the category and every project filed under it
func (s *Store) DeleteCategory(id string) error {
	return s.withTx(func(tx *catalogueTx) error {
		removed, err := tx.deleteProjectsIn(id)
		if err != nil {
			return err
		}
		if err := tx.deleteCategory(id); err != nil {
			return err
		}
		s.log.Debug("category deleted", zap.String("id", id), zap.Int64("projects", removed))
		return nil
	})
}

// UpsertProject inserts the project or updates the row with the same path.
// The category is resolved first: by name (created if missing), by ID, or
// Default when the reference is empty. LastOpened is stored as given.
func (s *Store) UpsertProject(project domain.Project) (*domain.Project, error) {
	path := strings.TrimSpace(project.Path)
	if path == "" {
		return nil, fmt.Errorf("upsert project: path is required")
	}
	name := strings.TrimSpace(project.Name)
	if name == "" {
		name = domain.NameFromPath(path)
	}

	err := s.withTx(func(tx *catalogueTx) error {
		cat, err := tx.resolveCategory(project.Category)
		if err != nil {
			return err
		}
		return tx.upsertProject(name, path, project.LastOpened, cat.ID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("project stored", zap.String("path", path), zap.String("name", name))
	return s.GetProject(path)
}

// GetProject retrieves a project by path
func (s *Store) GetProject(path string) (*domain.Project, error) {
	row := s.db.QueryRow(projectColumns+` WHERE p.path = ?`, strings.TrimSpace(path))

	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// ListProjects returns projects ordered by name, ignoring case. A non-empty
// category restricts the listing to that category's name.
func (s *Store) ListProjects(category string) ([]domain.Project, error) {
	query := projectColumns
	var args []any
	if category = strings.TrimSpace(category); category != "" {
		query += ` WHERE c.name = ?`
		args = append(args, category)
	}
	query += ` ORDER BY p.name COLLATE NOCASE ASC, p.path ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// MoveProject stores project under its new path and removes the row at
// oldPath in the same transaction
func (s *Store) MoveProject(oldPath string, project domain.Project) (*domain.Project, error) {
	oldPath = strings.TrimSpace(oldPath)
	path := strings.TrimSpace(project.Path)
	if oldPath == "" || path == "" {
		return nil, fmt.Errorf("move project: both paths are required")
	}
	name := strings.TrimSpace(project.Name)
	if name == "" {
		name = domain.NameFromPath(path)
	}

	err := s.withTx(func(tx *catalogueTx) error {
		cat, err := tx.resolveCategory(project.Category)
		if err != nil {
			return err
		}
		if err := tx.upsertProject(name, path, project.LastOpened, cat.ID); err != nil {
			return err
		}
		if oldPath == path {
			return nil
		}
		return tx.deleteProject(oldPath)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("project moved", zap.String("from", oldPath), zap.String("to", path))
	return s.GetProject(path)
}

// DeleteProject removes the project at path. Missing paths are not an error.
func (s *Store) DeleteProject(path string) error {
	res, err := s.db.Exec(`DELETE FROM projects WHERE path = ?`, strings.TrimSpace(path))
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		s.log.Debug("project deleted", zap.String("path", path))
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*domain.Project, error) {
	var (
		p          domain.Project
		lastOpened sql.NullTime
		catID      sql.NullString
		catName    sql.NullString
		catActive  sql.NullBool
	)
	if err := row.Scan(&p.Name, &p.Path, &lastOpened, &catID, &catName, &catActive); err != nil {
		return nil, err
	}
	if lastOpened.Valid {
		p.LastOpened = lastOpened.Time
	}
	p.Category = domain.Category{
		ID:     catID.String,
		Name:   catName.String,
		Active: catActive.Bool,
	}
	return &p, nil
}
