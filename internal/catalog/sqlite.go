package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	appErrors "attrpicker/internal/errors"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const attributesSchema = `
CREATE TABLE IF NOT EXISTS attributes (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT NOT NULL,
	slug     TEXT NOT NULL UNIQUE,
	disabled INTEGER NOT NULL DEFAULT 0
);
`

// SQLiteClient keeps the attribute catalog in a local SQLite file.
type SQLiteClient struct {
	dbPath string
	db     *sql.DB
}

// OpenSQLite opens (creating if needed) the catalog database at dbPath.
func OpenSQLite(ctx context.Context, dbPath string) (*SQLiteClient, error) {
	trimmed := strings.TrimSpace(dbPath)
	if trimmed == "" {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "catalog database path is empty", nil)
	}
	db, err := sql.Open("sqlite", BuildSQLiteDSN(trimmed))
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping catalog db: %w", err)
	}
	if _, err := db.ExecContext(ctx, attributesSchema); err != nil {
		_ = db.Close()
		return nil, appErrors.New(appErrors.CodeStorageFailed, "create attributes table", err)
	}
	return &SQLiteClient{dbPath: trimmed, db: db}, nil
}

// BuildSQLiteDSN creates a WAL-mode DSN for the given path.
func BuildSQLiteDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(3000)")
	q.Add("_pragma", "foreign_keys(on)")
	u.RawQuery = q.Encode()
	return u.String()
}

// DB exposes the handle so other stores (telemetry) can share the file.
func (c *SQLiteClient) DB() *sql.DB {
	return c.db
}

// Path returns the database file path.
func (c *SQLiteClient) Path() string {
	return c.dbPath
}

// Close releases the database handle.
func (c *SQLiteClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// ListAttributes returns every attribute ordered by name.
func (c *SQLiteClient) ListAttributes(ctx context.Context) ([]Attribute, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, slug, disabled
		FROM attributes
		ORDER BY name COLLATE NOCASE, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query attributes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var attrs []Attribute
	for rows.Next() {
		var a Attribute
		var disabled int
		if err := rows.Scan(&a.ID, &a.Name, &a.Slug, &disabled); err != nil {
			return nil, fmt.Errorf("scan attribute: %w", err)
		}
		a.Disabled = disabled != 0
		attrs = append(attrs, a)
	}
	return attrs, rows.Err()
}

// CreateAttribute inserts a new attribute with a generated slug. A slug that
// already exists yields a CodeCreateConflict error.
func (c *SQLiteClient) CreateAttribute(ctx context.Context, name string) (Attribute, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Attribute{}, appErrors.New(appErrors.CodeCreateFailed, "attribute name is required", ErrEmptyName)
	}
	slug := Slugify(name)
	if slug == "" {
		return Attribute{}, appErrors.New(appErrors.CodeCreateFailed, "attribute name has no usable characters", ErrEmptyName)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return Attribute{}, appErrors.New(appErrors.CodeStorageFailed, "begin transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var existing int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM attributes WHERE slug = ?`, slug).Scan(&existing)
	switch {
	case err == nil:
		return Attribute{}, conflictError(slug, nil)
	case !errors.Is(err, sql.ErrNoRows):
		return Attribute{}, appErrors.New(appErrors.CodeStorageFailed, "look up slug", err)
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO attributes (name, slug) VALUES (?, ?)`, name, slug)
	if err != nil {
		if isUniqueViolation(err) {
			return Attribute{}, conflictError(slug, err)
		}
		return Attribute{}, appErrors.New(appErrors.CodeCreateFailed, "insert attribute", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Attribute{}, appErrors.New(appErrors.CodeStorageFailed, "read attribute id", err)
	}
	if err := tx.Commit(); err != nil {
		return Attribute{}, appErrors.New(appErrors.CodeStorageFailed, "commit attribute", err)
	}
	return Attribute{ID: id, Name: name, Slug: slug}, nil
}

// SetDisabled toggles whether an attribute may be picked.
func (c *SQLiteClient) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	flag := 0
	if disabled {
		flag = 1
	}
	res, err := c.db.ExecContext(ctx, `UPDATE attributes SET disabled = ? WHERE id = ?`, flag, id)
	if err != nil {
		return appErrors.New(appErrors.CodeStorageFailed, "update attribute", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.New(appErrors.CodeNotFound, fmt.Sprintf("attribute %d not found", id), nil)
	}
	return nil
}

// SeedIfEmpty inserts names when the catalog holds no attributes yet.
func (c *SQLiteClient) SeedIfEmpty(ctx context.Context, names ...string) error {
	var count int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM attributes`).Scan(&count); err != nil {
		return appErrors.New(appErrors.CodeStorageFailed, "count attributes", err)
	}
	if count > 0 {
		return nil
	}
	for _, name := range names {
		if _, err := c.CreateAttribute(ctx, name); err != nil && !appErrors.IsCode(err, appErrors.CodeCreateConflict) {
			return err
		}
	}
	return nil
}
