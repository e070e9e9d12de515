package refmap

import (
	"fmt"
	"os"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const schema = `
CREATE TABLE IF NOT EXISTS resources (
	original_id       TEXT PRIMARY KEY,
	intermediate_name TEXT NOT NULL,
	final_name        TEXT NOT NULL DEFAULT '',
	chapter_id        TEXT NOT NULL DEFAULT '',
	kind              TEXT NOT NULL,
	geometry          TEXT NOT NULL DEFAULT '',
	first_seen_page   INTEGER NOT NULL
);`

// Mapper is the reference mapper, backed by an in-memory SQLite database for
// the pipeline's lifetime and serialised to disk by Export/Import.
type Mapper struct {
	conn *sqlite.Conn
}

// NewMapper opens a fresh in-memory store and creates its resources table.
func NewMapper() (*Mapper, error) {
	conn, err := sqlite.OpenConn(":memory:", sqlite.OpenReadWrite, sqlite.OpenMemory)
	if err != nil {
		return nil, fmt.Errorf("refmap: open in-memory db: %w", err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("refmap: create schema: %w", err)
	}
	return &Mapper{conn: conn}, nil
}

// Close releases the underlying connection.
func (m *Mapper) Close() error {
	return m.conn.Close()
}

// AddResource is an idempotent insert: re-adding an already-known
// original_id is a no-op rather than an error, matching repeated sightings
// of the same media region across the per-page passes.
func (m *Mapper) AddResource(r Resource) error {
	err := sqlitex.Execute(m.conn,
		`INSERT INTO resources (original_id, intermediate_name, kind, geometry, first_seen_page)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(original_id) DO NOTHING`,
		&sqlitex.ExecOptions{Args: []any{r.OriginalID, r.IntermediateName, string(r.Kind), r.Geometry, r.FirstSeenPage}})
	if err != nil {
		return fmt.Errorf("refmap: add resource %q: %w", r.OriginalID, err)
	}
	return nil
}

// AssignChapter implements the many-to-one page -> chapter mapping
// established once chapters are finalised: every resource first seen on
// page is assigned chapterID.
func (m *Mapper) AssignChapter(page int, chapterID string) error {
	err := sqlitex.Execute(m.conn,
		`UPDATE resources SET chapter_id = ? WHERE first_seen_page = ?`,
		&sqlitex.ExecOptions{Args: []any{chapterID, page}})
	if err != nil {
		return fmt.Errorf("refmap: assign chapter for page %d: %w", page, err)
	}
	return nil
}

// FinaliseName sets a resource's per-chapter final name, e.g. "Ch0004f02.jpg".
func (m *Mapper) FinaliseName(originalID, finalName string) error {
	err := sqlitex.Execute(m.conn,
		`UPDATE resources SET final_name = ? WHERE original_id = ?`,
		&sqlitex.ExecOptions{Args: []any{finalName, originalID}})
	if err != nil {
		return fmt.Errorf("refmap: finalise name for %q: %w", originalID, err)
	}
	return nil
}

// Resolve returns a resource's final name, a *ErrNotFound if original_id was
// never added, or a *ErrUnresolved naming it if it was added but has no final
// name yet.
func (m *Mapper) Resolve(originalID string) (string, error) {
	var finalName string
	found := false
	err := sqlitex.Execute(m.conn,
		`SELECT final_name FROM resources WHERE original_id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{originalID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				finalName = stmt.ColumnText(0)
				found = true
				return nil
			},
		})
	if err != nil {
		return "", fmt.Errorf("refmap: resolve %q: %w", originalID, err)
	}
	if !found {
		return "", &ErrNotFound{OriginalID: originalID}
	}
	if finalName == "" {
		return "", &ErrUnresolved{OriginalIDs: []string{originalID}}
	}
	return finalName, nil
}

// UnresolvedIDs lists every registered resource with no final name, for
// packaging's fail-fast invariant check.
func (m *Mapper) UnresolvedIDs() ([]string, error) {
	var ids []string
	err := sqlitex.Execute(m.conn,
		`SELECT original_id FROM resources WHERE final_name = ''`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				ids = append(ids, stmt.ColumnText(0))
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("refmap: list unresolved: %w", err)
	}
	return ids, nil
}

// Export serialises the whole store to path, consumed by the next pipeline
// stage (packaging).
func (m *Mapper) Export(path string) error {
	data := m.conn.Serialize("main")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("refmap: export to %s: %w", path, err)
	}
	return nil
}

// Import replaces the store's contents with a previously exported file.
func (m *Mapper) Import(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("refmap: import from %s: %w", path, err)
	}
	if err := m.conn.Deserialize("main", data); err != nil {
		return fmt.Errorf("refmap: deserialize %s: %w", path, err)
	}
	return nil
}
