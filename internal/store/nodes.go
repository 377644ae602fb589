package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	appErrors "moncollect/internal/errors"
)

// PathSeparator joins node idents into a path.
const PathSeparator = "."

// Node is a stored tree node. Path is the dotted chain of idents from the
// root, e.g. "corp.web.nginx".
type Node struct {
	ID    int64  `json:"id"`
	PID   int64  `json:"pid"`
	Ident string `json:"ident"`
	Name  string `json:"name"`
	Path  string `json:"path"`
}

// AddNode inserts n under n.PID (0 for a root) and returns its id. The path
// is derived from the parent; n.Path and n.ID are ignored.
func (s *Store) AddNode(ctx context.Context, n Node) (int64, error) {
	ident := strings.TrimSpace(n.Ident)
	if err := validateIdent(ident); err != nil {
		return 0, err
	}
	name := strings.TrimSpace(n.Name)
	if name == "" {
		name = ident
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storageError("begin add node", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	path := ident
	if n.PID != 0 {
		var parentPath string
		err := tx.QueryRowContext(ctx, `SELECT path FROM nodes WHERE id = ?`, n.PID).Scan(&parentPath)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("parent node %d: %w", n.PID, ErrNotFound)
		}
		if err != nil {
			return 0, storageError("query parent node", err)
		}
		path = parentPath + PathSeparator + ident
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO nodes (pid, ident, name, path) VALUES (?, ?, ?, ?)`,
		n.PID, ident, name, path)
	if err != nil {
		return 0, storageError("insert node "+path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageError("node id", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, storageError("commit add node", err)
	}
	s.log.Debug().Int64("id", id).Str("path", path).Msg("node added")
	return id, nil
}

// EnsurePath creates any missing nodes along a dotted path and returns the
// id of the last one. Existing segments are reused.
func (s *Store) EnsurePath(ctx context.Context, path string) (int64, error) {
	segments := strings.Split(strings.TrimSpace(path), PathSeparator)
	var (
		pid     int64
		current string
	)
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if err := validateIdent(seg); err != nil {
			return 0, fmt.Errorf("path %q: %w", path, err)
		}
		if current == "" {
			current = seg
		} else {
			current = current + PathSeparator + seg
		}

		existing, err := s.nodeByPath(ctx, current)
		if err == nil {
			pid = existing.ID
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return 0, err
		}
		id, err := s.AddNode(ctx, Node{PID: pid, Ident: seg})
		if err != nil {
			return 0, err
		}
		pid = id
	}
	return pid, nil
}

// GetNode returns the node with the given id.
func (s *Store) GetNode(ctx context.Context, id int64) (Node, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, pid, ident, name, path FROM nodes WHERE id = ?`, id)
	n, err := scanNode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Node{}, fmt.Errorf("node %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Node{}, storageError("query node", err)
	}
	return n, nil
}

// ListNodes returns every node ordered by path.
func (s *Store) ListNodes(ctx context.Context) ([]Node, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, pid, ident, name, path FROM nodes ORDER BY path, id`)
	if err != nil {
		return nil, storageError("query nodes", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var nodes []Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, storageError("scan node", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate nodes", err)
	}
	return nodes, nil
}

func (s *Store) nodeByPath(ctx context.Context, path string) (Node, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, pid, ident, name, path FROM nodes WHERE path = ?`, path)
	n, err := scanNode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Node{}, fmt.Errorf("node %q: %w", path, ErrNotFound)
	}
	if err != nil {
		return Node{}, storageError("query node by path", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNode(sc scanner) (Node, error) {
	var n Node
	err := sc.Scan(&n.ID, &n.PID, &n.Ident, &n.Name, &n.Path)
	return n, err
}

func validateIdent(ident string) error {
	if ident == "" {
		return appErrors.New(appErrors.CodeValidationFailed, "node ident is required", nil)
	}
	if strings.Contains(ident, PathSeparator) {
		return appErrors.New(appErrors.CodeValidationFailed,
			fmt.Sprintf("node ident %q may not contain %q", ident, PathSeparator), nil)
	}
	return nil
}
