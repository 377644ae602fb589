package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"moncollect/internal/collect"
)

// Collector is a stored port collector.
type Collector struct {
	ID int64 `json:"id"`
	collect.Payload
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitialValues maps the record back to form initial values for editing.
func (c Collector) InitialValues() *collect.InitialValues {
	return &collect.InitialValues{
		CollectType: collect.Ptr(c.CollectType),
		Name:        collect.Ptr(c.Name),
		NID:         collect.Ptr(c.NID),
		Port:        collect.Ptr(c.Port),
		Timeout:     collect.Ptr(c.Timeout),
		Step:        collect.Ptr(c.Step),
		Comment:     collect.Ptr(c.Comment),
		Tags:        collect.Ptr(c.Tags),
	}
}

const collectorColumns = `id, collect_type, nid, name, port, timeout, step, comment, tags, created_at, updated_at`

// CreateCollector inserts p and returns the stored record.
func (s *Store) CreateCollector(ctx context.Context, p collect.Payload) (Collector, error) {
	if err := s.requireNode(ctx, p.NID); err != nil {
		return Collector{}, err
	}
	now := s.timestamp()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO collectors (collect_type, nid, name, port, timeout, step, comment, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(collectType(p)), p.NID, p.Name, p.Port, p.Timeout, p.Step, p.Comment, p.Tags, now, now)
	if err != nil {
		return Collector{}, storageError("insert collector", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Collector{}, storageError("collector id", err)
	}
	s.log.Debug().Int64("id", id).Int64("nid", p.NID).Str("name", p.Name).Msg("collector created")
	return s.GetCollector(ctx, id)
}

// UpdateCollector replaces every field of collector id with p.
func (s *Store) UpdateCollector(ctx context.Context, id int64, p collect.Payload) error {
	if err := s.requireNode(ctx, p.NID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE collectors
		SET collect_type = ?, nid = ?, name = ?, port = ?, timeout = ?, step = ?, comment = ?, tags = ?, updated_at = ?
		WHERE id = ?`,
		string(collectType(p)), p.NID, p.Name, p.Port, p.Timeout, p.Step, p.Comment, p.Tags, s.timestamp(), id)
	if err != nil {
		return storageError("update collector", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageError("update collector", err)
	}
	if n == 0 {
		return fmt.Errorf("collector %d: %w", id, ErrNotFound)
	}
	s.log.Debug().Int64("id", id).Msg("collector updated")
	return nil
}

// GetCollector returns collector id or an error wrapping ErrNotFound.
func (s *Store) GetCollector(ctx context.Context, id int64) (Collector, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+collectorColumns+` FROM collectors WHERE id = ?`, id)
	c, err := scanCollector(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Collector{}, fmt.Errorf("collector %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Collector{}, storageError("query collector", err)
	}
	return c, nil
}

// ListCollectors returns every collector ordered by id.
func (s *Store) ListCollectors(ctx context.Context) ([]Collector, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+collectorColumns+` FROM collectors ORDER BY id`)
	if err != nil {
		return nil, storageError("query collectors", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []Collector
	for rows.Next() {
		c, err := scanCollector(rows)
		if err != nil {
			return nil, storageError("scan collector", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate collectors", err)
	}
	return out, nil
}

// DeleteCollector removes collector id.
func (s *Store) DeleteCollector(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM collectors WHERE id = ?`, id)
	if err != nil {
		return storageError("delete collector", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageError("delete collector", err)
	}
	if n == 0 {
		return fmt.Errorf("collector %d: %w", id, ErrNotFound)
	}
	s.log.Debug().Int64("id", id).Msg("collector deleted")
	return nil
}

// requireNode returns an error wrapping ErrNotFound when nid does not exist.
func (s *Store) requireNode(ctx context.Context, nid int64) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM nodes WHERE id = ?`, nid).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("node %d: %w", nid, ErrNotFound)
	}
	if err != nil {
		return storageError("query node", err)
	}
	return nil
}

func collectType(p collect.Payload) collect.CollectType {
	if p.CollectType == "" {
		return collect.CollectTypePort
	}
	return p.CollectType
}

func scanCollector(sc scanner) (Collector, error) {
	var (
		c                Collector
		ct               string
		created, updated string
	)
	if err := sc.Scan(&c.ID, &ct, &c.NID, &c.Name, &c.Port, &c.Timeout, &c.Step,
		&c.Comment, &c.Tags, &created, &updated); err != nil {
		return Collector{}, err
	}
	c.CollectType = collect.CollectType(ct)
	c.CreatedAt = parseTime(created)
	c.UpdatedAt = parseTime(updated)
	return c, nil
}
