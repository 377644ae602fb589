package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"moncollect/internal/collect"
	appErrors "moncollect/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "collect.db")
	s, err := Open(context.Background(), dbPath, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func samplePayload(nid int64) collect.Payload {
	return collect.Payload{
		CollectType: collect.CollectTypePort,
		NID:         nid,
		Name:        "n1",
		Port:        9090,
		Timeout:     3,
		Step:        10,
		Comment:     "api",
		Tags:        "service=svc1",
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeConfigurationError))
}

func TestOpenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "collect.db")
	ctx := context.Background()

	s, err := Open(ctx, dbPath)
	require.NoError(t, err)
	_, err = s.AddNode(ctx, Node{Ident: "corp"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, dbPath)
	require.NoError(t, err)
	defer func() {
		_ = s.Close()
	}()
	nodes, err := s.ListNodes(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, dbPath, s.Path())
}

func TestOpenUsesWAL(t *testing.T) {
	s := openTestStore(t)

	db, err := sql.Open("sqlite", s.Path())
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()
	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestAddNodeBuildsPaths(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	corp, err := s.AddNode(ctx, Node{Ident: "corp", Name: "Corporate"})
	require.NoError(t, err)
	web, err := s.AddNode(ctx, Node{PID: corp, Ident: "web"})
	require.NoError(t, err)

	n, err := s.GetNode(ctx, web)
	require.NoError(t, err)
	assert.Equal(t, Node{ID: web, PID: corp, Ident: "web", Name: "web", Path: "corp.web"}, n)

	_, err = s.AddNode(ctx, Node{PID: 999, Ident: "orphan"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.AddNode(ctx, Node{Ident: "a.b"})
	assert.True(t, appErrors.IsCode(err, appErrors.CodeValidationFailed))

	_, err = s.AddNode(ctx, Node{Ident: "corp"})
	assert.True(t, appErrors.IsCode(err, appErrors.CodeStorageFailed), "duplicate path")
}

func TestEnsurePath(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	leaf, err := s.EnsurePath(ctx, "corp.web.nginx")
	require.NoError(t, err)
	again, err := s.EnsurePath(ctx, "corp.web.nginx")
	require.NoError(t, err)
	assert.Equal(t, leaf, again)

	_, err = s.EnsurePath(ctx, "corp.db")
	require.NoError(t, err)

	nodes, err := s.ListNodes(ctx)
	require.NoError(t, err)
	var paths []string
	for _, n := range nodes {
		paths = append(paths, n.Path)
	}
	assert.Equal(t, []string{"corp", "corp.db", "corp.web", "corp.web.nginx"}, paths)

	_, err = s.EnsurePath(ctx, "corp..x")
	assert.Error(t, err)
}

func TestCollectorCRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	nid, err := s.EnsurePath(ctx, "corp.web")
	require.NoError(t, err)

	created, err := s.CreateCollector(ctx, samplePayload(nid))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, samplePayload(nid), created.Payload)
	assert.Equal(t, fixedNow, created.CreatedAt)

	updated := samplePayload(nid)
	updated.Port = 9091
	updated.Tags = "service=svc2"
	require.NoError(t, s.UpdateCollector(ctx, created.ID, updated))

	got, err := s.GetCollector(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 9091, got.Port)
	assert.Equal(t, "service=svc2", got.Tags)

	list, err := s.ListCollectors(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.DeleteCollector(ctx, created.ID))
	_, err = s.GetCollector(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeNotFound))

	assert.ErrorIs(t, s.DeleteCollector(ctx, created.ID), ErrNotFound)
	assert.ErrorIs(t, s.UpdateCollector(ctx, created.ID, updated), ErrNotFound)
}

func TestCreateCollectorUnknownNode(t *testing.T) {
	s := openTestStore(t)

	_, err := s.CreateCollector(context.Background(), samplePayload(42))
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := s.ListCollectors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCollectorInitialValuesRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	nid, err := s.EnsurePath(ctx, "corp")
	require.NoError(t, err)
	c, err := s.CreateCollector(ctx, samplePayload(nid))
	require.NoError(t, err)

	form := collect.NewFormState(c.InitialValues())
	assert.Equal(t, "svc1", form.Service())
	assert.Equal(t, collect.BuildPayload(form.Values()), c.Payload)
}

func TestCollectorJSONIsFlat(t *testing.T) {
	c := Collector{ID: 7, Payload: samplePayload(1)}
	data, err := json.Marshal(c)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.EqualValues(t, 7, m["id"])
	assert.Equal(t, "service=svc1", m["tags"])
	assert.Equal(t, "port", m["collect_type"])
}

func TestSaveCreatesThenUpdates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	nid, err := s.EnsurePath(ctx, "corp")
	require.NoError(t, err)

	var saved []Collector
	record := OnSaved(func(c Collector) { saved = append(saved, c) })

	require.NoError(t, s.Save(0, record)(ctx, samplePayload(nid)))
	require.Len(t, saved, 1)
	id := saved[0].ID

	p := samplePayload(nid)
	p.Name = "renamed"
	require.NoError(t, s.Save(id, record)(ctx, p))
	require.Len(t, saved, 2)
	assert.Equal(t, id, saved[1].ID)
	assert.Equal(t, "renamed", saved[1].Name)

	assert.ErrorIs(t, s.Save(999)(ctx, p), ErrNotFound)
}

func TestSaveHonorsCancellation(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	nid, err := s.EnsurePath(ctx, "corp")
	require.NoError(t, err)
	cancel()

	err = s.Save(0)(ctx, samplePayload(nid))
	assert.ErrorIs(t, err, context.Canceled)

	list, err := s.ListCollectors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSaveDrivesPipeline(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	nid, err := s.EnsurePath(ctx, "corp")
	require.NoError(t, err)

	p := collect.NewPipeline(s.Save(0))
	values := collect.Values{
		NID:     nid,
		Name:    "n1",
		Service: "svc1",
		Port:    collect.Ptr(9090),
		Timeout: collect.Ptr(3),
		Step:    collect.Ptr(10),
	}
	require.NoError(t, p.Submit(ctx, values))

	list, err := s.ListCollectors(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "service=svc1", list[0].Tags)
}
