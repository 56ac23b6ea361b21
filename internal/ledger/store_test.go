// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/manifest-engine/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(created time.Time) types.RunSummary {
	return types.RunSummary{
		ID:        uuid.NewString(),
		DateLabel: "15/08/2026",
		Operator:  "CARLA",
		Scanned:   5,
		Matched:   4,
		Unmatched: 1,
		CSVPath:   "/tmp/PLANILHA MDFS 15-08-2026.csv",
		ExcelPath: "/tmp/PLANILHA MDFS 15-08-2026.xlsx",
		CreatedAt: created,
	}
}

func TestRecordAndRecent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 15, 23, 30, 0, 0, time.UTC)
	first := sampleRun(base)
	second := sampleRun(base.Add(time.Hour))
	second.Operator = "BRUNO"

	require.NoError(t, s.Record(ctx, first, []RowRecord{
		{Driver: "SILVA", Origin: "ITU", SheetIndex: 1, Fleet: "F-101", DT: "882245", Trailer: "ABC1D23"},
		{Driver: "ARAUJO", Origin: "SOROCABA", SheetIndex: 2},
	}))
	require.NoError(t, s.Record(ctx, second, nil))

	runs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "BRUNO", runs[0].Operator)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, 4, runs[1].Matched)
	assert.Equal(t, 1, runs[1].Unmatched)
	assert.True(t, runs[1].CreatedAt.Equal(base))
}

func TestRecentLimit(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, sampleRun(base.Add(time.Duration(i)*time.Minute)), nil))
	}

	runs, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestRows(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	run := sampleRun(time.Now().UTC())
	want := []RowRecord{
		{Driver: "SILVA", Origin: "ITU", SheetIndex: 1, Fleet: "F-101", DT: "882245", Trailer: "ABC1D23"},
		{Driver: "PEREIRA", Origin: "OUTRAS ORI-DES", SheetIndex: 2, Fleet: "F-103"},
	}
	require.NoError(t, s.Record(ctx, run, want))

	got, err := s.Rows(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir)
	require.NoError(t, err)
	run := sampleRun(time.Now().UTC())
	require.NoError(t, s1.Record(context.Background(), run, nil))
	require.NoError(t, s1.Close())

	// Reopening must keep the existing data.
	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()
	runs, err := s2.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
}
