// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func testLedger(t *testing.T) (*Ledger, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), ".docsmith")
	l, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l, dir
}

func TestOpenCreatesDatabase(t *testing.T) {
	_, dir := testLedger(t)
	assert.FileExists(t, filepath.Join(dir, dbFile))
}

func TestRecordAssignsIDAndTime(t *testing.T) {
	l, _ := testLedger(t)
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return at }

	r, err := l.Record(context.Background(), Run{Kind: KindBuild, Document: "guide", Succeeded: 3, Failed: 1, Output: "dist/Guide.md"})
	require.NoError(t, err)

	_, err = uuid.Parse(r.ID)
	assert.NoError(t, err)
	assert.True(t, at.Equal(r.At))

	runs, err := l.Recent(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, r, runs[0])
}

func TestRecentOrderingAndFilters(t *testing.T) {
	l, _ := testLedger(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	records := []Run{
		{Kind: KindSplit, Document: "guide", At: base},
		{Kind: KindBuild, Document: "guide", At: base.Add(500 * time.Millisecond)},
		{Kind: KindBuild, Document: "manual", At: base.Add(time.Second)},
		{Kind: KindConvert, Document: "guide", At: base.Add(2 * time.Second)},
	}
	for _, r := range records {
		_, err := l.Record(ctx, r)
		require.NoError(t, err)
	}

	runs, err := l.Recent(ctx, "", 0)
	require.NoError(t, err)
	kinds := make([]Kind, len(runs))
	for i, r := range runs {
		kinds[i] = r.Kind
	}
	assert.Equal(t, []Kind{KindConvert, KindBuild, KindBuild, KindSplit}, kinds)
	assert.Equal(t, "manual", runs[1].Document)

	runs, err = l.Recent(ctx, "guide", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, KindConvert, runs[0].Kind)
	assert.Equal(t, KindBuild, runs[1].Kind)
	assert.Equal(t, "guide", runs[1].Document)

	runs, err = l.Recent(ctx, "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRecordDuplicateID(t *testing.T) {
	l, _ := testLedger(t)
	ctx := context.Background()
	_, err := l.Record(ctx, Run{ID: "fixed", Kind: KindSplit, Document: "a"})
	require.NoError(t, err)
	_, err = l.Record(ctx, Run{ID: "fixed", Kind: KindSplit, Document: "a"})
	assert.Error(t, err)
}

func TestReopenKeepsRuns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	l, err := Open(dir)
	require.NoError(t, err)
	_, err = l.Record(context.Background(), Run{Kind: KindBuild, Document: "guide"})
	require.NoError(t, err)
	require.NoError(t, l.Close())

	l, err = Open(dir)
	require.NoError(t, err)
	defer l.Close()
	runs, err := l.Recent(context.Background(), "guide", 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	Print(&out, nil)
	assert.Equal(t, "No runs recorded.\n", out.String())

	out.Reset()
	Print(&out, []Run{{Kind: KindBuild, Document: "guide", Succeeded: 2, Failed: 1, Output: "dist/Guide.md"}})
	assert.Contains(t, out.String(), "KIND")
	assert.Contains(t, out.String(), "guide")
	assert.Contains(t, out.String(), "dist/Guide.md")
}

func TestExportYAML(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, ExportYAML(&out, nil))
	assert.Equal(t, "[]\n", out.String())

	out.Reset()
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	runs := []Run{{ID: "r1", Kind: KindSplit, Document: "guide", At: at, Succeeded: 4}}
	require.NoError(t, ExportYAML(&out, runs))

	var got []Run
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, KindSplit, got[0].Kind)
	assert.True(t, at.Equal(got[0].At))
}
