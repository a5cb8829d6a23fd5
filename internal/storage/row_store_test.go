package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VroDaptar_InspectionBackend/internal/sheets"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "daptar.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestStore(t *testing.T) (*sheets.Store, *SheetBackend) {
	t.Helper()
	backend := NewSheetBackend(openTestDB(t))
	return sheets.NewStore(backend), backend
}

func TestSheetBackend_AppendAndRead(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	require.NoError(t, backend.AddSheet(ctx, "Inspections"))

	res, err := store.AppendRow(ctx, "Inspections!A:G", []string{"ID", "सजा", "नाव"})
	require.NoError(t, err)
	assert.Equal(t, "Inspections!A1:C1", res.UpdatedRange)

	res, err = store.AppendRow(ctx, "Inspections!A:G", []string{"ab12cd34", "Saja"})
	require.NoError(t, err)
	assert.Equal(t, "Inspections!A2:B2", res.UpdatedRange)
	assert.EqualValues(t, 1, res.UpdatedRows)

	records, err := store.ReadRange(ctx, "Inspections!A:G")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, sheets.Record{"ID": "ab12cd34", "सजा": "Saja", "नाव": ""}, records[0])
}

func TestSheetBackend_HeaderOnlyIsEmpty(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	require.NoError(t, backend.AddSheet(ctx, "Master_Q"))
	_, err := store.AppendRow(ctx, "Master_Q!A:D", []string{"ID", "विभाग", "प्रश्न", "अपलोड आवश्यक"})
	require.NoError(t, err)

	records, err := store.ReadRange(ctx, "Master_Q!A:D")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestSheetBackend_MissingSheet(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.ReadRange(context.Background(), "Nowhere!A:B")
	require.Error(t, err)
	assert.ErrorIs(t, err, sheets.ErrSheetNotFound)
	assert.Equal(t, sheets.CodeNotFound, sheets.CodeOf(err))
}

func TestSheetBackend_ColumnSlicing(t *testing.T) {
	ctx := context.Background()
	_, backend := newTestStore(t)
	require.NoError(t, backend.AddSheet(ctx, "Compliance"))
	for _, row := range [][]string{
		{"Log_ID", "शेरा", "वरिष्ठ", "स्पष्टीकरण", "स्थिती"},
		{"id1", "remark", "", "", "Pending"},
	} {
		_, err := backend.Append(ctx, sheets.MustParseRange("Compliance!A:E"), row)
		require.NoError(t, err)
	}

	got, err := backend.Get(ctx, sheets.MustParseRange("Compliance!C2:D2"))
	require.NoError(t, err)
	assert.Empty(t, got, "row with only empty cells in range is trimmed")

	got, err = backend.Get(ctx, sheets.MustParseRange("Compliance!B:E"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"शेरा", "वरिष्ठ", "स्पष्टीकरण", "स्थिती"}, {"remark", "", "", "Pending"}}, got)
}

func TestSheetBackend_AppendWithColumnOffset(t *testing.T) {
	ctx := context.Background()
	_, backend := newTestStore(t)
	require.NoError(t, backend.AddSheet(ctx, "Notes"))

	res, err := backend.Append(ctx, sheets.MustParseRange("Notes!C:D"), []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, "Notes!C1:D1", res.UpdatedRange)

	got, err := backend.Get(ctx, sheets.MustParseRange("Notes"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"", "", "x", "y"}}, got)
}

func TestSheetBackend_UpdateMatchingRow(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	require.NoError(t, backend.AddSheet(ctx, "Compliance"))
	for _, row := range [][]string{
		{"Log_ID", "शेरा", "वरिष्ठ", "स्पष्टीकरण", "स्थिती"},
		{"ID0", "other", "", "", "Pending"},
		{"ID1", "remarkX", "", "", "Pending"},
	} {
		_, err := store.AppendRow(ctx, "Compliance!A:E", row)
		require.NoError(t, err)
	}

	row, err := store.UpdateMatchingRow(ctx, "Compliance!A:E", []string{"ID1", "remarkX"}, 2, []string{"ok", "done", "Completed"})
	require.NoError(t, err)
	assert.Equal(t, 3, row)

	values, err := store.ReadValues(ctx, "Compliance!A:E")
	require.NoError(t, err)
	assert.Equal(t, []string{"ID0", "other", "", "", "Pending"}, values[1])
	assert.Equal(t, []string{"ID1", "remarkX", "ok", "done", "Completed"}, values[2])

	_, err = store.UpdateMatchingRow(ctx, "Compliance!A:E", []string{"ID9", "nope"}, 2, []string{"a", "b", "c"})
	assert.ErrorIs(t, err, sheets.ErrRowNotFound)

	after, err := store.ReadValues(ctx, "Compliance!A:E")
	require.NoError(t, err)
	assert.Equal(t, values, after)
}

func TestSheetBackend_GapRowsAreEmpty(t *testing.T) {
	ctx := context.Background()
	_, backend := newTestStore(t)
	require.NoError(t, backend.AddSheet(ctx, "Sparse"))
	require.NoError(t, backend.Update(ctx, sheets.MustParseRange("Sparse!A1:B1"), []string{"h1", "h2"}))
	require.NoError(t, backend.Update(ctx, sheets.MustParseRange("Sparse!A3:B3"), []string{"v1", "v2"}))

	got, err := backend.Get(ctx, sheets.MustParseRange("Sparse!A:B"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"h1", "h2"}, {}, {"v1", "v2"}}, got)

	res, err := backend.Append(ctx, sheets.MustParseRange("Sparse!A:B"), []string{"next"})
	require.NoError(t, err)
	assert.Equal(t, "Sparse!A4", res.UpdatedRange)
}

func TestSheetBackend_EnsureSheet(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)

	wrote, err := store.EnsureSheet(ctx, "Inspection_Files", []string{"Inspection_ID", "Question_ID", "File_Name", "File_URL"})
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = store.EnsureSheet(ctx, "Inspection_Files", []string{"Inspection_ID", "Question_ID", "File_Name", "File_URL"})
	require.NoError(t, err)
	assert.False(t, wrote)

	titles, err := backend.SheetTitles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Inspection_Files"}, titles)

	values, err := store.ReadValues(ctx, "Inspection_Files!A:D")
	require.NoError(t, err)
	assert.Len(t, values, 1)
}
