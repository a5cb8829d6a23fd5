package inspection

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"VroDaptar_InspectionBackend/internal/models"
	"VroDaptar_InspectionBackend/internal/sheets"
)

func submitWithRemark(t *testing.T, env *testEnv, remark string) string {
	t.Helper()
	form := baseForm()
	form.Values["remark_1"] = remark
	form.Files = []FileField{fileField("file_1", "photo.jpg", "jpeg")}
	res, err := env.svc.Submit(context.Background(), form)
	require.NoError(t, err)
	return res.InspectionID
}

func TestResolveCompliance(t *testing.T) {
	env := newTestEnv(t, twoQuestions...)
	ctx := context.Background()
	id := submitWithRemark(t, env, "नोंदवही अपूर्ण")
	other := submitWithRemark(t, env, "७/१२ प्रलंबित")

	err := env.svc.ResolveCompliance(ctx, ComplianceUpdate{
		LogID:        id,
		Remark:       "नोंदवही अपूर्ण",
		SeniorRemark: "तपासले",
		Explanation:  "पूर्ण केली",
		Status:       "Completed",
	})
	require.NoError(t, err)

	rows := env.rows(t, models.ComplianceRange)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{id, "नोंदवही अपूर्ण", "तपासले", "पूर्ण केली", "Completed"}, rows[0])
	assert.Equal(t, []string{other, "७/१२ प्रलंबित", "", "", "Pending"}, rows[1])

	records, err := env.svc.ListCompliance(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestResolveCompliance_NotFound(t *testing.T) {
	env := newTestEnv(t, twoQuestions...)
	id := submitWithRemark(t, env, "नोंदवही अपूर्ण")
	before := env.rows(t, models.ComplianceRange)

	err := env.svc.ResolveCompliance(context.Background(), ComplianceUpdate{LogID: id, Remark: "other", Status: "Completed"})
	assert.ErrorIs(t, err, sheets.ErrRowNotFound)
	assert.Equal(t, before, env.rows(t, models.ComplianceRange))
}

func TestResolveCompliance_Invalid(t *testing.T) {
	env := newTestEnv(t, twoQuestions...)

	err := env.svc.ResolveCompliance(context.Background(), ComplianceUpdate{LogID: "ab12cd34"})
	assert.ErrorIs(t, err, ErrInvalidResolution)
}

func TestStats(t *testing.T) {
	env := newTestEnv(t, twoQuestions...)
	ctx := context.Background()
	id := submitWithRemark(t, env, "नोंदवही अपूर्ण")
	submitWithRemark(t, env, "")

	_, err := env.store.UpdateMatchingRow(ctx, models.InspectionsRange, []string{id}, models.InspectionStatusCol, []string{"A"})
	require.NoError(t, err)

	stats, err := env.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Stats{Total: 2, Completed: 1, PendingCompliance: 1}, stats)
}

func TestExportInspection(t *testing.T) {
	env := newTestEnv(t, twoQuestions...)
	id := submitWithRemark(t, env, "नोंदवही अपूर्ण")

	var buf bytes.Buffer
	require.NoError(t, env.svc.ExportInspection(context.Background(), id, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Files", "Remarks"}, f.GetSheetList())

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, []string{"Field", "Value"}, summary[0])
	assert.Equal(t, []string{"ID", id}, summary[1])
	assert.Equal(t, []string{"सजा", "Saja Wadgaon"}, summary[2])

	files, err := f.GetRows("Files")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, []string{"1", "photo.jpg", "https://drive.example/photo.jpg"}, files[1])

	remarks, err := f.GetRows("Remarks")
	require.NoError(t, err)
	require.Len(t, remarks, 2)
	assert.Equal(t, []string{"नोंदवही अपूर्ण", "Pending"}, remarks[1])
}

func TestExportInspection_NotFound(t *testing.T) {
	env := newTestEnv(t, twoQuestions...)

	var buf bytes.Buffer
	err := env.svc.ExportInspection(context.Background(), "ffffffff", &buf)
	assert.ErrorIs(t, err, ErrInspectionNotFound)
	assert.Zero(t, buf.Len())
}
