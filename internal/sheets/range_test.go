package sheets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		spec string
		want Range
	}{
		{"Inspections!A:G", Range{Sheet: "Inspections", StartCol: 0, EndCol: 6}},
		{"Compliance!C5:E5", Range{Sheet: "Compliance", StartCol: 2, EndCol: 4, StartRow: 5, EndRow: 5}},
		{"Master_Q!A1", Range{Sheet: "Master_Q", StartCol: 0, EndCol: 0, StartRow: 1, EndRow: 1}},
		{"Inspections!A2:D", Range{Sheet: "Inspections", StartCol: 0, EndCol: 3, StartRow: 2}},
		{"Inspections", Range{Sheet: "Inspections", EndCol: -1}},
		{"'Field Notes'!b:c", Range{Sheet: "Field Notes", StartCol: 1, EndCol: 2}},
		{"Wide!Z1:AB3", Range{Sheet: "Wide", StartCol: 25, EndCol: 27, StartRow: 1, EndRow: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseRange(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRangeRejectsBadSpecs(t *testing.T) {
	for _, spec := range []string{"", "!A:B", "Sheet!1:2", "Sheet!G:A", "Sheet!A5:B2", "'Open!A:B", "Sheet!A0"} {
		t.Run(spec, func(t *testing.T) {
			_, err := ParseRange(spec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRange))
		})
	}
}

func TestRangeString(t *testing.T) {
	for _, spec := range []string{
		"Inspections!A:G",
		"Compliance!C5:E5",
		"Master_Q!A1",
		"Inspections!A:A",
		"Inspections!A2:D",
		"Inspections",
		"'Field Notes'!B:C",
		"'O''Brien'!A1:B2",
	} {
		r, err := ParseRange(spec)
		require.NoError(t, err)
		assert.Equal(t, spec, r.String())
	}
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "A", ColumnName(0))
	assert.Equal(t, "E", ColumnName(4))
	assert.Equal(t, "Z", ColumnName(25))
	assert.Equal(t, "AA", ColumnName(26))
	assert.Equal(t, "AZ", ColumnName(51))
	assert.Equal(t, "BA", ColumnName(52))
}

func TestRangeRowAndWidth(t *testing.T) {
	r := MustParseRange("Compliance!C:E")
	assert.Equal(t, 3, r.Width())
	assert.Equal(t, 1, r.FirstRow())
	assert.Equal(t, "Compliance!C7:E7", r.Row(7).String())
	assert.Equal(t, -1, MustParseRange("Compliance").Width())
}
