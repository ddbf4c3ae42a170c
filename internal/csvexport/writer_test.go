package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecomload/internal/domain"
)

func readCSV(t *testing.T, b []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestEncode_StateRevenue(t *testing.T) {
	rows := []domain.StateRevenueRow{
		{State: "SP", Revenue: 5202.5, OrderCount: 40},
		{State: "RJ", Revenue: 1830.25, OrderCount: 12},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, rows, false))

	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 3)
	assert.Equal(t, []string{"state", "revenue", "order_count"}, records[0])
	assert.Equal(t, []string{"SP", "5202.5", "40"}, records[1])
	assert.Equal(t, []string{"RJ", "1830.25", "12"}, records[2])
}

func TestEncode_WithBOM(t *testing.T) {
	rows := []domain.DeliveryTimeRow{{State: "SP", AvgDays: 8.5}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, rows, true))

	require.True(t, bytes.HasPrefix(buf.Bytes(), BOM))
	records := readCSV(t, buf.Bytes()[len(BOM):])
	assert.Equal(t, []string{"state", "avg_days"}, records[0])
	assert.Equal(t, []string{"SP", "8.5"}, records[1])
}

func TestWriter_HeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	require.NoError(t, w.WriteRows([]domain.FieldNullCount{{Field: "order_approved_at", Nulls: 160, Percent: 0.16}}))
	require.NoError(t, w.WriteRows([]domain.FieldNullCount{{Field: "items", Nulls: 0, Percent: 0}}))
	w.Flush()
	require.NoError(t, w.Error())

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), BOM))
	records := readCSV(t, buf.Bytes()[len(BOM):])
	require.Len(t, records, 3)
	assert.Equal(t, []string{"field", "nulls", "percent"}, records[0])
	assert.Equal(t, "items", records[2][0])
}

func TestEncode_RejectsNonStruct(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, 42, false))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Revenue by State", "Revenue_by_State"},
		{"special chars", "orders / top (2017–2018)", "orders_top_2017_2018"},
		{"unicode", "objednávky report", "objedn_vky_report"},
		{"hyphens and underscores preserved", "order_items-overview", "order_items-overview"},
		{"consecutive underscores collapsed", "test___collection", "test_collection"},
		{"leading/trailing cleaned", "  hello  ", "hello"},
		{
			"long name truncated",
			"abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-extra",
			"abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrs",
		},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	filename := BuildFilename("delivery times")
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "delivery_times_"+today+".csv", filename)
}
