package numbering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		value  int64
		width  int
		want   string
	}{
		{name: "pads small value", prefix: "SO_", value: 42, width: 6, want: "SO_000042"},
		{name: "hierarchy width", prefix: "LOC", value: 12, width: 3, want: "LOC012"},
		{name: "value wider than padding", prefix: "GJ-", value: 1234567, width: 6, want: "GJ-1234567"},
		{name: "value exactly at width", prefix: "PV-", value: 999999, width: 6, want: "PV-999999"},
		{name: "first value", prefix: "SO_", value: 1, width: 6, want: "SO_000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.prefix, tt.value, tt.width))
		})
	}
}

func TestDocumentNumbers(t *testing.T) {
	assert.Equal(t, "SO_000042", SalesOrderNumber(42))
	assert.Equal(t, "GJ-000007", GeneralJournalNumber(7))
	assert.Equal(t, "LJMM01-000019", LocalJournalNumber("MM01", 19))
	assert.Equal(t, "PV-000003", VoucherNumber(3))
	assert.Equal(t, "ZONE005", HierarchyCode("ZONE", 5))
}

func TestLocalJournalScope(t *testing.T) {
	assert.Equal(t, "LJ_MM01", LocalJournalScope("MM01"))
	// Distinct companies never share a counter scope.
	assert.NotEqual(t, LocalJournalScope("MM01"), LocalJournalScope("MM02"))
}
