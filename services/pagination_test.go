package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		name           string
		page           int
		total          int64
		pageSize       int
		wantPage       int
		wantTotalPages int
	}{
		{"first page", 1, 25, 10, 1, 3},
		{"middle page", 2, 25, 10, 2, 3},
		{"last partial page", 3, 25, 10, 3, 3},
		{"past the end clamps to last", 7, 25, 10, 3, 3},
		{"zero clamps to first", 0, 25, 10, 1, 3},
		{"negative clamps to first", -4, 25, 10, 1, 3},
		{"exact multiple", 2, 20, 10, 2, 2},
		{"empty set still has one page", 1, 0, 10, 1, 1},
		{"empty set clamps any page", 9, 0, 10, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, totalPages := clampPage(tt.page, tt.total, tt.pageSize)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantTotalPages, totalPages)
		})
	}
}
