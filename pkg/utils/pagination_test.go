package utils

import "testing"

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		perPage int
		want    int
	}{
		{"exact fit", 20, 10, 2},
		{"partial last page", 21, 10, 3},
		{"single page", 3, 10, 1},
		{"empty", 0, 10, 0},
		{"zero per page", 10, 0, 0},
		{"negative total", -5, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateTotalPages(tt.total, tt.perPage); got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
			}
		})
	}
}

func TestCalculateOffset(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		perPage int
		want    int
	}{
		{"first page", 1, 10, 0},
		{"third page", 3, 10, 20},
		{"zero page clamps", 0, 10, 0},
		{"negative page clamps", -2, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateOffset(tt.page, tt.perPage); got != tt.want {
				t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tt.page, tt.perPage, got, tt.want)
			}
		})
	}
}
