package services

import (
	"reflect"
	"testing"
)

func TestMissingNumbers(t *testing.T) {
	tests := []struct {
		name          string
		from          int
		total         int
		existing      []int
		wantMissing   []int
		wantConflicts []int
	}{
		{
			name:        "empty program",
			from:        1,
			total:       4,
			existing:    nil,
			wantMissing: []int{1, 2, 3, 4},
		},
		{
			name:          "partial with conflicts",
			from:          1,
			total:         4,
			existing:      []int{1, 3},
			wantMissing:   []int{2, 4},
			wantConflicts: []int{1, 3},
		},
		{
			name:        "start mid-program",
			from:        3,
			total:       6,
			existing:    []int{1, 2},
			wantMissing: []int{3, 4, 5, 6},
		},
		{
			name:          "fully populated",
			from:          1,
			total:         3,
			existing:      []int{1, 2, 3},
			wantConflicts: []int{1, 2, 3},
		},
		{
			name:  "from beyond total",
			from:  5,
			total: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			missing, conflicts := missingNumbers(tt.from, tt.total, tt.existing)
			if !reflect.DeepEqual(missing, tt.wantMissing) {
				t.Errorf("missing = %v, want %v", missing, tt.wantMissing)
			}
			if !reflect.DeepEqual(conflicts, tt.wantConflicts) {
				t.Errorf("conflicts = %v, want %v", conflicts, tt.wantConflicts)
			}
		})
	}
}
