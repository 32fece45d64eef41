package services

import (
	"errors"
	"testing"
)

// chainLookup builds a courseLookup over an in-memory prerequisite map
func chainLookup(prereqs map[uint]uint) courseLookup {
	return func(id uint) (*uint, error) {
		next, ok := prereqs[id]
		if !ok {
			return nil, nil
		}
		return &next, nil
	}
}

func TestPrerequisiteCycleDirect(t *testing.T) {
	// Linking course 1 to prerequisite 2 when 2 already requires 1
	lookup := chainLookup(map[uint]uint{2: 1})

	cycle, err := prerequisiteCycle(1, 2, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cycle {
		t.Error("expected direct cycle to be detected")
	}
}

func TestPrerequisiteCycleTransitive(t *testing.T) {
	// 2 -> 3 -> 4 -> 1, so making 2 a prerequisite of 1 closes a loop
	lookup := chainLookup(map[uint]uint{2: 3, 3: 4, 4: 1})

	cycle, err := prerequisiteCycle(1, 2, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cycle {
		t.Error("expected transitive cycle to be detected")
	}
}

func TestPrerequisiteCycleNone(t *testing.T) {
	// 2 -> 3 -> 4 terminates without reaching 1
	lookup := chainLookup(map[uint]uint{2: 3, 3: 4})

	cycle, err := prerequisiteCycle(1, 2, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cycle {
		t.Error("chain that never reaches the course is not a cycle")
	}
}

func TestPrerequisiteCycleExistingLoopElsewhere(t *testing.T) {
	// Stored data already contains 2 <-> 3. The walk must terminate and
	// report no cycle through course 1.
	lookup := chainLookup(map[uint]uint{2: 3, 3: 2})

	cycle, err := prerequisiteCycle(1, 2, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cycle {
		t.Error("loop not involving the course should not be reported")
	}
}

func TestPrerequisiteCycleLookupError(t *testing.T) {
	wantErr := errors.New("connection lost")
	lookup := func(id uint) (*uint, error) { return nil, wantErr }

	_, err := prerequisiteCycle(1, 2, lookup)
	if !errors.Is(err, wantErr) {
		t.Errorf("lookup error should propagate, got %v", err)
	}
}
