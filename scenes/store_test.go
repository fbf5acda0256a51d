package scenes

import (
	"testing"
	"time"
)

func TestSearchArgs(t *testing.T) {
	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)

	args := searchArgs("s2-canberra", from, until, 20)
	if len(args) != 4 {
		t.Fatalf("expecting 4 query arguments, actual %d", len(args))
	}
	if args[0] != "s2-canberra" {
		t.Errorf("expecting product argument, actual %v", args[0])
	}
	if args[1] != "2023-01-01T00:00:00Z" {
		t.Errorf("expecting RFC3339 from argument, actual %v", args[1])
	}
	if args[2] != "2023-02-01T00:00:00Z" {
		t.Errorf("expecting RFC3339 until argument, actual %v", args[2])
	}
	if args[3] != "20" {
		t.Errorf("expecting cloud cover argument 20, actual %v", args[3])
	}
}

func TestSearchArgsUnsetFilters(t *testing.T) {
	args := searchArgs("s2-canberra", time.Time{}, time.Time{}, 0)
	for i := 1; i < 4; i++ {
		if args[i] != "" {
			t.Errorf("expecting empty argument at position %d for unset filter, actual %v", i, args[i])
		}
	}
}
