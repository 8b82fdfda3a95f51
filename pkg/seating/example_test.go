package seating_test

import (
	"fmt"

	"github.com/matzehuels/seatplan/pkg/seating"
)

func ExampleAllocate() {
	counts, _ := seating.Allocate(100, []string{"Hall A", "Hall B", "Hall C"})
	fmt.Println(counts)
	// Output:
	// [34 33 33]
}

func ExampleBuildGrid() {
	grid, next, _ := seating.BuildGrid(5, 3, 1)
	for _, row := range grid {
		fmt.Println(row)
	}
	fmt.Println("next:", next)
	// Output:
	// [1 2 3]
	// [4 5 ]
	// next: 6
}

func ExamplePlan() {
	plans, _ := seating.Plan(10, []string{"R1", "R2", "R3"}, 2)
	for _, p := range plans {
		fmt.Printf("%s: %d seats (%s)\n", p.Room, p.Count, p.Range())
	}
	// Output:
	// R1: 4 seats (1-4)
	// R2: 3 seats (5-7)
	// R3: 3 seats (8-10)
}
