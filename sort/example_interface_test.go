// Copyright 2011 The Go Authors. All rights reserved. Use of this source code
// is governed by a BSD-style license that can be found in the LICENSE file.

package sort_test

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	sort "github.com/exascience/forkmerge/sort"
)

type Person struct {
	Name string
	Age  int
}

func (p Person) String() string {
	return fmt.Sprintf("%s: %d", p.Name, p.Age)
}

// ByAge implements sort.StableSorter for []Person based on the Age field.
type ByAge []Person

func (a ByAge) Len() int           { return len(a) }
func (a ByAge) Less(i, j int) bool { return a[i].Age < a[j].Age }

func (a ByAge) NewTemp() sort.StableSorter { return make(ByAge, len(a)) }

func (this ByAge) Assign(that sort.StableSorter) func(i, j, len int) {
	dst, src := this, that.(ByAge)
	return func(i, j, len int) {
		for k := 0; k < len; k++ {
			dst[i+k] = src[j+k]
		}
	}
}

func Example() {
	people := []Person{
		{"Bob", 31},
		{"John", 42},
		{"Michael", 17},
		{"Jenny", 26},
		{"Alice", 31},
	}

	fmt.Println(people)
	sort.StableSort(ByAge(people))
	fmt.Println(people)

	// Output:
	// [Bob: 31 John: 42 Michael: 17 Jenny: 26 Alice: 31]
	// [Michael: 17 Jenny: 26 Bob: 31 Alice: 31 John: 42]
}

func ExampleIntsWithCutoff() {
	a := []int{5, 3, 8, 1, 9, 2, 7, 4, 6, 0}
	sort.IntsWithCutoff(a, 2)
	fmt.Println(a)

	// Output:
	// [0 1 2 3 4 5 6 7 8 9]
}

// Quantiles need sorted input; stat.Quantile panics otherwise.
func Example_quantiles() {
	latencies := []int{15, 3, 9, 27, 1, 42, 8, 20}
	sort.Ints(latencies)

	x := make([]float64, len(latencies))
	for i, l := range latencies {
		x[i] = float64(l)
	}
	for _, p := range []float64{0.25, 0.5} {
		fmt.Printf("p%02.0f: %v\n", p*100, stat.Quantile(p, stat.Empirical, x, nil))
	}

	// Output:
	// p25: 3
	// p50: 9
}
