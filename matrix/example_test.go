// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/lvla/matrix"
)

// ExampleDense_Add shows modulo-tiling broadcasting: the 1×3 row is added to
// every row of the 2×3 receiver, which is mutated in place.
func ExampleDense_Add() {
	a, _ := matrix.NewFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	row, _ := matrix.NewFromRows([][]float64{{10, 20, 30}})
	_, _ = a.Add(row)
	fmt.Println(a)
	// Output:
	// [[11, 22, 33],
	//  [14, 25, 36]]
}

// ExampleDense_CopySub leaves the receiver untouched.
func ExampleDense_CopySub() {
	a, _ := matrix.NewFromRows([][]float64{{5, 5}, {5, 5}})
	one, _ := matrix.Ones(1, 1)
	d, _ := a.CopySub(one)
	fmt.Println(d)
	fmt.Println(a)
	// Output:
	// [[4, 4],
	//  [4, 4]]
	// [[5, 5],
	//  [5, 5]]
}

func ExampleDense_Sort() {
	m, _ := matrix.NewFromRows([][]float64{{3, 1}, {1, 9}, {3, 0}})
	p, _ := m.Sort(matrix.AxisRow)
	fmt.Println(p)
	fmt.Println(m)
	// Output:
	// [1 2 0]
	// [[1, 9],
	//  [3, 0],
	//  [3, 1]]
}

func ExampleDense_SumAxis() {
	m, _ := matrix.NewFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	cols, _ := m.SumAxis(matrix.AxisRow)
	rows, _ := m.SumAxis(matrix.AxisCol)
	fmt.Println(cols)
	fmt.Println(rows)
	// Output:
	// [[5, 7, 9]]
	// [[6],
	//  [15]]
}
