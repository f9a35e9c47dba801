package recell

import (
	"fmt"
)

func ExampleNewCell() {
	count := NewCell(0)
	fmt.Println(count.Read())

	count.Set(10)
	fmt.Println(count.Read())

	// Output:
	// 0
	// 10
}

func ExampleNewDerived() {
	count := NewCell(1)
	double := NewDerived(func() int {
		fmt.Println("doubling")
		return count.Read() * 2
	})

	fmt.Println(double.Read())
	fmt.Println(double.Read()) // cached

	count.Set(10)
	fmt.Println(double.Read())

	// Output:
	// doubling
	// 2
	// 2
	// doubling
	// 20
}

func ExampleNewReaction() {
	count := NewCell(0)

	NewReaction(func(func(func())) {
		fmt.Println("count is", count.Read())
	})

	count.Set(3)

	// Output:
	// count is 0
	// count is 3
}

func ExampleBatch() {
	a := NewCell(1)
	b := NewCell(2)

	NewReaction(func(func(func())) {
		fmt.Println("sum is", a.Read()+b.Read())
	})

	Batch(func() {
		a.Set(10)
		b.Set(20)
	})

	// Output:
	// sum is 3
	// sum is 30
}
