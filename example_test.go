package outparse_test

import (
	"fmt"

	"github.com/randalmurphal/outparse"
)

func ExampleParse() {
	var x, y int
	if err := outparse.Parse("x=512, y=123", "x={x}, y={y}", outparse.Var("x", &x), outparse.Var("y", &y)); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(x, y)
	// Output: 512 123
}

func ExampleTryParse() {
	var numbers []int
	ok := outparse.TryParse("1,2,3", "{numbers:,}", outparse.Slice("numbers", &numbers))
	fmt.Println(ok, numbers)
	// Output: true [1 2 3]
}

func ExampleCompile() {
	type point struct {
		X int `outparse:"x"`
		Y int `outparse:"y"`
	}

	s := outparse.MustCompile[point]("({x}, {y})")
	p, err := s.Scan("(3, -4)")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%+v\n", p)
	// Output: {X:3 Y:-4}
}
