package rk

import (
	"fmt"
	"math"
)

// Euler returns the forward Euler method. First order, one stage.
// Mostly useful as a baseline and for debugging.
func Euler() Tableau {
	return Tableau{
		Name:  "euler",
		Order: 1,
		C:     []float64{},
		A:     [][]float64{},
		B:     []float64{1},
		Dense: [][3]float64{
			{1, 0, 0},
		},
	}
}

// Midpoint returns the explicit midpoint method. Second order, two stages.
func Midpoint() Tableau {
	return Tableau{
		Name:  "midpoint",
		Order: 2,
		C:     []float64{1.0 / 2.0},
		A: [][]float64{
			{1.0 / 2.0},
		},
		B: []float64{0, 1},
		Dense: [][3]float64{
			{1, -1, 0},
			{0, 1, 0},
		},
	}
}

// Classical returns the classical fourth-order Runge-Kutta method.
func Classical() Tableau {
	return Tableau{
		Name:  "classical",
		Order: 4,
		C:     []float64{1.0 / 2.0, 1.0 / 2.0, 1},
		A: [][]float64{
			{1.0 / 2.0},
			{0, 1.0 / 2.0},
			{0, 0, 1},
		},
		B: []float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0},
		Dense: [][3]float64{
			{1, -3.0 / 2.0, 2.0 / 3.0},
			{0, 1, -2.0 / 3.0},
			{0, 1, -2.0 / 3.0},
			{0, -1.0 / 2.0, 2.0 / 3.0},
		},
	}
}

// Gill returns Gill's fourth-order method, a variant of the classical
// method with reduced storage requirements in its original formulation.
func Gill() Tableau {
	sqrt2 := math.Sqrt2
	return Tableau{
		Name:  "gill",
		Order: 4,
		C:     []float64{1.0 / 2.0, 1.0 / 2.0, 1},
		A: [][]float64{
			{1.0 / 2.0},
			{(sqrt2 - 1) / 2.0, (2 - sqrt2) / 2.0},
			{0, -sqrt2 / 2.0, 1 + sqrt2/2.0},
		},
		B: []float64{1.0 / 6.0, (2 - sqrt2) / 6.0, (2 + sqrt2) / 6.0, 1.0 / 6.0},
		Dense: [][3]float64{
			{1, -3.0 / 2.0, 2.0 / 3.0},
			{0, (2 - sqrt2) / 2.0, (sqrt2 - 2) / 3.0},
			{0, (2 + sqrt2) / 2.0, -(2 + sqrt2) / 3.0},
			{0, -1.0 / 2.0, 2.0 / 3.0},
		},
	}
}

// ThreeEighths returns the fourth-order "3/8" rule.
func ThreeEighths() Tableau {
	return Tableau{
		Name:  "3/8",
		Order: 4,
		C:     []float64{1.0 / 3.0, 2.0 / 3.0, 1},
		A: [][]float64{
			{1.0 / 3.0},
			{-1.0 / 3.0, 1},
			{1, -1, 1},
		},
		B: []float64{1.0 / 8.0, 3.0 / 8.0, 3.0 / 8.0, 1.0 / 8.0},
		Dense: [][3]float64{
			{1, -15.0 / 8.0, 1},
			{0, 15.0 / 8.0, -3.0 / 2.0},
			{0, 3.0 / 8.0, 0},
			{0, -3.0 / 8.0, 1.0 / 2.0},
		},
	}
}

// Methods lists every named tableau shipped with the engine.
func Methods() []Tableau {
	return []Tableau{Euler(), Midpoint(), Classical(), Gill(), ThreeEighths()}
}

// MethodByName resolves a tableau by its name, as stored in run archives.
func MethodByName(name string) (Tableau, error) {
	for _, t := range Methods() {
		if t.Name == name {
			return t, nil
		}
	}
	return Tableau{}, fmt.Errorf("unknown method: %s", name)
}
