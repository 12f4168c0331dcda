package analytics

import (
	"fmt"
	"math"
)

// basePalette carries the fixed chart colors used before generated ones.
var basePalette = []string{
	"rgba(255, 99, 132, 0.8)",  // red
	"rgba(54, 162, 235, 0.8)",  // blue
	"rgba(255, 206, 86, 0.8)",  // yellow
	"rgba(75, 192, 192, 0.8)",  // teal
	"rgba(153, 102, 255, 0.8)", // purple
	"rgba(255, 159, 64, 0.8)",  // orange
	"rgba(199, 199, 199, 0.8)", // gray
	"rgba(83, 102, 255, 0.8)",  // indigo
	"rgba(78, 205, 196, 0.8)",  // turquoise
	"rgba(255, 99, 71, 0.8)",   // tomato
	"rgba(144, 238, 144, 0.8)", // light green
	"rgba(255, 182, 193, 0.8)", // light pink
}

// goldenAngle spaces generated hues so neighbors stay distinguishable.
const goldenAngle = 137.508

// Colors returns n chart colors: the fixed palette first, then hues rotated
// by the golden angle. Colors are stable for a given index.
func Colors(n int) []string {
	if n <= 0 {
		return nil
	}
	if n <= len(basePalette) {
		return append([]string(nil), basePalette[:n]...)
	}
	colors := append([]string(nil), basePalette...)
	for i := len(basePalette); i < n; i++ {
		hue := math.Mod(float64(i)*goldenAngle, 360)
		colors = append(colors, fmt.Sprintf("hsla(%g, 70%%, 60%%, 0.8)", hue))
	}
	return colors
}

// Colorize assigns palette colors to slices in order.
func Colorize(slices []Slice) []Slice {
	colors := Colors(len(slices))
	for i := range slices {
		slices[i].Color = colors[i]
	}
	return slices
}
