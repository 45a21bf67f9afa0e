package scrollnav

import "math"

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(p float64) float64

// Linear moves at constant speed.
func Linear(p float64) float64 {
	return p
}

// Swing starts and ends slowly. Same curve as jQuery's default easing.
func Swing(p float64) float64 {
	return 0.5 - math.Cos(p*math.Pi)/2
}
