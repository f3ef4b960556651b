package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FloatToShort scales v and truncates it toward zero, saturating at int16 range
func FloatToShort(v float32, scale float32) int16 {
	f := float64(v) * float64(scale)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt16:
		return math.MaxInt16
	case f <= math.MinInt16:
		return math.MinInt16
	}
	return int16(f)
}

// FloatToByte scales v by 255 and truncates toward zero, saturating at [0,255]
func FloatToByte(v float32) uint8 {
	f := float64(v) * 255.0
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= 255:
		return 255
	}
	return uint8(f)
}

func Vec3ToShorts(v mgl32.Vec3, scale float32) (r [3]int16) {
	for i := range r {
		r[i] = FloatToShort(v[i], scale)
	}
	return r
}

func Vec4ToShorts(v mgl32.Vec4, scale float32) (r [4]int16) {
	for i := range r {
		r[i] = FloatToShort(v[i], scale)
	}
	return r
}

func Vec3ToBytes(v mgl32.Vec3) (r [3]uint8) {
	for i := range r {
		r[i] = FloatToByte(v[i])
	}
	return r
}
