package convert

import (
	"github.com/mogaika/anmstrm2anm/pack/anm"
)

// used to pad empty color curves
var defaultColor = anm.RGB{255, 255, 255}

// Finalize closes keyframed curves with terminating key and pads
// color curves, other curves are returned as is.
func Finalize(c anm.Curve) anm.Curve {
	switch v := c.(type) {
	case anm.RGBCurve:
		return PadColors(v)
	default:
		return Terminate(c)
	}
}

// Terminate appends KEYFRAME_TERMINATE key repeating last value to
// keyframed curves having more than one key. Already terminated
// curves are left untouched.
func Terminate(c anm.Curve) anm.Curve {
	if c.Len() <= 1 {
		return c
	}

	switch v := c.(type) {
	case anm.KeyframeVector3Curve:
		if last := v[len(v)-1]; last.Frame != anm.KEYFRAME_TERMINATE {
			return append(v, anm.KeyframeVector3{Frame: anm.KEYFRAME_TERMINATE, Value: last.Value})
		}
	case anm.KeyframeVector4Curve:
		if last := v[len(v)-1]; last.Frame != anm.KEYFRAME_TERMINATE {
			return append(v, anm.KeyframeVector4{Frame: anm.KEYFRAME_TERMINATE, Value: last.Value})
		}
	case anm.KeyframeFloatCurve:
		if last := v[len(v)-1]; last.Frame != anm.KEYFRAME_TERMINATE {
			return append(v, anm.KeyframeFloat{Frame: anm.KEYFRAME_TERMINATE, Value: last.Value})
		}
	}
	return c
}

// PadColors repeats last color until length is multiple of 4
func PadColors(c anm.RGBCurve) anm.RGBCurve {
	fill := defaultColor
	if len(c) != 0 {
		fill = c[len(c)-1]
	}
	for len(c)%4 != 0 {
		c = append(c, fill)
	}
	return c
}
