package anm

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	CURVE_FLOAT3       = 0x05 // location/scale
	CURVE_INT1_FLOAT3  = 0x06 // keyframed location/scale
	CURVE_FLOAT3ALT    = 0x08 // rotation
	CURVE_INT1_FLOAT4  = 0x0A // keyframed rotation quaternion
	CURVE_FLOAT1       = 0x0B // toggles
	CURVE_INT1_FLOAT1  = 0x0C // keyframed float (camera fov, material)
	CURVE_SHORT1       = 0x0F // toggles
	CURVE_SHORT3       = 0x10 // compressed scale
	CURVE_SHORT4       = 0x11 // compressed rotation quaternion
	CURVE_BYTE3        = 0x14 // color
	CURVE_FLOAT3ALT2   = 0x15 // scale
	CURVE_FLOAT1ALT    = 0x16 // light intensity, material channels
	CURVE_FLOAT1ALT2   = 0x18 // ambient intensity
	KEYFRAME_TERMINATE = -1
)

// Curve is one of the fixed shape curve payloads below.
// Shape and element count of a curve are defined by its CurveHeader,
// payload has no length prefix.
type Curve interface {
	Len() int
	isCurve()
}

type Vector3Curve []mgl32.Vec3
type KeyframeVector3Curve []KeyframeVector3
type KeyframeVector4Curve []KeyframeVector4
type FloatCurve []float32
type KeyframeFloatCurve []KeyframeFloat
type ShortCurve []int16
type Vector3ShortCurve []Vector3Short
type QuaternionShortCurve []QuaternionShort
type RGBCurve []RGB

// OpaqueCurve keeps payload of unsupported format as is.
// Only produced by lenient decoding.
type OpaqueCurve []byte

func (c Vector3Curve) Len() int         { return len(c) }
func (c KeyframeVector3Curve) Len() int { return len(c) }
func (c KeyframeVector4Curve) Len() int { return len(c) }
func (c FloatCurve) Len() int           { return len(c) }
func (c KeyframeFloatCurve) Len() int   { return len(c) }
func (c ShortCurve) Len() int           { return len(c) }
func (c Vector3ShortCurve) Len() int    { return len(c) }
func (c QuaternionShortCurve) Len() int { return len(c) }
func (c RGBCurve) Len() int             { return len(c) }
func (c OpaqueCurve) Len() int          { return len(c) }

func (Vector3Curve) isCurve()         {}
func (KeyframeVector3Curve) isCurve() {}
func (KeyframeVector4Curve) isCurve() {}
func (FloatCurve) isCurve()           {}
func (KeyframeFloatCurve) isCurve()   {}
func (ShortCurve) isCurve()           {}
func (Vector3ShortCurve) isCurve()    {}
func (QuaternionShortCurve) isCurve() {}
func (RGBCurve) isCurve()             {}
func (OpaqueCurve) isCurve()          {}

// CurveShape describes on-wire layout of one curve format
type CurveShape struct {
	Name        string
	ElementSize int
	// Elements carry frame index and can be terminated with KEYFRAME_TERMINATE
	Keyframed bool

	padding func(count int) int
	alloc   func(count int) Curve
	is      func(c Curve) bool
}

// Padding returns count of zero bytes following count elements
func (s *CurveShape) Padding(count int) int {
	if s.padding == nil {
		return 0
	}
	return s.padding(count)
}

// Size of payload with count elements, padding included
func (s *CurveShape) Size(count int) int {
	return s.ElementSize*count + s.Padding(count)
}

func (s *CurveShape) New(count int) Curve {
	return s.alloc(count)
}

// Fits reports whether c is the go type this shape decodes into
func (s *CurveShape) Fits(c Curve) bool {
	return s.is(c)
}

func padOddToWord(count int) int {
	if count%2 == 1 {
		return 2
	}
	return 0
}

func padToQuad(count int) int {
	return count % 4
}

var (
	shapeVector3 = CurveShape{Name: "Vector3", ElementSize: 12,
		alloc: func(n int) Curve { return make(Vector3Curve, n) },
		is:    func(c Curve) bool { _, ok := c.(Vector3Curve); return ok }}
	shapeKeyframeVector3 = CurveShape{Name: "KeyframeVector3", ElementSize: 16, Keyframed: true,
		alloc: func(n int) Curve { return make(KeyframeVector3Curve, n) },
		is:    func(c Curve) bool { _, ok := c.(KeyframeVector3Curve); return ok }}
	shapeKeyframeVector4 = CurveShape{Name: "KeyframeVector4", ElementSize: 20, Keyframed: true,
		alloc: func(n int) Curve { return make(KeyframeVector4Curve, n) },
		is:    func(c Curve) bool { _, ok := c.(KeyframeVector4Curve); return ok }}
	shapeFloat = CurveShape{Name: "Float", ElementSize: 4,
		alloc: func(n int) Curve { return make(FloatCurve, n) },
		is:    func(c Curve) bool { _, ok := c.(FloatCurve); return ok }}
	shapeKeyframeFloat = CurveShape{Name: "KeyframeFloat", ElementSize: 8, Keyframed: true,
		alloc: func(n int) Curve { return make(KeyframeFloatCurve, n) },
		is:    func(c Curve) bool { _, ok := c.(KeyframeFloatCurve); return ok }}
	shapeShort = CurveShape{Name: "Short", ElementSize: 2, padding: padOddToWord,
		alloc: func(n int) Curve { return make(ShortCurve, n) },
		is:    func(c Curve) bool { _, ok := c.(ShortCurve); return ok }}
	shapeVector3Short = CurveShape{Name: "Vector3Short", ElementSize: 6, padding: padOddToWord,
		alloc: func(n int) Curve { return make(Vector3ShortCurve, n) },
		is:    func(c Curve) bool { _, ok := c.(Vector3ShortCurve); return ok }}
	shapeQuaternionShort = CurveShape{Name: "QuaternionShort", ElementSize: 8,
		alloc: func(n int) Curve { return make(QuaternionShortCurve, n) },
		is:    func(c Curve) bool { _, ok := c.(QuaternionShortCurve); return ok }}
	shapeRGB = CurveShape{Name: "RGB", ElementSize: 3, padding: padToQuad,
		alloc: func(n int) Curve { return make(RGBCurve, n) },
		is:    func(c Curve) bool { _, ok := c.(RGBCurve); return ok }}
)

var curveShapes = map[uint16]*CurveShape{
	CURVE_FLOAT3:      &shapeVector3,
	CURVE_INT1_FLOAT3: &shapeKeyframeVector3,
	CURVE_FLOAT3ALT:   &shapeVector3,
	CURVE_INT1_FLOAT4: &shapeKeyframeVector4,
	CURVE_FLOAT1:      &shapeFloat,
	CURVE_INT1_FLOAT1: &shapeKeyframeFloat,
	CURVE_SHORT1:      &shapeShort,
	CURVE_SHORT3:      &shapeVector3Short,
	CURVE_SHORT4:      &shapeQuaternionShort,
	CURVE_BYTE3:       &shapeRGB,
	CURVE_FLOAT3ALT2:  &shapeVector3,
	CURVE_FLOAT1ALT:   &shapeFloat,
	CURVE_FLOAT1ALT2:  &shapeFloat,
}

// ShapeOf returns layout of curve format, false for unknown format
func ShapeOf(format uint16) (*CurveShape, bool) {
	s, ok := curveShapes[format]
	return s, ok
}

// NewHeader returns header of curve stored with format, with
// frame count and byte size computed from the curve
func NewHeader(index uint16, format uint16, c Curve) (CurveHeader, error) {
	h := CurveHeader{Index: index, Format: format}
	return h, h.Update(c)
}

// Update recomputes FrameCount and Size from curve c.
// Size is a 16 bit field and wraps for payloads above 64KiB.
func (h *CurveHeader) Update(c Curve) error {
	if c.Len() > 0xffff {
		return errorCurveTooLong(c.Len())
	}
	h.FrameCount = uint16(c.Len())
	if opaque, ok := c.(OpaqueCurve); ok {
		h.Size = uint16(len(opaque))
		return nil
	}
	s, ok := ShapeOf(h.Format)
	if !ok {
		return errorUnknownFormat(h.Format)
	}
	if !s.Fits(c) {
		return errorShapeMismatch(h.Format, c)
	}
	h.Size = uint16(s.Size(c.Len()))
	return nil
}

func CloneCurve(c Curve) Curve {
	switch v := c.(type) {
	case Vector3Curve:
		return append(Vector3Curve{}, v...)
	case KeyframeVector3Curve:
		return append(KeyframeVector3Curve{}, v...)
	case KeyframeVector4Curve:
		return append(KeyframeVector4Curve{}, v...)
	case FloatCurve:
		return append(FloatCurve{}, v...)
	case KeyframeFloatCurve:
		return append(KeyframeFloatCurve{}, v...)
	case ShortCurve:
		return append(ShortCurve{}, v...)
	case Vector3ShortCurve:
		return append(Vector3ShortCurve{}, v...)
	case QuaternionShortCurve:
		return append(QuaternionShortCurve{}, v...)
	case RGBCurve:
		return append(RGBCurve{}, v...)
	case OpaqueCurve:
		return append(OpaqueCurve{}, v...)
	}
	return c
}
