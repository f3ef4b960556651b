package convert

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/anmstrm2anm/pack/anm"
	"github.com/mogaika/anmstrm2anm/pack/anmstrm"
	"github.com/mogaika/anmstrm2anm/utils"

	"github.com/pkg/errors"
)

const (
	// Frame number distance between two snapshots
	FRAME_STEP = 100
	// Keyframed material channels repeat each key this far ahead
	HOLD_OFFSET = 50

	QUAT_COMPRESS  = 32767.0
	SCALE_COMPRESS = 4096.0
)

type builtCurve struct {
	format uint16
	curve  anm.Curve
}

type curveLayout func(samples []anmstrm.EntryData) []builtCurve

var curveLayouts = map[anm.EntryKind]curveLayout{
	anm.ENTRY_BONE:       buildBone,
	anm.ENTRY_CAMERA:     buildCamera,
	anm.ENTRY_MATERIAL:   buildMaterial,
	anm.ENTRY_LIGHTDIRC:  buildLightDirc,
	anm.ENTRY_LIGHTPOINT: buildLightPoint,
	anm.ENTRY_AMBIENT:    buildAmbient,
}

// HasLayout reports whether entries of kind can be turned into curves
func HasLayout(kind anm.EntryKind) bool {
	_, ok := curveLayouts[kind]
	return ok
}

func frameOf(sample int) int32 {
	return int32(sample * FRAME_STEP)
}

func quat(v mgl32.Vec4) anm.QuaternionShort {
	return anm.QuaternionShort(utils.Vec4ToShorts(v, QUAT_COMPRESS))
}

// BuildEntry turns the time series of one object into clip entry with
// finalized curves. ok is false for kinds without curve layout.
func BuildEntry(s *Series) (e anm.Entry, ok bool, err error) {
	layout, ok := curveLayouts[s.Kind]
	if !ok {
		return e, false, nil
	}

	for i, sample := range s.Samples {
		if sample == nil || sample.Kind() != s.Kind {
			return e, false, errors.Wrapf(ErrInconsistentFrames, "slot %d sample %d does not match kind %v", s.Slot, i, s.Kind)
		}
	}

	curves := layout(s.Samples)
	e = anm.Entry{
		Coord:   s.Coord,
		Kind:    s.Kind,
		Headers: make([]anm.CurveHeader, len(curves)),
		Curves:  make([]anm.Curve, len(curves)),
	}
	for i, bc := range curves {
		e.Curves[i] = Finalize(bc.curve)
		if e.Headers[i], err = anm.NewHeader(uint16(i), bc.format, e.Curves[i]); err != nil {
			return e, false, errors.Wrapf(err, "slot %d (%v) curve %d", s.Slot, s.Kind, i)
		}
	}
	return e, true, nil
}

func buildBone(samples []anmstrm.EntryData) []builtCurve {
	location := make(anm.KeyframeVector3Curve, 0, len(samples)+1)
	rotation := make(anm.QuaternionShortCurve, 0, len(samples))
	scale := make(anm.Vector3ShortCurve, 0, len(samples))
	toggled := make(anm.FloatCurve, 0, len(samples))

	for i, sample := range samples {
		b := sample.(*anmstrm.Bone)
		location = append(location, anm.KeyframeVector3{Frame: frameOf(i), Value: b.Location})
		rotation = append(rotation, quat(b.Rotation))
		scale = append(scale, anm.Vector3Short(utils.Vec3ToShorts(b.Scale, SCALE_COMPRESS)))
		toggled = append(toggled, b.Toggled)
	}

	return []builtCurve{
		{anm.CURVE_INT1_FLOAT3, location},
		{anm.CURVE_SHORT4, rotation},
		{anm.CURVE_SHORT3, scale},
		{anm.CURVE_FLOAT1, toggled},
	}
}

func buildCamera(samples []anmstrm.EntryData) []builtCurve {
	location := make(anm.KeyframeVector3Curve, 0, len(samples)+1)
	rotation := make(anm.QuaternionShortCurve, 0, len(samples))
	fov := make(anm.KeyframeFloatCurve, 0, len(samples)+1)

	for i, sample := range samples {
		c := sample.(*anmstrm.Camera)
		location = append(location, anm.KeyframeVector3{Frame: frameOf(i), Value: c.Location})
		rotation = append(rotation, quat(c.Rotation))
		fov = append(fov, anm.KeyframeFloat{Frame: frameOf(i), Value: c.Fov})
	}

	return []builtCurve{
		{anm.CURVE_INT1_FLOAT3, location},
		{anm.CURVE_SHORT4, rotation},
		{anm.CURVE_INT1_FLOAT1, fov},
	}
}

// material channels stored as keyframes, each key is held for HOLD_OFFSET frames
func isHeldChannel(channel int) bool {
	return channel == 0 || channel == 1 || channel == 8 || channel == 9
}

func buildMaterial(samples []anmstrm.EntryData) []builtCurve {
	result := make([]builtCurve, 0, 18)
	for channel := 0; channel < 16; channel++ {
		if isHeldChannel(channel) {
			keys := make(anm.KeyframeFloatCurve, 0, len(samples)*2+1)
			for i, sample := range samples {
				v := sample.(*anmstrm.Material).AmbientColor[channel]
				keys = append(keys,
					anm.KeyframeFloat{Frame: frameOf(i), Value: v},
					anm.KeyframeFloat{Frame: frameOf(i) + HOLD_OFFSET, Value: v})
			}
			result = append(result, builtCurve{anm.CURVE_INT1_FLOAT1, keys})
		} else {
			values := make(anm.FloatCurve, len(samples))
			for i, sample := range samples {
				values[i] = sample.(*anmstrm.Material).AmbientColor[channel]
			}
			result = append(result, builtCurve{anm.CURVE_FLOAT1ALT, values})
		}
	}

	// toggles without source field
	off := make(anm.FloatCurve, len(samples))
	on := make(anm.FloatCurve, len(samples))
	for i := range on {
		on[i] = 1.0
	}
	return append(result,
		builtCurve{anm.CURVE_FLOAT1, off},
		builtCurve{anm.CURVE_FLOAT1, on})
}

func buildLightDirc(samples []anmstrm.EntryData) []builtCurve {
	color := make(anm.RGBCurve, 0, len(samples)+3)
	intensity := make(anm.FloatCurve, 0, len(samples))
	direction := make(anm.QuaternionShortCurve, 0, len(samples))

	for _, sample := range samples {
		l := sample.(*anmstrm.LightDirc)
		color = append(color, anm.RGB(utils.Vec3ToBytes(l.Color)))
		intensity = append(intensity, l.Intensity)
		direction = append(direction, quat(l.Direction))
	}

	return []builtCurve{
		{anm.CURVE_BYTE3, color},
		{anm.CURVE_FLOAT1ALT, intensity},
		{anm.CURVE_SHORT4, direction},
	}
}

func buildLightPoint(samples []anmstrm.EntryData) []builtCurve {
	color := make(anm.RGBCurve, 0, len(samples)+3)
	position := make(anm.KeyframeVector3Curve, 0, len(samples)+1)
	intensity := make(anm.FloatCurve, 0, len(samples))
	radius := make(anm.FloatCurve, 0, len(samples))
	falloff := make(anm.FloatCurve, 0, len(samples))

	for i, sample := range samples {
		l := sample.(*anmstrm.LightPoint)
		color = append(color, anm.RGB(utils.Vec3ToBytes(l.Color)))
		position = append(position, anm.KeyframeVector3{Frame: frameOf(i), Value: l.Position})
		intensity = append(intensity, l.Intensity)
		radius = append(radius, l.Radius)
		falloff = append(falloff, l.Falloff)
	}

	return []builtCurve{
		{anm.CURVE_BYTE3, color},
		{anm.CURVE_INT1_FLOAT3, position},
		{anm.CURVE_FLOAT1ALT, intensity},
		{anm.CURVE_FLOAT1ALT, radius},
		{anm.CURVE_FLOAT1ALT, falloff},
	}
}

func buildAmbient(samples []anmstrm.EntryData) []builtCurve {
	color := make(anm.RGBCurve, 0, len(samples)+3)
	intensity := make(anm.FloatCurve, 0, len(samples))

	for _, sample := range samples {
		a := sample.(*anmstrm.Ambient)
		color = append(color, anm.RGB(utils.Vec3ToBytes(a.Color)))
		intensity = append(intensity, a.Intensity)
	}

	return []builtCurve{
		{anm.CURVE_BYTE3, color},
		{anm.CURVE_FLOAT1ALT2, intensity},
	}
}
