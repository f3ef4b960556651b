package convert

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/anmstrm2anm/config"
	"github.com/mogaika/anmstrm2anm/pack/anm"
	"github.com/mogaika/anmstrm2anm/pack/anmstrm"
	"github.com/mogaika/anmstrm2anm/status"
	"github.com/mogaika/anmstrm2anm/utils"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boneFrames(count int, coord anm.Coord) []*anmstrm.Frame {
	frames := make([]*anmstrm.Frame, count)
	for i := range frames {
		frames[i] = &anmstrm.Frame{
			Number: uint32(i),
			Entries: []anmstrm.Entry{{Coord: coord, Kind: anm.ENTRY_BONE, Size: 48, Data: &anmstrm.Bone{
				FrameCount: 1,
				Location:   mgl32.Vec3{1, 2, 3},
				Rotation:   mgl32.Vec4{0, 0, 0, 1},
				Scale:      mgl32.Vec3{1, 1, 1},
				Toggled:    1.0,
			}}},
		}
	}
	return frames
}

func emptyStream() *anmstrm.Stream {
	return &anmstrm.Stream{
		Length:    300,
		FrameSize: 100,
		Clumps: []anmstrm.Clump{{
			Clump:   anm.Clump{Index: 0, BoneMaterialIndices: []uint32{1, 2}, ModelIndices: []uint32{3}},
			Unknown: []uint32{0},
		}},
		OtherEntries: []uint32{},
		OtherIndices: []uint32{},
		CoordParents: []anm.CoordParent{},
	}
}

func testConverter() *Converter {
	s := config.DefaultSettings()
	s.Workers = 3
	return NewConverter(s, nil)
}

func TestBoneStreamBuildsFourCurves(t *testing.T) {
	clip, err := testConverter().BuildClip(emptyStream(), boneFrames(3, anm.Coord{ClumpIndex: 0, CoordIndex: 0}))
	require.NoError(t, err)
	require.Len(t, clip.Entries, 1)

	e := clip.Entries[0]
	assert.Equal(t, anm.ENTRY_BONE, e.Kind)
	assert.Equal(t, anm.Coord{ClumpIndex: 0, CoordIndex: 0}, e.Coord)
	require.Len(t, e.Curves, 4)

	location := e.Curves[0].(anm.KeyframeVector3Curve)
	assert.Equal(t, anm.KeyframeVector3Curve{
		{Frame: 0, Value: mgl32.Vec3{1, 2, 3}},
		{Frame: 100, Value: mgl32.Vec3{1, 2, 3}},
		{Frame: 200, Value: mgl32.Vec3{1, 2, 3}},
		{Frame: -1, Value: mgl32.Vec3{1, 2, 3}},
	}, location)

	rotation := e.Curves[1].(anm.QuaternionShortCurve)
	assert.Len(t, rotation, 3)
	assert.Equal(t, anm.QuaternionShort{0, 0, 0, 32767}, rotation[0])

	scale := e.Curves[2].(anm.Vector3ShortCurve)
	assert.Equal(t, anm.Vector3ShortCurve{{4096, 4096, 4096}, {4096, 4096, 4096}, {4096, 4096, 4096}}, scale)

	assert.Equal(t, anm.FloatCurve{1, 1, 1}, e.Curves[3])

	assert.Equal(t, []anm.CurveHeader{
		{Index: 0, Format: anm.CURVE_INT1_FLOAT3, FrameCount: 4, Size: 64},
		{Index: 1, Format: anm.CURVE_SHORT4, FrameCount: 3, Size: 24},
		{Index: 2, Format: anm.CURVE_SHORT3, FrameCount: 3, Size: 20},
		{Index: 3, Format: anm.CURVE_FLOAT1, FrameCount: 3, Size: 12},
	}, e.Headers)

	assert.EqualValues(t, 300, clip.Length)
	assert.Equal(t, 1, len(clip.Clumps))
	assert.NoError(t, clip.Validate())
}

func TestBuiltClipSurvivesCodec(t *testing.T) {
	clip, err := testConverter().BuildClip(emptyStream(), mixedFrames(5))
	require.NoError(t, err)

	data, err := clip.Marshal()
	require.NoError(t, err)
	decoded, err := anm.NewFromData(data)
	require.NoError(t, err)
	assert.Equal(t, clip, decoded)
}

func mixedFrames(count int) []*anmstrm.Frame {
	frames := make([]*anmstrm.Frame, count)
	for i := range frames {
		v := float32(i) / float32(count)
		frames[i] = &anmstrm.Frame{Number: uint32(i), Entries: []anmstrm.Entry{
			{Coord: anm.Coord{ClumpIndex: 0, CoordIndex: 4}, Kind: anm.ENTRY_MATERIAL, Data: &anmstrm.Material{AmbientColor: [16]float32{0: v, 2: 1 - v, 8: v, 15: 3}}},
			{Coord: anm.Coord{ClumpIndex: -1, CoordIndex: 0}, Kind: anm.ENTRY_CAMERA, Data: &anmstrm.Camera{Location: mgl32.Vec3{v, 0, 0}, Rotation: mgl32.Vec4{0, 0, 0, 1}, Fov: 40 + v}},
			{Coord: anm.Coord{ClumpIndex: 0, CoordIndex: 1}, Kind: anm.ENTRY_BONE, Data: &anmstrm.Bone{Rotation: mgl32.Vec4{v, 0, 0, 1}, Scale: mgl32.Vec3{1, 1, 1}}},
			{Coord: anm.Coord{ClumpIndex: -1, CoordIndex: 2}, Kind: anm.ENTRY_LIGHTDIRC, Data: &anmstrm.LightDirc{Color: mgl32.Vec3{1, v, 0}, Intensity: v, Direction: mgl32.Vec4{0, 1, 0, 0}}},
			{Coord: anm.Coord{ClumpIndex: -1, CoordIndex: 3}, Kind: anm.ENTRY_LIGHTPOINT, Data: &anmstrm.LightPoint{Color: mgl32.Vec3{v, v, v}, Position: mgl32.Vec3{0, v, 0}, Radius: 5}},
			{Coord: anm.Coord{ClumpIndex: -1, CoordIndex: 1}, Kind: anm.ENTRY_AMBIENT, Data: &anmstrm.Ambient{Color: mgl32.Vec3{0.5, 0.5, 0.5}, Intensity: 1}},
			{Coord: anm.Coord{ClumpIndex: 0, CoordIndex: 9}, Kind: anm.ENTRY_MORPHMODEL, Data: &anmstrm.MorphModel{Weights: []float32{v}}},
		}}
	}
	return frames
}

func TestEntriesSortedByCoordIndex(t *testing.T) {
	clip, err := testConverter().BuildClip(emptyStream(), mixedFrames(2))
	require.NoError(t, err)

	// morph model has no curve layout and is dropped
	require.Len(t, clip.Entries, 6)
	var order []anm.Coord
	for _, e := range clip.Entries {
		order = append(order, e.Coord)
	}
	assert.Equal(t, []anm.Coord{{ClumpIndex: -1, CoordIndex: 0}, {ClumpIndex: 0, CoordIndex: 1}, {ClumpIndex: -1, CoordIndex: 1}, {ClumpIndex: -1, CoordIndex: 2}, {ClumpIndex: -1, CoordIndex: 3}, {ClumpIndex: 0, CoordIndex: 4}}, order)
}

func TestHasLayout(t *testing.T) {
	for _, kind := range []anm.EntryKind{anm.ENTRY_BONE, anm.ENTRY_CAMERA, anm.ENTRY_MATERIAL,
		anm.ENTRY_LIGHTDIRC, anm.ENTRY_LIGHTPOINT, anm.ENTRY_AMBIENT} {
		assert.True(t, HasLayout(kind), kind.String())
	}
	assert.False(t, HasLayout(anm.ENTRY_MORPHMODEL))

	_, ok, err := BuildEntry(&Series{Kind: anm.ENTRY_MORPHMODEL})
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestMaterialCurves(t *testing.T) {
	series := Series{Kind: anm.ENTRY_MATERIAL}
	for _, f := range mixedFrames(2) {
		series.Samples = append(series.Samples, f.Entries[0].Data)
	}
	e, ok, err := BuildEntry(&series)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, e.Curves, 18)

	for i, h := range e.Headers {
		assert.EqualValues(t, i, h.Index)
	}

	assert.Equal(t, anm.KeyframeFloatCurve{{Frame: 0, Value: 0}, {Frame: 50, Value: 0}, {Frame: 100, Value: 0.5}, {Frame: 150, Value: 0.5}, {Frame: -1, Value: 0.5}}, e.Curves[0])
	assert.Equal(t, anm.KeyframeFloatCurve{{Frame: 0, Value: 0}, {Frame: 50, Value: 0}, {Frame: 100, Value: 0}, {Frame: 150, Value: 0}, {Frame: -1, Value: 0}}, e.Curves[1])
	assert.Equal(t, anm.FloatCurve{1, 0.5}, e.Curves[2])
	assert.EqualValues(t, anm.CURVE_INT1_FLOAT1, e.Headers[8].Format)
	assert.EqualValues(t, anm.CURVE_FLOAT1ALT, e.Headers[10].Format)
	assert.Equal(t, anm.FloatCurve{3, 3}, e.Curves[15])
	assert.Equal(t, anm.FloatCurve{0, 0}, e.Curves[16])
	assert.Equal(t, anm.FloatCurve{1, 1}, e.Curves[17])
	assert.EqualValues(t, anm.CURVE_FLOAT1, e.Headers[17].Format)
}

func TestLightCurves(t *testing.T) {
	frames := mixedFrames(3)
	build := func(slot int) anm.Entry {
		series := Series{Kind: frames[0].Entries[slot].Kind}
		for _, f := range frames {
			series.Samples = append(series.Samples, f.Entries[slot].Data)
		}
		e, ok, err := BuildEntry(&series)
		require.NoError(t, err)
		require.True(t, ok)
		return e
	}

	dirc := build(3)
	require.Len(t, dirc.Curves, 3)
	assert.Equal(t, anm.RGBCurve{{255, 0, 0}, {255, 85, 0}, {255, 170, 0}, {255, 170, 0}}, dirc.Curves[0])
	assert.Equal(t, anm.CurveHeader{Index: 0, Format: anm.CURVE_BYTE3, FrameCount: 4, Size: 12}, dirc.Headers[0])
	assert.Equal(t, anm.QuaternionShort{0, 32767, 0, 0}, dirc.Curves[2].(anm.QuaternionShortCurve)[0])

	point := build(4)
	require.Len(t, point.Curves, 5)
	assert.Len(t, point.Curves[1], 4)
	assert.Equal(t, anm.FloatCurve{5, 5, 5}, point.Curves[3])

	ambient := build(5)
	assert.EqualValues(t, anm.CURVE_FLOAT1ALT2, ambient.Headers[1].Format)
	assert.Equal(t, anm.RGB{127, 127, 127}, ambient.Curves[0].(anm.RGBCurve)[3])
}

func TestSingleSampleIsNotTerminated(t *testing.T) {
	clip, err := testConverter().BuildClip(emptyStream(), boneFrames(1, anm.Coord{ClumpIndex: 0, CoordIndex: 0}))
	require.NoError(t, err)
	assert.Len(t, clip.Entries[0].Curves[0], 1)
}

func TestLargeBoneScaleSaturates(t *testing.T) {
	s := &Series{Coord: anm.Coord{ClumpIndex: 0, CoordIndex: 0}, Kind: anm.ENTRY_BONE}
	for _, v := range []float32{8, 10, 16} {
		s.Samples = append(s.Samples, &anmstrm.Bone{Rotation: mgl32.Vec4{0, 0, 0, 1}, Scale: mgl32.Vec3{v, -v, 1}})
	}

	e, ok, err := BuildEntry(s)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, anm.Vector3ShortCurve{
		{32767, -32768, 4096},
		{32767, -32768, 4096},
		{32767, -32768, 4096},
	}, e.Curves[2])
}

func TestTerminateProperties(t *testing.T) {
	for n := 0; n < 6; n++ {
		keys := make(anm.KeyframeFloatCurve, n)
		for i := range keys {
			keys[i] = anm.KeyframeFloat{Frame: int32(i * 100), Value: utils.RandomFloat(-10, 10)}
		}
		c := Terminate(append(anm.KeyframeFloatCurve{}, keys...)).(anm.KeyframeFloatCurve)
		if n <= 1 {
			assert.Equal(t, keys, c)
			continue
		}
		require.Len(t, c, n+1)
		assert.EqualValues(t, anm.KEYFRAME_TERMINATE, c[n].Frame)
		assert.Equal(t, c[n-1].Value, c[n].Value)

		// idempotent
		assert.Equal(t, c, Terminate(c))
	}

	v4 := Terminate(anm.KeyframeVector4Curve{{Frame: 0, Value: mgl32.Vec4{1}}, {Frame: 100, Value: mgl32.Vec4{2}}}).(anm.KeyframeVector4Curve)
	assert.Equal(t, anm.KeyframeVector4{Frame: -1, Value: mgl32.Vec4{2}}, v4[2])

	plain := anm.FloatCurve{1, 2, 3}
	assert.Equal(t, plain, Terminate(plain))
}

func TestPadColors(t *testing.T) {
	for n := 0; n < 10; n++ {
		c := make(anm.RGBCurve, n)
		for i := range c {
			c[i] = anm.RGB{uint8(i), 1, 2}
		}
		padded := PadColors(c)
		assert.Zero(t, len(padded)%4)
		assert.GreaterOrEqual(t, len(padded), n)
		for i := n; i < len(padded); i++ {
			assert.Equal(t, c[n-1], padded[i])
		}
	}
}

func TestInconsistentFrames(t *testing.T) {
	frames := boneFrames(3, anm.Coord{ClumpIndex: 0, CoordIndex: 0})
	frames[2].Entries = append(frames[2].Entries, frames[2].Entries[0])
	_, err := Aggregate(frames)
	assert.True(t, errors.Is(err, ErrInconsistentFrames))

	frames = boneFrames(3, anm.Coord{ClumpIndex: 0, CoordIndex: 0})
	frames[1].Entries[0].Kind = anm.ENTRY_CAMERA
	frames[1].Entries[0].Data = &anmstrm.Camera{}
	_, err = testConverter().BuildClip(emptyStream(), frames)
	assert.True(t, errors.Is(err, ErrInconsistentFrames))
}

func TestAggregateKeepsOrder(t *testing.T) {
	frames := mixedFrames(4)
	series, err := Aggregate(frames)
	require.NoError(t, err)
	require.Len(t, series, 7)
	for slot, s := range series {
		assert.Equal(t, slot, s.Slot)
		assert.Equal(t, frames[0].Entries[slot].Coord, s.Coord)
		for i, sample := range s.Samples {
			assert.Same(t, frames[i].Entries[slot].Data, sample)
		}
	}

	series, err = Aggregate(nil)
	assert.NoError(t, err)
	assert.Empty(t, series)
}

func TestConvertReportsProgress(t *testing.T) {
	rec := &status.Recorder{}
	c := testConverter()
	c.Reporter = rec

	clip, dmg, err := c.Convert(emptyStream(), mixedFrames(3))
	require.NoError(t, err)
	// single clump is the damage clump
	assert.Empty(t, clip.Clumps)
	assert.Len(t, dmg.Clumps, 1)
	assert.Len(t, clip.Entries, 4)
	assert.Len(t, dmg.Entries, 2)

	progress := rec.Messages(status.PROGRESS)
	require.NotEmpty(t, progress)
	assert.Equal(t, "objects 6/6", progress[len(progress)-1])
}
