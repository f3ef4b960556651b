package anmstrm

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/anmstrm2anm/pack/anm"
)

// Stream is the per-frame animation source ("nuccChunkAnmStrm").
// Frame snapshots live in separate files, see Frame.
type Stream struct {
	Length       uint32
	FrameSize    uint32
	Looped       uint16
	Clumps       []Clump
	OtherEntries []uint32
	OtherIndices []uint32
	CoordParents []anm.CoordParent
	Frames       []FrameInfo
}

type Clump struct {
	anm.Clump
	// one value per model index, meaning unknown
	Unknown []uint32
}

type FrameInfo struct {
	Offset uint32
	Number uint16
}

func (s *Stream) Header() anm.Header {
	return anm.Header{
		Length:          s.Length,
		FrameSize:       s.FrameSize,
		Count:           uint16(len(s.Frames)),
		Looped:          s.Looped,
		ClumpCount:      uint16(len(s.Clumps)),
		OtherEntryCount: uint16(len(s.OtherEntries)),
		OtherIndexCount: uint16(len(s.OtherIndices)),
		CoordCount:      uint16(len(s.CoordParents)),
	}
}

// Frame is one snapshot of every animated object ("nuccChunkAnmStrmFrame")
type Frame struct {
	Number  uint32
	Flags   uint16
	Entries []Entry
}

type Entry struct {
	Coord anm.Coord
	Kind  anm.EntryKind
	// size field as stored in file
	Size uint16
	Data EntryData
}

// EntryData is one of the payload types below, matching Entry.Kind
type EntryData interface {
	Kind() anm.EntryKind
}

type Bone struct {
	FrameCount int32
	Location   mgl32.Vec3
	Rotation   mgl32.Vec4
	Scale      mgl32.Vec3
	Toggled    float32
}

type Camera struct {
	FrameCount int32
	Location   mgl32.Vec3
	Rotation   mgl32.Vec4
	Fov        float32
	Scale      mgl32.Vec3
}

type Material struct {
	FrameCount   int32
	AmbientColor [16]float32
}

type LightDirc struct {
	FrameCount int32
	Color      mgl32.Vec3
	Intensity  float32
	Direction  mgl32.Vec4
}

type LightPoint struct {
	FrameCount int32
	Color      mgl32.Vec3
	Position   mgl32.Vec3
	Intensity  float32
	Radius     float32
	Falloff    float32
}

type Ambient struct {
	FrameCount int32
	Color      mgl32.Vec3
	Intensity  float32
}

type MorphModel struct {
	Weights []float32
}

// Unknown keeps payload of unsupported kind, sized by Entry.Size.
// Only produced by lenient decoding.
type Unknown struct {
	EntryKind anm.EntryKind
	Raw       []byte
}

func (*Bone) Kind() anm.EntryKind       { return anm.ENTRY_BONE }
func (*Camera) Kind() anm.EntryKind     { return anm.ENTRY_CAMERA }
func (*Material) Kind() anm.EntryKind   { return anm.ENTRY_MATERIAL }
func (*LightDirc) Kind() anm.EntryKind  { return anm.ENTRY_LIGHTDIRC }
func (*LightPoint) Kind() anm.EntryKind { return anm.ENTRY_LIGHTPOINT }
func (*Ambient) Kind() anm.EntryKind    { return anm.ENTRY_AMBIENT }
func (*MorphModel) Kind() anm.EntryKind { return anm.ENTRY_MORPHMODEL }
func (u *Unknown) Kind() anm.EntryKind  { return u.EntryKind }

func newEntryData(kind anm.EntryKind) EntryData {
	switch kind {
	case anm.ENTRY_BONE:
		return &Bone{}
	case anm.ENTRY_CAMERA:
		return &Camera{}
	case anm.ENTRY_MATERIAL:
		return &Material{}
	case anm.ENTRY_LIGHTDIRC:
		return &LightDirc{}
	case anm.ENTRY_LIGHTPOINT:
		return &LightPoint{}
	case anm.ENTRY_AMBIENT:
		return &Ambient{}
	case anm.ENTRY_MORPHMODEL:
		return &MorphModel{}
	}
	return nil
}
