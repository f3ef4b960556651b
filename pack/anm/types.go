package anm

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type EntryKind uint16

const (
	ENTRY_BONE       EntryKind = 1
	ENTRY_CAMERA     EntryKind = 2
	ENTRY_MATERIAL   EntryKind = 4
	ENTRY_LIGHTDIRC  EntryKind = 5
	ENTRY_LIGHTPOINT EntryKind = 6
	ENTRY_AMBIENT    EntryKind = 8
	ENTRY_MORPHMODEL EntryKind = 12
)

var entryKindNames = map[EntryKind]string{
	ENTRY_BONE:       "Bone",
	ENTRY_CAMERA:     "Camera",
	ENTRY_MATERIAL:   "Material",
	ENTRY_LIGHTDIRC:  "LightDirc",
	ENTRY_LIGHTPOINT: "LightPoint",
	ENTRY_AMBIENT:    "Ambient",
	ENTRY_MORPHMODEL: "MorphModel",
}

func (k EntryKind) Known() bool {
	_, ok := entryKindNames[k]
	return ok
}

func (k EntryKind) String() string {
	if name, ok := entryKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint16(k))
}

// Header is the on-wire header shared by clips and streams.
// For streams Count is the frame count, for clips the entry count.
type Header struct {
	Length          uint32
	FrameSize       uint32
	Count           uint16
	Looped          uint16
	ClumpCount      uint16
	OtherEntryCount uint16
	OtherIndexCount uint16
	CoordCount      uint16
}

const HEADER_SIZE = 20

// Coord addresses an animated object: clump position + object index inside clump
type Coord struct {
	ClumpIndex int16
	CoordIndex uint16
}

type CoordParent struct {
	Parent Coord
	Child  Coord
}

type Clump struct {
	Index               uint32
	BoneMaterialIndices []uint32
	ModelIndices        []uint32
}

func (c *Clump) Clone() Clump {
	return Clump{
		Index:               c.Index,
		BoneMaterialIndices: append([]uint32{}, c.BoneMaterialIndices...),
		ModelIndices:        append([]uint32{}, c.ModelIndices...),
	}
}

type CurveHeader struct {
	Index      uint16
	Format     uint16
	FrameCount uint16
	Size       uint16
}

// Entry is the set of curves animating one object.
// Headers and Curves are paired by position.
type Entry struct {
	Coord   Coord
	Kind    EntryKind
	Headers []CurveHeader
	Curves  []Curve
}

func (e *Entry) Clone() Entry {
	ne := Entry{
		Coord:   e.Coord,
		Kind:    e.Kind,
		Headers: append([]CurveHeader{}, e.Headers...),
		Curves:  make([]Curve, len(e.Curves)),
	}
	for i, c := range e.Curves {
		ne.Curves[i] = CloneCurve(c)
	}
	return ne
}

// Clip is the per-object curve animation ("nuccChunkAnm").
// Counts of the on-wire header are derived from slice lengths.
type Clip struct {
	Length       uint32
	FrameSize    uint32
	Looped       uint16
	Clumps       []Clump
	OtherEntries []uint32
	OtherIndices []uint32
	CoordParents []CoordParent
	Entries      []Entry
}

func (c *Clip) Header() Header {
	return Header{
		Length:          c.Length,
		FrameSize:       c.FrameSize,
		Count:           uint16(len(c.Entries)),
		Looped:          c.Looped,
		ClumpCount:      uint16(len(c.Clumps)),
		OtherEntryCount: uint16(len(c.OtherEntries)),
		OtherIndexCount: uint16(len(c.OtherIndices)),
		CoordCount:      uint16(len(c.CoordParents)),
	}
}

func (c *Clip) Clone() *Clip {
	nc := &Clip{
		Length:       c.Length,
		FrameSize:    c.FrameSize,
		Looped:       c.Looped,
		Clumps:       make([]Clump, len(c.Clumps)),
		OtherEntries: append([]uint32{}, c.OtherEntries...),
		OtherIndices: append([]uint32{}, c.OtherIndices...),
		CoordParents: append([]CoordParent{}, c.CoordParents...),
		Entries:      make([]Entry, len(c.Entries)),
	}
	for i := range c.Clumps {
		nc.Clumps[i] = c.Clumps[i].Clone()
	}
	for i := range c.Entries {
		nc.Entries[i] = c.Entries[i].Clone()
	}
	return nc
}

type KeyframeVector3 struct {
	Frame int32
	Value mgl32.Vec3
}

type KeyframeVector4 struct {
	Frame int32
	Value mgl32.Vec4
}

type KeyframeFloat struct {
	Frame int32
	Value float32
}

// x, y, z
type Vector3Short [3]int16

// x, y, z, w
type QuaternionShort [4]int16

type RGB [3]uint8
