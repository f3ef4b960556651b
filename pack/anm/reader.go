package anm

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/mogaika/anmstrm2anm/utils"

	"github.com/pkg/errors"
)

// Decoder reads clips. Lenient decoding keeps curves of unknown
// format as OpaqueCurve (sized by header) and accepts unknown entry kinds,
// otherwise both are fatal.
type Decoder struct {
	Lenient bool
}

func ReadClip(r io.Reader) (*Clip, error) {
	return Decoder{}.Decode(r)
}

func NewFromData(data []byte) (*Clip, error) {
	return ReadClip(bytes.NewReader(data))
}

func (d Decoder) Decode(r io.Reader) (*Clip, error) {
	rc := utils.NewReadCounter(r)

	var h Header
	if err := binary.Read(rc, binary.BigEndian, &h); err != nil {
		return nil, errorAt(err, rc.Pos(), "[anm] Failed to read header")
	}

	c := &Clip{
		Length:    h.Length,
		FrameSize: h.FrameSize,
		Looped:    h.Looped,
		Clumps:    make([]Clump, h.ClumpCount),
		Entries:   make([]Entry, h.Count),
	}

	for i := range c.Clumps {
		if err := ReadClump(rc, &c.Clumps[i]); err != nil {
			return nil, errors.Wrapf(err, "[anm] Failed to read clump %d", i)
		}
	}

	var err error
	if c.OtherEntries, err = ReadIndices(rc, int(h.OtherEntryCount)); err != nil {
		return nil, errorAt(err, rc.Pos(), "[anm] Failed to read other entries")
	}
	if c.OtherIndices, err = ReadIndices(rc, int(h.OtherIndexCount)); err != nil {
		return nil, errorAt(err, rc.Pos(), "[anm] Failed to read other indices")
	}

	if c.CoordParents, err = ReadCoordParents(rc, int(h.CoordCount)); err != nil {
		return nil, errorAt(err, rc.Pos(), "[anm] Failed to read coord parents")
	}

	for i := range c.Entries {
		if err := d.readEntry(rc, &c.Entries[i]); err != nil {
			return nil, errors.Wrapf(err, "[anm] Failed to read entry %d", i)
		}
	}

	return c, nil
}

type rawClump struct {
	Index             uint32
	BoneMaterialCount uint16
	ModelCount        uint16
}

func readClumpHead(r *utils.ReadCounter, c *Clump) (rawClump, error) {
	var raw rawClump
	if err := binary.Read(r, binary.BigEndian, &raw); err != nil {
		return raw, errorAt(err, r.Pos(), "Failed to read clump header")
	}
	c.Index = raw.Index

	var err error
	if c.BoneMaterialIndices, err = ReadIndices(r, int(raw.BoneMaterialCount)); err != nil {
		return raw, errorAt(err, r.Pos(), "Failed to read bone/material indices")
	}
	if c.ModelIndices, err = ReadIndices(r, int(raw.ModelCount)); err != nil {
		return raw, errorAt(err, r.Pos(), "Failed to read model indices")
	}
	return raw, nil
}

// ReadClump reads clump without trailing data
func ReadClump(r io.Reader, c *Clump) error {
	_, err := readClumpHead(utils.NewReadCounter(r), c)
	return err
}

// ReadClumpWithTail reads clump followed by one u32 per model,
// which is stream flavour of clump
func ReadClumpWithTail(r io.Reader, c *Clump) ([]uint32, error) {
	rc := utils.NewReadCounter(r)
	raw, err := readClumpHead(rc, c)
	if err != nil {
		return nil, err
	}
	tail, err := ReadIndices(rc, int(raw.ModelCount))
	if err != nil {
		return nil, errorAt(err, rc.Pos(), "Failed to read clump tail")
	}
	return tail, nil
}

func ReadIndices(r io.Reader, count int) ([]uint32, error) {
	result := make([]uint32, count)
	if err := binary.Read(r, binary.BigEndian, result); err != nil {
		return nil, err
	}
	return result, nil
}

func ReadCoordParents(r io.Reader, count int) ([]CoordParent, error) {
	result := make([]CoordParent, count)
	if err := binary.Read(r, binary.BigEndian, result); err != nil {
		return nil, err
	}
	return result, nil
}

type rawEntryHead struct {
	Coord      Coord
	Kind       uint16
	CurveCount uint16
}

func (d Decoder) readEntry(r *utils.ReadCounter, e *Entry) error {
	var raw rawEntryHead
	if err := binary.Read(r, binary.BigEndian, &raw); err != nil {
		return errorAt(err, r.Pos(), "Failed to read entry header")
	}

	e.Coord = raw.Coord
	e.Kind = EntryKind(raw.Kind)
	if !e.Kind.Known() && !d.Lenient {
		return errorAt(errors.Wrapf(ErrUnknownEntryKind, "kind %d", raw.Kind), r.Pos(), "Bad entry")
	}

	e.Headers = make([]CurveHeader, raw.CurveCount)
	if err := binary.Read(r, binary.BigEndian, e.Headers); err != nil {
		return errorAt(err, r.Pos(), "Failed to read curve headers")
	}

	e.Curves = make([]Curve, raw.CurveCount)
	for i := range e.Headers {
		curve, err := d.ReadCurve(r, e.Headers[i])
		if err != nil {
			return errors.Wrapf(err, "Failed to read curve %d", i)
		}
		e.Curves[i] = curve
	}
	return nil
}

// ReadCurve reads payload described by already read header h
func (d Decoder) ReadCurve(r io.Reader, h CurveHeader) (Curve, error) {
	rc := utils.NewReadCounter(r)

	shape, ok := ShapeOf(h.Format)
	if !ok {
		if !d.Lenient {
			return nil, errorAt(errorUnknownFormat(h.Format), rc.Pos(), "Bad curve")
		}
		opaque := make(OpaqueCurve, h.Size)
		if _, err := io.ReadFull(rc, opaque); err != nil {
			return nil, errorAt(err, rc.Pos(), "Failed to read opaque curve")
		}
		return opaque, nil
	}

	c := shape.New(int(h.FrameCount))
	if err := binary.Read(rc, binary.BigEndian, c); err != nil {
		return nil, errorAt(err, rc.Pos(), "Failed to read %s curve of %d elements", shape.Name, h.FrameCount)
	}
	if err := rc.Skip(shape.Padding(int(h.FrameCount))); err != nil {
		return nil, errorAt(err, rc.Pos(), "Failed to read %s curve padding", shape.Name)
	}
	return c, nil
}
