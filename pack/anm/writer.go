package anm

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/mogaika/anmstrm2anm/utils"

	"github.com/pkg/errors"
)

func (c *Clip) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Clip) WriteTo(w io.Writer) (int64, error) {
	wc := utils.NewWriteCounter(w)

	if err := c.Validate(); err != nil {
		return 0, err
	}

	h := c.Header()
	if err := binary.Write(wc, binary.BigEndian, &h); err != nil {
		return wc.Pos(), errors.Wrapf(err, "[anm] Failed to write header")
	}

	for i := range c.Clumps {
		if err := WriteClump(wc, &c.Clumps[i]); err != nil {
			return wc.Pos(), errors.Wrapf(err, "[anm] Failed to write clump %d", i)
		}
	}

	for _, list := range [][]uint32{c.OtherEntries, c.OtherIndices} {
		if err := binary.Write(wc, binary.BigEndian, list); err != nil {
			return wc.Pos(), errors.Wrapf(err, "[anm] Failed to write other indices")
		}
	}

	if err := binary.Write(wc, binary.BigEndian, c.CoordParents); err != nil {
		return wc.Pos(), errors.Wrapf(err, "[anm] Failed to write coord parents")
	}

	for i := range c.Entries {
		if err := writeEntry(wc, &c.Entries[i]); err != nil {
			return wc.Pos(), errors.Wrapf(err, "[anm] Failed to write entry %d", i)
		}
	}

	return wc.Pos(), nil
}

// Validate checks that every count fits its on-wire field and
// every curve matches its header
func (c *Clip) Validate() error {
	for name, l := range map[string]int{
		"entries":       len(c.Entries),
		"clumps":        len(c.Clumps),
		"other entries": len(c.OtherEntries),
		"other indices": len(c.OtherIndices),
		"coord parents": len(c.CoordParents),
	} {
		if l > 0xffff {
			return errors.Wrapf(ErrMalformedClip, "too many %s: %d", name, l)
		}
	}
	for i := range c.Clumps {
		if len(c.Clumps[i].BoneMaterialIndices) > 0xffff || len(c.Clumps[i].ModelIndices) > 0xffff {
			return errors.Wrapf(ErrMalformedClip, "clump %d has too many indices", i)
		}
	}
	for i := range c.Entries {
		if err := c.Entries[i].Validate(); err != nil {
			return errors.Wrapf(err, "entry %d", i)
		}
	}
	return nil
}

func (e *Entry) Validate() error {
	if len(e.Headers) != len(e.Curves) {
		return errors.Wrapf(ErrMalformedClip, "%d curve headers for %d curves", len(e.Headers), len(e.Curves))
	}
	if len(e.Curves) > 0xffff {
		return errors.Wrapf(ErrMalformedClip, "too many curves: %d", len(e.Curves))
	}
	for i, h := range e.Headers {
		c := e.Curves[i]
		if c == nil {
			return errors.Wrapf(ErrMalformedClip, "curve %d is nil", i)
		}
		if opaque, ok := c.(OpaqueCurve); ok {
			if int(h.Size) != len(opaque) {
				return errors.Wrapf(ErrMalformedClip, "opaque curve %d has %d bytes, header says %d", i, len(opaque), h.Size)
			}
			continue
		}
		shape, ok := ShapeOf(h.Format)
		if !ok {
			return errors.Wrapf(errorUnknownFormat(h.Format), "curve %d", i)
		}
		if !shape.Fits(c) {
			return errors.Wrapf(errorShapeMismatch(h.Format, c), "curve %d", i)
		}
		if int(h.FrameCount) != c.Len() {
			return errors.Wrapf(ErrMalformedClip, "curve %d has %d elements, header says %d", i, c.Len(), h.FrameCount)
		}
	}
	return nil
}

func WriteClump(w io.Writer, c *Clump) error {
	raw := rawClump{
		Index:             c.Index,
		BoneMaterialCount: uint16(len(c.BoneMaterialIndices)),
		ModelCount:        uint16(len(c.ModelIndices)),
	}
	if err := binary.Write(w, binary.BigEndian, &raw); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, c.BoneMaterialIndices); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, c.ModelIndices)
}

func writeEntry(w io.Writer, e *Entry) error {
	raw := rawEntryHead{
		Coord:      e.Coord,
		Kind:       uint16(e.Kind),
		CurveCount: uint16(len(e.Curves)),
	}
	if err := binary.Write(w, binary.BigEndian, &raw); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, e.Headers); err != nil {
		return err
	}
	for i, c := range e.Curves {
		if err := WriteCurve(w, e.Headers[i], c); err != nil {
			return errors.Wrapf(err, "Failed to write curve %d", i)
		}
	}
	return nil
}

// WriteCurve writes payload of c followed by format padding
func WriteCurve(w io.Writer, h CurveHeader, c Curve) error {
	if opaque, ok := c.(OpaqueCurve); ok {
		_, err := w.Write(opaque)
		return err
	}
	shape, ok := ShapeOf(h.Format)
	if !ok {
		return errorUnknownFormat(h.Format)
	}
	if err := binary.Write(w, binary.BigEndian, c); err != nil {
		return err
	}
	if pad := shape.Padding(c.Len()); pad != 0 {
		if _, err := w.Write(utils.PaddingZeroes(pad)); err != nil {
			return err
		}
	}
	return nil
}
