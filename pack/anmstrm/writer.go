package anmstrm

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/mogaika/anmstrm2anm/pack/anm"
	"github.com/mogaika/anmstrm2anm/utils"

	"github.com/pkg/errors"
)

func (s *Stream) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	wc := utils.NewWriteCounter(w)

	h := s.Header()
	if err := binary.Write(wc, binary.BigEndian, &h); err != nil {
		return wc.Pos(), errors.Wrapf(err, "[anmstrm] Failed to write header")
	}

	for i := range s.Clumps {
		c := &s.Clumps[i]
		if len(c.Unknown) != len(c.ModelIndices) {
			return wc.Pos(), errors.Wrapf(ErrMalformedStream, "[anmstrm] clump %d has %d models and %d tail values",
				i, len(c.ModelIndices), len(c.Unknown))
		}
		if err := anm.WriteClump(wc, &c.Clump); err != nil {
			return wc.Pos(), errors.Wrapf(err, "[anmstrm] Failed to write clump %d", i)
		}
		if err := binary.Write(wc, binary.BigEndian, c.Unknown); err != nil {
			return wc.Pos(), errors.Wrapf(err, "[anmstrm] Failed to write clump %d tail", i)
		}
	}

	for _, data := range []interface{}{s.OtherEntries, s.OtherIndices, s.CoordParents, s.Frames} {
		if err := binary.Write(wc, binary.BigEndian, data); err != nil {
			return wc.Pos(), errors.Wrapf(err, "[anmstrm] Failed to write tables")
		}
	}
	return wc.Pos(), nil
}

func (f *Frame) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	wc := utils.NewWriteCounter(w)

	if len(f.Entries) > 0xffff {
		return 0, errors.Wrapf(ErrMalformedStream, "[anmstrm] too many entries: %d", len(f.Entries))
	}
	raw := rawFrameHead{Number: f.Number, EntryCount: uint16(len(f.Entries)), Flags: f.Flags}
	if err := binary.Write(wc, binary.BigEndian, &raw); err != nil {
		return wc.Pos(), errors.Wrapf(err, "[anmstrm] Failed to write frame header")
	}

	for i := range f.Entries {
		if err := writeEntry(wc, &f.Entries[i]); err != nil {
			return wc.Pos(), errors.Wrapf(err, "[anmstrm] Failed to write frame %d entry %d", f.Number, i)
		}
	}
	return wc.Pos(), nil
}

func writeEntry(w io.Writer, e *Entry) error {
	if e.Data == nil || e.Data.Kind() != e.Kind {
		return errors.Wrapf(ErrMalformedStream, "payload does not match kind %v", e.Kind)
	}
	raw := rawEntryHead{Coord: e.Coord, Kind: uint16(e.Kind), Size: e.Size}
	if err := binary.Write(w, binary.BigEndian, &raw); err != nil {
		return err
	}

	switch v := e.Data.(type) {
	case *Unknown:
		_, err := w.Write(v.Raw)
		return err
	case *MorphModel:
		if err := binary.Write(w, binary.BigEndian, int32(len(v.Weights))); err != nil {
			return err
		}
		return binary.Write(w, binary.BigEndian, v.Weights)
	default:
		return binary.Write(w, binary.BigEndian, e.Data)
	}
}
