package anmstrm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mogaika/anmstrm2anm/pack/anm"
	"github.com/mogaika/anmstrm2anm/utils"

	"github.com/pkg/errors"
)

var (
	ErrUnknownEntryKind = anm.ErrUnknownEntryKind
	ErrMalformedStream  = errors.New("malformed stream")
)

// Decoder reads streams and frames. Lenient decoding keeps entries of
// unknown kind as Unknown, otherwise they are fatal.
type Decoder struct {
	Lenient bool
}

func errorAt(err error, pos int64, format string, a ...interface{}) error {
	return errors.Wrapf(err, "%s at 0x%x", fmt.Sprintf(format, a...), pos)
}

func ReadStream(r io.Reader) (*Stream, error) {
	return Decoder{}.DecodeStream(r)
}

func ReadFrame(r io.Reader) (*Frame, error) {
	return Decoder{}.DecodeFrame(r)
}

func NewStreamFromData(data []byte) (*Stream, error) {
	return ReadStream(bytes.NewReader(data))
}

func NewFrameFromData(data []byte) (*Frame, error) {
	return ReadFrame(bytes.NewReader(data))
}

func (d Decoder) DecodeStream(r io.Reader) (*Stream, error) {
	rc := utils.NewReadCounter(r)

	var h anm.Header
	if err := binary.Read(rc, binary.BigEndian, &h); err != nil {
		return nil, errorAt(err, rc.Pos(), "[anmstrm] Failed to read header")
	}

	s := &Stream{
		Length:    h.Length,
		FrameSize: h.FrameSize,
		Looped:    h.Looped,
		Clumps:    make([]Clump, h.ClumpCount),
		Frames:    make([]FrameInfo, h.Count),
	}

	for i := range s.Clumps {
		tail, err := anm.ReadClumpWithTail(rc, &s.Clumps[i].Clump)
		if err != nil {
			return nil, errors.Wrapf(err, "[anmstrm] Failed to read clump %d", i)
		}
		s.Clumps[i].Unknown = tail
	}

	var err error
	if s.OtherEntries, err = anm.ReadIndices(rc, int(h.OtherEntryCount)); err != nil {
		return nil, errorAt(err, rc.Pos(), "[anmstrm] Failed to read other entries")
	}
	if s.OtherIndices, err = anm.ReadIndices(rc, int(h.OtherIndexCount)); err != nil {
		return nil, errorAt(err, rc.Pos(), "[anmstrm] Failed to read other indices")
	}
	if s.CoordParents, err = anm.ReadCoordParents(rc, int(h.CoordCount)); err != nil {
		return nil, errorAt(err, rc.Pos(), "[anmstrm] Failed to read coord parents")
	}

	if err := binary.Read(rc, binary.BigEndian, s.Frames); err != nil {
		return nil, errorAt(err, rc.Pos(), "[anmstrm] Failed to read frames table")
	}

	return s, nil
}

type rawFrameHead struct {
	Number     uint32
	EntryCount uint16
	Flags      uint16
}

type rawEntryHead struct {
	Coord anm.Coord
	Kind  uint16
	Size  uint16
}

func (d Decoder) DecodeFrame(r io.Reader) (*Frame, error) {
	rc := utils.NewReadCounter(r)

	var raw rawFrameHead
	if err := binary.Read(rc, binary.BigEndian, &raw); err != nil {
		return nil, errorAt(err, rc.Pos(), "[anmstrm] Failed to read frame header")
	}

	f := &Frame{
		Number:  raw.Number,
		Flags:   raw.Flags,
		Entries: make([]Entry, raw.EntryCount),
	}
	for i := range f.Entries {
		if err := d.readEntry(rc, &f.Entries[i]); err != nil {
			return nil, errors.Wrapf(err, "[anmstrm] Failed to read frame %d entry %d", f.Number, i)
		}
	}
	return f, nil
}

func (d Decoder) readEntry(r *utils.ReadCounter, e *Entry) error {
	var raw rawEntryHead
	if err := binary.Read(r, binary.BigEndian, &raw); err != nil {
		return errorAt(err, r.Pos(), "Failed to read entry header")
	}
	e.Coord = raw.Coord
	e.Kind = anm.EntryKind(raw.Kind)
	e.Size = raw.Size

	data := newEntryData(e.Kind)
	switch v := data.(type) {
	case nil:
		if !d.Lenient {
			return errorAt(errors.Wrapf(ErrUnknownEntryKind, "kind %d", raw.Kind), r.Pos(), "Bad entry")
		}
		u := &Unknown{EntryKind: e.Kind, Raw: make([]byte, raw.Size)}
		if _, err := io.ReadFull(r, u.Raw); err != nil {
			return errorAt(err, r.Pos(), "Failed to read %v payload", e.Kind)
		}
		data = u
	case *MorphModel:
		var count int32
		if err := binary.Read(r, binary.BigEndian, &count); err != nil {
			return errorAt(err, r.Pos(), "Failed to read morph weights count")
		}
		if count < 0 || count > 0xffff {
			return errorAt(errors.Wrapf(ErrMalformedStream, "morph weights count %d", count), r.Pos(), "Bad entry")
		}
		v.Weights = make([]float32, count)
		if err := binary.Read(r, binary.BigEndian, v.Weights); err != nil {
			return errorAt(err, r.Pos(), "Failed to read morph weights")
		}
	default:
		if err := binary.Read(r, binary.BigEndian, data); err != nil {
			return errorAt(err, r.Pos(), "Failed to read %v payload", e.Kind)
		}
	}
	e.Data = data
	return nil
}
