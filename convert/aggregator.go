package convert

import (
	"github.com/mogaika/anmstrm2anm/pack/anm"
	"github.com/mogaika/anmstrm2anm/pack/anmstrm"

	"github.com/pkg/errors"
)

var ErrInconsistentFrames = errors.New("inconsistent frames")

// Series is every snapshot of one object slot, in frame order
type Series struct {
	Slot    int
	Coord   anm.Coord
	Kind    anm.EntryKind
	Samples []anmstrm.EntryData
}

// Aggregate regroups frame snapshots into per slot time series.
// Slots are taken from the first frame, every following frame must
// carry the same slots with the same kinds.
func Aggregate(frames []*anmstrm.Frame) ([]Series, error) {
	if len(frames) == 0 {
		return nil, nil
	}

	first := frames[0]
	series := make([]Series, len(first.Entries))
	for i, e := range first.Entries {
		series[i] = Series{
			Slot:    i,
			Coord:   e.Coord,
			Kind:    e.Kind,
			Samples: make([]anmstrm.EntryData, 0, len(frames)),
		}
	}

	for fi, f := range frames {
		if len(f.Entries) != len(series) {
			return nil, errors.Wrapf(ErrInconsistentFrames, "frame #%d (%d) has %d entries, first frame has %d",
				fi, f.Number, len(f.Entries), len(series))
		}
		for i := range f.Entries {
			e := &f.Entries[i]
			if e.Kind != series[i].Kind {
				return nil, errors.Wrapf(ErrInconsistentFrames, "frame #%d (%d) slot %d is %v, first frame has %v",
					fi, f.Number, i, e.Kind, series[i].Kind)
			}
			series[i].Samples = append(series[i].Samples, e.Data)
		}
	}
	return series, nil
}
