package convert

import (
	"log"

	"github.com/mogaika/anmstrm2anm/config"
	"github.com/mogaika/anmstrm2anm/pack/anm"
	"github.com/mogaika/anmstrm2anm/pack/anmstrm"
	"github.com/mogaika/anmstrm2anm/status"
	"github.com/mogaika/anmstrm2anm/utils"

	"github.com/pkg/errors"
)

type Converter struct {
	Settings config.Settings
	Reporter status.Reporter
}

func NewConverter(settings config.Settings, r status.Reporter) *Converter {
	if r == nil {
		r = status.Discard
	}
	return &Converter{Settings: settings, Reporter: r}
}

func (c *Converter) Splitter() Splitter {
	return Splitter{
		DamageBoneCount: int(c.Settings.DamageBoneCount),
		ClumpShift:      c.Settings.ClumpShift,
	}
}

// BuildClip turns frame snapshots of stream into clip with one entry per
// animated object. Entries are ordered by coord index.
func (c *Converter) BuildClip(stream *anmstrm.Stream, frames []*anmstrm.Frame) (*anm.Clip, error) {
	series, err := Aggregate(frames)
	if err != nil {
		return nil, err
	}
	buildable := series[:0]
	for _, s := range series {
		if !HasLayout(s.Kind) {
			log.Printf("[convert] Skipping slot %d %v: no curve layout for %v", s.Slot, s.Coord, s.Kind)
			continue
		}
		buildable = append(buildable, s)
	}
	series = buildable

	status.Info(c.Reporter, "Building curves of %d objects over %d frames", len(series), len(frames))

	entries := make([]anm.Entry, len(series))
	counter := status.NewCounter(c.Reporter, "objects", len(series))

	if err := utils.ParallelFor(c.Settings.Workers, len(series), func(i int) error {
		defer counter.Step()
		var err error
		entries[i], _, err = BuildEntry(&series[i])
		return err
	}); err != nil {
		return nil, errors.Wrapf(err, "[convert] Failed to build curves")
	}
	sortEntries(entries)

	clip := &anm.Clip{
		Length:       stream.Length,
		FrameSize:    stream.FrameSize,
		Looped:       stream.Looped,
		Clumps:       make([]anm.Clump, len(stream.Clumps)),
		OtherEntries: append([]uint32{}, stream.OtherEntries...),
		OtherIndices: append([]uint32{}, stream.OtherIndices...),
		CoordParents: append([]anm.CoordParent{}, stream.CoordParents...),
		Entries:      entries,
	}
	for i := range stream.Clumps {
		clip.Clumps[i] = stream.Clumps[i].Clump.Clone()
	}

	if c.Settings.Debug {
		utils.LogDump("[convert] clip header", clip.Header())
	}
	return clip, nil
}

// Convert builds the clip of stream and splits the damage clump out of it.
// Both clips are validated and ready to be written.
func (c *Converter) Convert(stream *anmstrm.Stream, frames []*anmstrm.Frame) (clip *anm.Clip, dmg *anm.Clip, err error) {
	full, err := c.BuildClip(stream, frames)
	if err != nil {
		return nil, nil, err
	}

	sp := c.Splitter()
	clip, dmg = sp.Split(full)
	status.Info(c.Reporter, "Split damage clump: %d entries left, %d entries moved", len(clip.Entries), len(dmg.Entries))

	if err := clip.Validate(); err != nil {
		return nil, nil, errors.Wrapf(err, "[convert] Built clip is invalid")
	}
	if err := dmg.Validate(); err != nil {
		return nil, nil, errors.Wrapf(err, "[convert] Built damage clip is invalid")
	}
	return clip, dmg, nil
}
