package convert

import (
	"log"
	"sort"

	"github.com/mogaika/anmstrm2anm/pack/anm"
)

// Splitter moves the damage clump of a clip into a clip of its own.
//
// Clump positions (used by coords and entries) and clump Index values
// (used by clumps themselves) are different index spaces: removing a clump
// shifts positions of following clumps by one, and their Index and slot
// indices by ClumpShift.
type Splitter struct {
	// Bone/material slot count of the damage clump
	DamageBoneCount int
	ClumpShift      uint32
}

// DamageClump returns position of the first clump having DamageBoneCount
// bone/material slots. Defaults to 0, -1 for clip without clumps.
func (sp Splitter) DamageClump(clip *anm.Clip) int {
	for i := range clip.Clumps {
		if len(clip.Clumps[i].BoneMaterialIndices) == sp.DamageBoneCount {
			return i
		}
	}
	if len(clip.Clumps) == 0 {
		return -1
	}
	return 0
}

// subIndices shifts indices down by v, saturating at 0
func subIndices(indices []uint32, v uint32) []uint32 {
	result := make([]uint32, len(indices))
	for i, idx := range indices {
		if idx >= v {
			result[i] = idx - v
		} else {
			log.Printf("[convert] Warning: slot index %d is below shift %d, clamped to 0", idx, v)
		}
	}
	return result
}

func sortEntries(entries []anm.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Coord.CoordIndex < entries[j].Coord.CoordIndex
	})
}

// Partition builds a clip containing only the damage clump, its coord
// relations and its entries, everything rebased to clump zero.
// Returned position is the damage clump position inside clip, -1 when
// clip has no clumps.
func (sp Splitter) Partition(clip *anm.Clip) (*anm.Clip, int) {
	pos := sp.DamageClump(clip)

	result := &anm.Clip{
		Length:       clip.Length,
		FrameSize:    clip.FrameSize,
		Looped:       clip.Looped,
		Clumps:       []anm.Clump{},
		OtherEntries: []uint32{},
		OtherIndices: []uint32{},
		CoordParents: []anm.CoordParent{},
		Entries:      []anm.Entry{},
	}
	if pos < 0 {
		return result, pos
	}

	base := clip.Clumps[pos].Index
	result.Clumps = append(result.Clumps, anm.Clump{
		Index:               0,
		BoneMaterialIndices: subIndices(clip.Clumps[pos].BoneMaterialIndices, base),
		ModelIndices:        subIndices(clip.Clumps[pos].ModelIndices, base),
	})

	shift := int16(pos)
	for _, cp := range clip.CoordParents {
		if cp.Parent.ClumpIndex == shift {
			cp.Parent.ClumpIndex -= shift
			cp.Child.ClumpIndex -= shift
			result.CoordParents = append(result.CoordParents, cp)
		}
	}

	for i := range clip.Entries {
		if clip.Entries[i].Coord.ClumpIndex == shift {
			e := clip.Entries[i].Clone()
			e.Coord.ClumpIndex -= shift
			result.Entries = append(result.Entries, e)
		}
	}
	sortEntries(result.Entries)

	return result, pos
}

// Renumber returns copy of clip without clump at pos, its coord relations
// and its entries. Following clumps are shifted down by ClumpShift, but
// never below Index of the removed clump.
func (sp Splitter) Renumber(clip *anm.Clip, pos int) *anm.Clip {
	result := clip.Clone()
	if pos < 0 || pos >= len(clip.Clumps) {
		return result
	}

	base := clip.Clumps[pos].Index
	clumps := result.Clumps[:0]
	for i, c := range result.Clumps {
		if i == pos {
			continue
		}
		if c.Index > base {
			shift := sp.ClumpShift
			if c.Index-base < shift {
				shift = c.Index - base
			}
			c.Index -= shift
			c.BoneMaterialIndices = subIndices(c.BoneMaterialIndices, shift)
			c.ModelIndices = subIndices(c.ModelIndices, shift)
		}
		clumps = append(clumps, c)
	}
	result.Clumps = clumps

	removed := int16(pos)
	parents := result.CoordParents[:0]
	for _, cp := range result.CoordParents {
		if cp.Parent.ClumpIndex == removed {
			continue
		}
		if cp.Parent.ClumpIndex > removed {
			cp.Parent.ClumpIndex--
			cp.Child.ClumpIndex--
		}
		parents = append(parents, cp)
	}
	result.CoordParents = parents

	entries := result.Entries[:0]
	for _, e := range result.Entries {
		if e.Coord.ClumpIndex == removed {
			continue
		}
		if e.Coord.ClumpIndex > removed {
			e.Coord.ClumpIndex--
		}
		entries = append(entries, e)
	}
	result.Entries = entries

	return result
}

// Split returns clip without the damage clump and clip made of it.
// Input clip is not modified.
func (sp Splitter) Split(clip *anm.Clip) (reduced *anm.Clip, extracted *anm.Clip) {
	extracted, pos := sp.Partition(clip)
	return sp.Renumber(clip, pos), extracted
}
