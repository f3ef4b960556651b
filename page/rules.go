package page

import (
	"strings"
)

const (
	TYPE_ANM          = "nuccChunkAnm"
	TYPE_ANMSTRM      = "nuccChunkAnmStrm"
	TYPE_ANMSTRMFRAME = "nuccChunkAnmStrmFrame"
	TYPE_MORPHMODEL   = "nuccChunkMorphModel"
	TYPE_CAMERA       = "nuccChunkCamera"
	TYPE_LIGHTDIRC    = "nuccChunkLightDirc"
	TYPE_LIGHTPOINT   = "nuccChunkLightPoint"
	TYPE_AMBIENT      = "nuccChunkAmbient"
	TYPE_LAYERSET     = "nuccChunkLayerSet"
	TYPE_NULL         = "nuccChunkNull"
	TYPE_INDEX        = "nuccChunkIndex"
	TYPE_PAGE         = "nuccChunkPage"

	DAMAGE_SUFFIX = "_dmg"
)

// chunk types and file extensions that have no place in the damage clip
var damageDropped = []struct {
	chunkType string
	ext       string
}{
	{TYPE_MORPHMODEL, ".morphmodel"},
	{TYPE_ANMSTRMFRAME, ".anmstrmframe"},
	{TYPE_CAMERA, ".camera"},
	{TYPE_LIGHTDIRC, ".lightdirc"},
	{TYPE_LIGHTPOINT, ".lightpoint"},
	{TYPE_AMBIENT, ".ambient"},
	{TYPE_LAYERSET, ".layerset"},
}

func filterChunks(chunks []Chunk, keep func(c *Chunk) bool) []Chunk {
	result := make([]Chunk, 0, len(chunks))
	for i := range chunks {
		if keep(&chunks[i]) {
			result = append(result, chunks[i])
		}
	}
	return result
}

func filterReferences(refs []ChunkReference, keep func(r *ChunkReference) bool) []ChunkReference {
	result := make([]ChunkReference, 0, len(refs))
	for i := range refs {
		if keep(&refs[i]) {
			result = append(result, refs[i])
		}
	}
	return result
}

func filterFiles(files []File, keep func(f *File) bool) []File {
	result := make([]File, 0, len(files))
	for i := range files {
		if keep(&files[i]) {
			result = append(result, files[i])
		}
	}
	return result
}

// BuildClipPage returns page of the converted clip: stream frames and
// morph models are gone, stream chunk becomes clip chunk and chunks of
// the damage model (names containing marker) are dropped.
func BuildClipPage(src *Page, marker string) *Page {
	p := src.Clone()

	p.ChunkMaps = filterChunks(p.ChunkMaps, func(c *Chunk) bool {
		return !strings.Contains(c.Types, TYPE_MORPHMODEL) && !strings.Contains(c.Types, TYPE_ANMSTRMFRAME)
	})
	for i := range p.ChunkMaps {
		if strings.Contains(p.ChunkMaps[i].Types, TYPE_ANMSTRM) {
			p.ChunkMaps[i].Types = TYPE_ANM
		}
	}
	if marker != "" {
		p.ChunkMaps = filterChunks(p.ChunkMaps, func(c *Chunk) bool { return !strings.Contains(c.Name, marker) })
		p.ChunkReferences = filterReferences(p.ChunkReferences, func(r *ChunkReference) bool {
			return !strings.Contains(r.Name, marker)
		})
	}

	p.Files = filterFiles(p.Files, func(f *File) bool {
		return !strings.Contains(f.FileName, ".morphmodel") && !strings.Contains(f.FileName, ".anmstrmframe")
	})
	for i := range p.Files {
		f := &p.Files[i]
		if strings.Contains(f.FileName, "anmstrm") {
			f.FileName = strings.ReplaceAll(f.FileName, "anmstrm", "anm")
			f.Chunk.Types = TYPE_ANM
		}
	}
	return p
}

func damageChunk(c *Chunk) {
	c.Types = TYPE_ANM
	c.Name += DAMAGE_SUFFIX
	c.Path = strings.ReplaceAll(c.Path, ".max", DAMAGE_SUFFIX+".max")
}

// BuildDamagePage returns page of the damage clip: only chunks naming the
// damage marker and structural chunks are kept, stream chunk becomes
// "<name>_dmg" clip chunk stored in "<stem>_dmg.anm".
func BuildDamagePage(src *Page, marker string) *Page {
	p := src.Clone()

	p.ChunkMaps = filterChunks(p.ChunkMaps, func(c *Chunk) bool {
		for _, d := range damageDropped {
			if strings.Contains(c.Types, d.chunkType) {
				return false
			}
		}
		return true
	})
	p.Files = filterFiles(p.Files, func(f *File) bool {
		for _, d := range damageDropped {
			if strings.Contains(f.FileName, d.ext) {
				return false
			}
		}
		return true
	})

	for i := range p.ChunkMaps {
		if strings.Contains(p.ChunkMaps[i].Types, TYPE_ANMSTRM) {
			damageChunk(&p.ChunkMaps[i])
		}
	}
	for i := range p.Files {
		f := &p.Files[i]
		if strings.Contains(f.FileName, "anmstrm") {
			f.FileName = strings.ReplaceAll(f.FileName, ".anmstrm", DAMAGE_SUFFIX+".anm")
			damageChunk(&f.Chunk)
		}
	}

	p.ChunkMaps = filterChunks(p.ChunkMaps, func(c *Chunk) bool {
		if marker != "" && strings.Contains(c.Name, marker) {
			return true
		}
		for _, t := range []string{TYPE_NULL, TYPE_ANM, TYPE_INDEX, TYPE_PAGE} {
			if strings.Contains(c.Types, t) {
				return true
			}
		}
		return false
	})
	p.ChunkReferences = filterReferences(p.ChunkReferences, func(r *ChunkReference) bool {
		return marker != "" && strings.Contains(r.Name, marker)
	})
	return p
}
