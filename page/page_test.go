package page

import (
	"testing"

	"github.com/mogaika/anmstrm2anm/config"
	"github.com/mogaika/anmstrm2anm/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `{
  "Chunk Maps": [
    {"Name": "", "Type": "nuccChunkNull", "Path": ""},
    {"Name": "page0", "Type": "nuccChunkPage", "Path": ""},
    {"Name": "index", "Type": "nuccChunkIndex", "Path": ""},
    {"Name": "1spl01", "Type": "nuccChunkAnmStrm", "Path": "c/1spl/max/1spl01.max"},
    {"Name": "frame0", "Type": "nuccChunkAnmStrmFrame", "Path": "c/1spl/max/1spl01.max"},
    {"Name": "1splbod1", "Type": "nuccChunkClump", "Path": "c/1spl/max/1splbod1.max"},
    {"Name": "1cmnbod1", "Type": "nuccChunkClump", "Path": "c/1cmn/max/1cmnbod1.max"},
    {"Name": "morph", "Type": "nuccChunkMorphModel", "Path": "c/1spl/max/1splbod1.max"},
    {"Name": "camera01", "Type": "nuccChunkCamera", "Path": "c/1spl/max/1spl01.max"},
    {"Name": "sun", "Type": "nuccChunkLightDirc", "Path": "c/1spl/max/1spl01.max"},
    {"Name": "layers", "Type": "nuccChunkLayerSet", "Path": "c/1spl/max/1spl01.max"}
  ],
  "Chunk References": [
    {"Name": "1splbod1", "Chunk": {"Name": "1splbod1", "Type": "nuccChunkClump", "Path": "c/1spl/max/1splbod1.max"}},
    {"Name": "1cmnbod1", "Chunk": {"Name": "1cmnbod1", "Type": "nuccChunkClump", "Path": "c/1cmn/max/1cmnbod1.max"}}
  ],
  "Chunks": [
    {"File Name": "1spl01.anmstrm", "Chunk": {"Name": "1spl01", "Type": "nuccChunkAnmStrm", "Path": "c/1spl/max/1spl01.max"}},
    {"File Name": "1spl01_0.anmstrmframe", "Chunk": {"Name": "frame0", "Type": "nuccChunkAnmStrmFrame", "Path": "c/1spl/max/1spl01.max"}},
    {"File Name": "body.morphmodel", "Chunk": {"Name": "morph", "Type": "nuccChunkMorphModel", "Path": "c/1spl/max/1splbod1.max"}},
    {"File Name": "camera01.camera", "Chunk": {"Name": "camera01", "Type": "nuccChunkCamera", "Path": "c/1spl/max/1spl01.max"}}
  ]
}`

func loadSample(t *testing.T) *Page {
	p, err := Decode([]byte(samplePage))
	require.NoError(t, err)
	return p
}

func chunkNames(chunks []Chunk) []string {
	names := make([]string, len(chunks))
	for i, c := range chunks {
		names[i] = c.Name
	}
	return names
}

func TestClipPage(t *testing.T) {
	src := loadSample(t)
	p := BuildClipPage(src, "1cmn")

	assert.Equal(t, []string{"", "page0", "index", "1spl01", "1splbod1", "camera01", "sun", "layers"}, chunkNames(p.ChunkMaps))
	assert.Equal(t, TYPE_ANM, p.ChunkMaps[3].Types)
	assert.Equal(t, "c/1spl/max/1spl01.max", p.ChunkMaps[3].Path)

	require.Len(t, p.ChunkReferences, 1)
	assert.Equal(t, "1splbod1", p.ChunkReferences[0].Name)

	require.Len(t, p.Files, 2)
	assert.Equal(t, "1spl01.anm", p.Files[0].FileName)
	assert.Equal(t, TYPE_ANM, p.Files[0].Chunk.Types)
	assert.Equal(t, "camera01.camera", p.Files[1].FileName)

	// source page is left as is
	assert.Equal(t, loadSample(t), src)
}

func TestDamagePage(t *testing.T) {
	p := BuildDamagePage(loadSample(t), "1cmn")

	assert.Equal(t, []string{"", "page0", "index", "1spl01_dmg", "1cmnbod1"}, chunkNames(p.ChunkMaps))
	assert.Equal(t, Chunk{Name: "1spl01_dmg", Types: TYPE_ANM, Path: "c/1spl/max/1spl01_dmg.max"}, p.ChunkMaps[3])

	require.Len(t, p.ChunkReferences, 1)
	assert.Equal(t, "1cmnbod1", p.ChunkReferences[0].Name)

	require.Len(t, p.Files, 1)
	assert.Equal(t, File{
		FileName: "1spl01_dmg.anm",
		Chunk:    Chunk{Name: "1spl01_dmg", Types: TYPE_ANM, Path: "c/1spl/max/1spl01_dmg.max"},
	}, p.Files[0])
}

func TestMarshalIndented(t *testing.T) {
	p := &Page{
		ChunkMaps:       []Chunk{{Name: "a&b", Types: TYPE_NULL}},
		ChunkReferences: []ChunkReference{},
		Files:           []File{},
	}
	data, err := p.Marshal()
	require.NoError(t, err)
	assert.Equal(t, `{
  "Chunk Maps": [
    {
      "Name": "a&b",
      "Type": "nuccChunkNull",
      "Path": ""
    }
  ],
  "Chunk References": [],
  "Chunks": []
}`, string(data))

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestDecodeLegacyEncoding(t *testing.T) {
	require.NoError(t, config.SetEncoding("Windows 1252"))

	// "Caf\xe9" is not utf-8
	data := []byte(`{"Chunk Maps": [{"Name": "Caf` + "\xe9" + `", "Type": "nuccChunkNull", "Path": ""}]}`)
	p, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "Café", p.ChunkMaps[0].Name)
	assert.NotNil(t, p.ChunkReferences)
	assert.NotNil(t, p.Files)
}

func TestDecodeBrokenJson(t *testing.T) {
	_, err := Decode([]byte(`{"Chunk Maps": [`))
	assert.Error(t, err)
}

func TestPagesWithoutMarker(t *testing.T) {
	var names utils.RandomNameGenerator
	src := &Page{ChunkReferences: []ChunkReference{}, Files: []File{}}
	for i := 0; i < 20; i++ {
		src.ChunkMaps = append(src.ChunkMaps, Chunk{Name: names.RandomName(), Types: "nuccChunkClump"})
	}

	// no marker: clip page keeps every clump, damage page none of them
	assert.Equal(t, src.ChunkMaps, BuildClipPage(src, "").ChunkMaps)
	assert.Empty(t, BuildDamagePage(src, "").ChunkMaps)
}
