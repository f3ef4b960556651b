// Package page handles the "_page.json" chunk list stored next to
// every extracted xfbin asset.
package page

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/mogaika/anmstrm2anm/utils"

	"github.com/pkg/errors"
)

const (
	FILE_NAME        = "_page.json"
	DAMAGE_FILE_NAME = "_page_dmg.json"
)

type Chunk struct {
	Name  string `json:"Name"`
	Types string `json:"Type"`
	Path  string `json:"Path"`
}

type ChunkReference struct {
	Name  string `json:"Name"`
	Chunk Chunk  `json:"Chunk"`
}

type File struct {
	FileName string `json:"File Name"`
	Chunk    Chunk  `json:"Chunk"`
}

type Page struct {
	ChunkMaps       []Chunk          `json:"Chunk Maps"`
	ChunkReferences []ChunkReference `json:"Chunk References"`
	Files           []File           `json:"Chunks"`
}

// Decode parses page json. Text that is not valid utf-8 is
// transcoded using configured charmap first.
func Decode(data []byte) (*Page, error) {
	text, err := utils.DecodeText(data)
	if err != nil {
		return nil, err
	}

	var p Page
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, errors.Wrapf(err, "[page] Failed to parse page")
	}
	if p.ChunkMaps == nil {
		p.ChunkMaps = []Chunk{}
	}
	if p.ChunkReferences == nil {
		p.ChunkReferences = []ChunkReference{}
	}
	if p.Files == nil {
		p.Files = []File{}
	}
	return &p, nil
}

func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[page] Failed to read %q", path)
	}
	p, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "[page] %q", path)
	}
	return p, nil
}

// Marshal returns 2 space indented json
func (p *Page) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, errors.Wrapf(err, "[page] Failed to encode page")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (p *Page) Clone() *Page {
	return &Page{
		ChunkMaps:       append([]Chunk{}, p.ChunkMaps...),
		ChunkReferences: append([]ChunkReference{}, p.ChunkReferences...),
		Files:           append([]File{}, p.Files...),
	}
}
