// Package assets locates stream files of an extracted asset directory
// and stores converted results next to it.
package assets

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mogaika/anmstrm2anm/page"

	"github.com/pkg/errors"
)

var ErrMissingInput = errors.New("missing input")

const (
	STREAM_EXT = ".anmstrm"
	FRAME_EXT  = ".anmstrmframe"
	CLIP_EXT   = ".anm"

	DAMAGE_SUFFIX = "_dmg"
)

// Source is the set of files of one stream asset
type Source struct {
	Dir        string
	Stem       string
	StreamPath string
	// ordered by frame number
	FramePaths []string
	// empty when directory has no page
	PagePath string
}

// FrameNumber extracts N out of "<name>_<N>.anmstrmframe"
func FrameNumber(fileName string) (int, error) {
	base := strings.TrimSuffix(filepath.Base(fileName), FRAME_EXT)
	sep := strings.LastIndexByte(base, '_')
	if sep < 0 {
		return 0, errors.Errorf("Frame file %q has no frame number", fileName)
	}
	n, err := strconv.Atoi(base[sep+1:])
	if err != nil || n < 0 {
		return 0, errors.Errorf("Frame file %q has invalid frame number %q", fileName, base[sep+1:])
	}
	return n, nil
}

// Scan finds stream, frame and page files in dir
func Scan(dir string) (*Source, error) {
	fileinfos, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "[assets] Error getting directory %q info", dir)
	}

	src := &Source{Dir: dir, FramePaths: make([]string, 0)}
	numbers := make(map[string]int)

	for _, f := range fileinfos {
		if f.IsDir() {
			continue
		}
		name := f.Name()
		fullPath := filepath.Join(dir, name)
		switch {
		case strings.EqualFold(filepath.Ext(name), STREAM_EXT):
			if src.StreamPath != "" {
				log.Printf("[assets] Multiple streams in %q, ignoring %q", dir, name)
				continue
			}
			src.StreamPath = fullPath
			src.Stem = strings.TrimSuffix(name, filepath.Ext(name))
		case strings.EqualFold(filepath.Ext(name), FRAME_EXT):
			n, err := FrameNumber(name)
			if err != nil {
				return nil, errors.Wrapf(err, "[assets]")
			}
			numbers[fullPath] = n
			src.FramePaths = append(src.FramePaths, fullPath)
		case name == page.FILE_NAME:
			src.PagePath = fullPath
		}
	}

	if src.StreamPath == "" {
		return nil, errors.Wrapf(ErrMissingInput, "no %s file in %q", STREAM_EXT, dir)
	}
	if len(src.FramePaths) == 0 {
		return nil, errors.Wrapf(ErrMissingInput, "no %s files in %q", FRAME_EXT, dir)
	}

	sort.SliceStable(src.FramePaths, func(i, j int) bool {
		return numbers[src.FramePaths[i]] < numbers[src.FramePaths[j]]
	})
	return src, nil
}

func (s *Source) ClipFileName() string {
	return s.Stem + CLIP_EXT
}

func (s *Source) DamageClipFileName() string {
	return s.Stem + DAMAGE_SUFFIX + CLIP_EXT
}
