package assets

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/mogaika/anmstrm2anm/pack/anmstrm"
	"github.com/mogaika/anmstrm2anm/status"
	"github.com/mogaika/anmstrm2anm/utils"

	"github.com/pkg/errors"
)

// Loader decodes stream files, frames are decoded in parallel
type Loader struct {
	Workers  int
	Reporter status.Reporter
	Decoder  anmstrm.Decoder
}

func (l *Loader) LoadStream(path string) (*anmstrm.Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[assets] Error opening stream")
	}
	defer f.Close()

	s, err := l.Decoder.DecodeStream(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "[assets] %q", filepath.Base(path))
	}
	return s, nil
}

func (l *Loader) loadFrame(path string) (*anmstrm.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[assets] Error opening frame")
	}
	defer f.Close()

	frame, err := l.Decoder.DecodeFrame(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "[assets] %q", filepath.Base(path))
	}
	return frame, nil
}

// LoadFrames decodes frame files keeping order of paths
func (l *Loader) LoadFrames(paths []string) ([]*anmstrm.Frame, error) {
	frames := make([]*anmstrm.Frame, len(paths))
	counter := status.NewCounter(l.Reporter, "frames", len(paths))

	err := utils.ParallelFor(l.Workers, len(paths), func(i int) error {
		defer counter.Step()
		var err error
		frames[i], err = l.loadFrame(paths[i])
		return err
	})
	if err != nil {
		return nil, err
	}
	return frames, nil
}
