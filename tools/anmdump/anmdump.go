package main

import (
	"bufio"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mogaika/anmstrm2anm/assets"
	"github.com/mogaika/anmstrm2anm/pack/anm"
	"github.com/mogaika/anmstrm2anm/pack/anmstrm"
	"github.com/mogaika/anmstrm2anm/utils"

	"github.com/pkg/errors"
)

// Dump decodes file by its extension and writes its structure to w.
// Unknown curve formats and entry kinds are kept as raw bytes.
func Dump(w io.Writer, fileName string, r io.Reader) error {
	var result interface{}
	var err error

	switch strings.ToLower(filepath.Ext(fileName)) {
	case assets.CLIP_EXT:
		result, err = anm.Decoder{Lenient: true}.Decode(r)
	case assets.STREAM_EXT:
		result, err = anmstrm.Decoder{Lenient: true}.DecodeStream(r)
	case assets.FRAME_EXT:
		result, err = anmstrm.Decoder{Lenient: true}.DecodeFrame(r)
	default:
		return errors.Errorf("Unknown file type %q", fileName)
	}
	if err != nil {
		return errors.Wrapf(err, "Failed to decode %q", fileName)
	}

	utils.Fdump(w, result)
	return nil
}

func main() {
	var out string
	flag.StringVar(&out, "out", "", "Path to dump file, stdout if empty")
	flag.Parse()

	w := io.Writer(os.Stdout)
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}

	for _, fileName := range flag.Args() {
		f, err := os.Open(fileName)
		if err != nil {
			log.Fatal(err)
		}
		err = Dump(w, fileName, bufio.NewReader(f))
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
	}
}
