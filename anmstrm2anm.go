package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/mogaika/anmstrm2anm/assets"
	"github.com/mogaika/anmstrm2anm/config"
	"github.com/mogaika/anmstrm2anm/convert"
	"github.com/mogaika/anmstrm2anm/page"
	"github.com/mogaika/anmstrm2anm/status"
	"github.com/mogaika/anmstrm2anm/utils"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

const LOG_FILE_NAME = "anmstrm2anm.log"

// convertDirectory converts stream asset in dir and returns path of
// created output directory
func convertDirectory(dir string, settings config.Settings, r status.Reporter) (string, error) {
	src, err := assets.Scan(dir)
	if err != nil {
		return "", err
	}
	status.Info(r, "Found %s with %d frames", filepath.Base(src.StreamPath), len(src.FramePaths))

	loader := &assets.Loader{Workers: settings.Workers, Reporter: r}
	stream, err := loader.LoadStream(src.StreamPath)
	if err != nil {
		return "", err
	}
	if settings.Debug {
		utils.LogDump("[anmstrm2anm] stream header", stream.Header())
	}
	if len(stream.Frames) != len(src.FramePaths) {
		log.Printf("[anmstrm2anm] Stream lists %d frames, directory has %d", len(stream.Frames), len(src.FramePaths))
	}

	frames, err := loader.LoadFrames(src.FramePaths)
	if err != nil {
		return "", err
	}

	clip, dmg, err := convert.NewConverter(settings, r).Convert(stream, frames)
	if err != nil {
		return "", err
	}

	files := make([]assets.OutputFile, 0, 4)
	for _, out := range []struct {
		name string
		clip interface{ Marshal() ([]byte, error) }
	}{
		{src.ClipFileName(), clip},
		{src.DamageClipFileName(), dmg},
	} {
		data, err := out.clip.Marshal()
		if err != nil {
			return "", errors.Wrapf(err, "Failed to encode %q", out.name)
		}
		files = append(files, assets.OutputFile{Name: out.name, Data: data})
	}

	if src.PagePath != "" {
		p, err := page.Load(src.PagePath)
		if err != nil {
			return "", err
		}
		for _, out := range []struct {
			name string
			page *page.Page
		}{
			{page.FILE_NAME, page.BuildClipPage(p, settings.DamageMarker)},
			{page.DAMAGE_FILE_NAME, page.BuildDamagePage(p, settings.DamageMarker)},
		} {
			data, err := out.page.Marshal()
			if err != nil {
				return "", err
			}
			files = append(files, assets.OutputFile{Name: out.name, Data: data})
		}
	} else {
		log.Printf("[anmstrm2anm] No %s in %q, pages are not generated", page.FILE_NAME, dir)
	}

	outDir := assets.OutputDir(dir, settings.OutputSuffix)
	if err := assets.WriteOutput(outDir, files); err != nil {
		return "", err
	}
	return outDir, nil
}

// run converts dir, mirroring log into rotated LOG_FILE_NAME next to it.
// Log file is closed and log output restored before return.
func run(dir string, settings config.Settings) error {
	logFile := &lumberjack.Logger{
		Filename:   filepath.Join(filepath.Dir(filepath.Clean(dir)), LOG_FILE_NAME),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, logFile))
	defer func() {
		log.SetOutput(os.Stderr)
		logFile.Close()
	}()

	outDir, err := convertDirectory(dir, settings, status.NewLogReporter(nil))
	if err != nil {
		log.Printf("[anmstrm2anm] %v", err)
		return err
	}
	log.Printf("[anmstrm2anm] Done: %s", outDir)
	return nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s <extracted anmstrm directory>\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "Settings are read from %s in working directory\n", config.SETTINGS_FILE_NAME)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	dir := flag.Arg(0)

	settings, err := config.LoadSettings(config.SETTINGS_FILE_NAME)
	if err != nil {
		log.Fatal(err)
	}
	if err := settings.Apply(); err != nil {
		log.Fatal(err)
	}

	if err := run(dir, settings); err != nil {
		os.Exit(1)
	}
}
