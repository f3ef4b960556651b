package assets

import (
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type OutputFile struct {
	Name string
	Data []byte
}

// OutputDir returns sibling directory of dir named with suffix
func OutputDir(dir string, suffix string) string {
	return filepath.Clean(dir) + suffix
}

// WriteOutput creates dir and stores files inside. Existing dir is an
// error. If anything fails, the created directory is removed.
func WriteOutput(dir string, files []OutputFile) (err error) {
	if _, err := os.Stat(dir); err == nil {
		return errors.Errorf("[assets] Output directory %q already exists", dir)
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "[assets] Error checking output directory")
	}

	if err := os.MkdirAll(dir, 0777); err != nil {
		return errors.Wrapf(err, "[assets] Error creating output directory")
	}
	defer func() {
		if err != nil {
			if rerr := os.RemoveAll(dir); rerr != nil {
				log.Printf("[assets] Error removing %q: %v", dir, rerr)
			}
		}
	}()

	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0666); err != nil {
			return errors.Wrapf(err, "[assets] Error writing %q", f.Name)
		}
	}
	return nil
}
