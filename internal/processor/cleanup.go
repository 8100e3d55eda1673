package processor

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	variantPattern  = regexp.MustCompile(`_\d+x\d+_\d+kbps`)
	originalPattern = regexp.MustCompile(`^(.+?)_\d+x\d+_\d+kbps`)
)

// CleanupIntermediates removes the outputs of earlier iterations that sit
// next to finalPath, keeping finalPath itself. It returns the removed paths.
func CleanupIntermediates(finalPath string, logger logrus.FieldLogger) ([]string, error) {
	dir := filepath.Dir(finalPath)
	finalName := filepath.Base(finalPath)
	ext := filepath.Ext(finalName)

	match := originalPattern.FindStringSubmatch(strings.TrimSuffix(finalName, ext))
	if match == nil {
		return nil, nil
	}
	original := match[1]

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read directory %s", dir)
	}

	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == finalName {
			continue
		}
		if !strings.HasSuffix(name, ext) || !strings.HasPrefix(name, original) || !variantPattern.MatchString(name) {
			continue
		}

		path := filepath.Join(dir, name)
		logger.WithField("path", path).Info("Removing intermediate file")
		if err := os.Remove(path); err != nil {
			return removed, errors.Wrapf(err, "remove %s", path)
		}
		removed = append(removed, path)
	}
	return removed, nil
}
