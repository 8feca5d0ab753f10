package corpus

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/lexiclass/lexiclass/pkg/classifier"
)

// LoadDir walks a directory-per-label corpus and returns its labeled
// documents. The layout is root/<label>/<doc>.txt: every immediate
// subdirectory names a label, and every regular file beneath it is one
// training document. Files directly under root and hidden files are
// skipped.
func LoadDir(root string) ([]classifier.Sample, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus directory: %w", err)
	}

	var samples []classifier.Sample
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		label := entry.Name()
		labelDir := filepath.Join(root, label)

		err := filepath.WalkDir(labelDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read document %s: %w", path, err)
			}
			samples = append(samples, classifier.Sample{
				Text:  string(data),
				Label: label,
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("no documents found under %s", root)
	}
	return samples, nil
}

// LoadTSV reads a labeled corpus from a tab-separated file, one
// document per line:
//
//	label<TAB>text
//
// Blank lines and lines starting with # are skipped.
func LoadTSV(path string) ([]classifier.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer file.Close()

	var samples []classifier.Sample
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		label, text, found := strings.Cut(line, "\t")
		if !found || label == "" {
			return nil, fmt.Errorf("malformed corpus line %d: want label<TAB>text", lineNum)
		}
		samples = append(samples, classifier.Sample{
			Text:  text,
			Label: label,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("no documents found in %s", path)
	}
	return samples, nil
}
