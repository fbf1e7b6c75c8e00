// Package docs loads markdown documents from a directory and turns them
// into raw chunks ready for indexing.
package docs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Mamo1031/rag-evaluator/internal/domain"
)

// LoadChunks walks dir recursively for .md files, splits each with the
// chunker, and tags every chunk with the file's base name. Files are
// processed in sorted path order so chunk ordering (and therefore tie
// breaking during retrieval) is deterministic. Invalid UTF-8 bytes in a
// source file are dropped rather than failing the load.
func LoadChunks(dir string, chunker domain.Chunker) ([]domain.RawChunk, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("docs directory not found: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("docs path is not a directory: %s", dir)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking docs directory: %w", err)
	}
	sort.Strings(paths)

	var chunks []domain.RawChunk
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		text := strings.ToValidUTF8(string(data), "")
		for _, chunk := range chunker.Split(text) {
			chunks = append(chunks, domain.RawChunk{
				Source: filepath.Base(path),
				Text:   chunk,
			})
		}
	}
	return chunks, nil
}
