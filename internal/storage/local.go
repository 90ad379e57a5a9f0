package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// ReadLocal loads every path in order. Directories contribute their regular
// files, sorted by name, without descending into subdirectories. A path that
// cannot be stat'ed or listed becomes a blob with Err set, like an unreadable
// file, so one bad argument does not hide the rest of the batch.
func ReadLocal(paths []string) []Blob {
	var out []Blob
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			out = append(out, failedBlob(p, err))
			continue
		}
		if !info.IsDir() {
			out = append(out, readFile(p))
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			out = append(out, failedBlob(p, fmt.Errorf("listing %s: %w", p, err)))
			continue
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
		for _, e := range entries {
			if !e.Type().IsRegular() {
				continue
			}
			out = append(out, readFile(filepath.Join(p, e.Name())))
		}
	}
	return out
}

// failedBlob keeps the path as given so the failure names what was typed.
func failedBlob(path string, err error) Blob {
	return Blob{Name: path, ContentType: contentTypeFor(path), Err: err}
}

func readFile(path string) Blob {
	b := Blob{Name: filepath.Base(path), ContentType: contentTypeFor(path)}

	f, err := os.Open(path)
	if err != nil {
		b.Err = err
		return b
	}
	defer f.Close()

	b.Data, b.Err = readLimited(f)
	return b
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBlobSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxBlobSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
