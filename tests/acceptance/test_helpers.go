package acceptance

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/kpauljoseph/pagesplit/internal/imagefile/imagefiletest"
)

// Fixture is a generated source document and the frames it was built from.
type Fixture struct {
	Name   string
	Path   string
	Frames []image.Image
}

func WriteTIFFFixture(dir, name string, order binary.ByteOrder, frames ...image.Image) (Fixture, error) {
	path := filepath.Join(dir, name)
	if err := imagefiletest.WriteFile(path, order, frames...); err != nil {
		return Fixture{}, fmt.Errorf("failed to write fixture %s: %w", name, err)
	}
	return Fixture{Name: name, Path: path, Frames: frames}, nil
}

func WritePNGFixture(dir, name string, img image.Image) (Fixture, error) {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return Fixture{}, err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return Fixture{}, fmt.Errorf("failed to write fixture %s: %w", name, err)
	}
	return Fixture{Name: name, Path: path, Frames: []image.Image{img}}, nil
}

// FileHashes maps every file name in dir to the SHA-256 of its bytes.
func FileHashes(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	hashes := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		sum := sha256.Sum256(data)
		hashes[e.Name()] = hex.EncodeToString(sum[:])
	}
	return hashes, nil
}

func SortedNames(hashes map[string]string) []string {
	names := make([]string, 0, len(hashes))
	for name := range hashes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
