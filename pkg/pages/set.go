package pages

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed assets
var assets embed.FS

// Asset file names, both inside the embedded assets and in an override dir.
const (
	RootFile     = "root.html"
	GalleryFile  = "many_photos.html"
	NotFoundFile = "not_found.html"
	FaviconFile  = "favicon.ico"
	PhotoFile    = "photo.jpg"
)

// Set is one complete, immutable collection of page templates and
// binary resources.
type Set struct {
	Root     string
	Gallery  string
	NotFound string
	Favicon  []byte
	Photo    []byte
}

// DefaultSet returns the embedded pages.
func DefaultSet() *Set {
	s, err := loadFS(assets, "assets", nil)
	if err != nil {
		// The embedded files are part of the binary.
		panic(fmt.Sprintf("pages: embedded assets: %v", err))
	}
	return s
}

// LoadSet returns the embedded pages with every asset file found in dir
// taking precedence. Missing files fall back to the embedded version.
func LoadSet(dir string) (*Set, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open pages dir %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("pages dir %q is not a directory", dir)
	}
	return loadFS(os.DirFS(dir), ".", DefaultSet())
}

func loadFS(fsys fs.FS, root string, fallback *Set) (*Set, error) {
	s := &Set{}
	if fallback != nil {
		*s = *fallback
	}

	read := func(name string) ([]byte, bool, error) {
		data, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(root, name)))
		if errors.Is(err, fs.ErrNotExist) && fallback != nil {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("failed to read %s: %w", name, err)
		}
		return data, true, nil
	}

	for _, f := range []struct {
		name string
		text *string
		bin  *[]byte
	}{
		{RootFile, &s.Root, nil},
		{GalleryFile, &s.Gallery, nil},
		{NotFoundFile, &s.NotFound, nil},
		{FaviconFile, nil, &s.Favicon},
		{PhotoFile, nil, &s.Photo},
	} {
		data, ok, err := read(f.name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if f.text != nil {
			*f.text = string(data)
		} else {
			*f.bin = data
		}
	}
	return s, nil
}
