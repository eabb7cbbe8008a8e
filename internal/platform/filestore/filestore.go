// Package filestore implements the on-disk blob store for uploaded
// listing images: unique naming, an extension allow-list, and a
// best-effort bounding-box resize after write.
package filestore

import (
	"fmt"
	"image"
	_ "image/gif" // register decoder for image.Decode
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ecofinds/ecofinds-api/internal/store"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// jpegQuality is the re-encode quality applied when a JPEG is resized.
const jpegQuality = 85

// allowedExtensions is the fixed allow-list of image file extensions.
// Files with any other extension are skipped by callers, not errored.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// FileStore persists uploaded images under a single directory.
type FileStore struct {
	dir       string
	maxWidth  int
	maxHeight int
	logger    *slog.Logger
}

// New creates a FileStore rooted at dir, creating the directory if it
// does not exist. maxWidth and maxHeight define the bounding box
// stored images are resized to fit within.
// If logger is nil, a default logger will be used.
func New(dir string, maxWidth, maxHeight int, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	return &FileStore{
		dir:       dir,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		logger:    logger.With(slog.String("component", "filestore")),
	}, nil
}

// Allowed reports whether the filename carries one of the accepted
// image extensions.
func Allowed(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// Store persists the reader's bytes under a globally unique name
// derived from the sanitized original filename and returns that name.
// After the write it applies the bounding-box resize best-effort: a
// resize failure is logged and swallowed, the stored bytes stay as
// uploaded and the name is still returned.
func (fs *FileStore) Store(originalName string, r io.Reader) (string, error) {
	storedName := uuid.New().String() + "_" + sanitizeFilename(originalName)
	path := filepath.Join(fs.dir, storedName)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	if err := fs.resizeInPlace(path); err != nil {
		fs.logger.Warn("image resize failed, keeping original",
			slog.String("file", storedName),
			slog.String("error", err.Error()))
	}

	return storedName, nil
}

// Path resolves a stored name to its absolute path, rejecting names
// that would escape the upload directory. Returns store.ErrFileNotFound
// if no such file exists.
func (fs *FileStore) Path(storedName string) (string, error) {
	if storedName == "" || storedName == "." || storedName == ".." ||
		storedName != filepath.Base(storedName) {
		return "", store.ErrFileNotFound
	}

	path := filepath.Join(fs.dir, storedName)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", store.ErrFileNotFound
		}
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", store.ErrFileNotFound
	}

	return path, nil
}

// resizeInPlace decodes the stored image and, when it exceeds the
// bounding box, rewrites it scaled down with the aspect ratio
// preserved. Formats without an encoder (gif animations, webp) are
// left untouched.
func (fs *FileStore) resizeInPlace(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	src, _, err := image.Decode(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	bounds := src.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), fs.maxWidth, fs.maxHeight)
	if width == bounds.Dx() && height == bounds.Dy() {
		return nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	out, err := os.Create(path)
	if err != nil {
		return err
	}

	switch ext {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(out, dst, &jpeg.Options{Quality: jpegQuality})
	case ".png":
		err = png.Encode(out, dst)
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}

// fitWithin scales (width, height) down to fit inside (maxW, maxH)
// preserving aspect ratio. Images already inside the box keep their
// dimensions; nothing is ever scaled up.
func fitWithin(width, height, maxW, maxH int) (int, int) {
	if width <= maxW && height <= maxH {
		return width, height
	}

	ratioW := float64(maxW) / float64(width)
	ratioH := float64(maxH) / float64(height)
	ratio := ratioW
	if ratioH < ratio {
		ratio = ratioH
	}

	scaledW := int(float64(width) * ratio)
	scaledH := int(float64(height) * ratio)
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}
	return scaledW, scaledH
}

// sanitizeFilename strips path separators and shell-hostile characters
// from a client-supplied filename, keeping letters, digits, dots,
// dashes and underscores.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
