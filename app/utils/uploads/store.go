package uploads

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

var (
	ErrUnsupportedType = errors.New("Only Images allowed")
	ErrTooLarge        = errors.New("File too large")
)

var allowedTypes = []string{"image/png", "image/jpeg"}

// Store keeps uploaded images on local disk below root.
type Store struct {
	root     string
	maxBytes int64
	maxWidth uint
}

func NewStore(root string, maxBytes int64, maxWidth uint) *Store {
	return &Store{root: root, maxBytes: maxBytes, maxWidth: maxWidth}
}

func (s *Store) Root() string {
	return s.root
}

// Save validates, downsizes and re-encodes one image as JPEG. It returns the
// stored file name; the file lives at <root>/<dir>/<name>.
func (s *Store) Save(dir, prefix string, fh *multipart.FileHeader) (string, error) {
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return "", ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	if s.maxBytes > 0 {
		src = io.LimitReader(f, s.maxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}
	if !allowed(mimetype.Detect(data)) {
		return "", ErrUnsupportedType
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrUnsupportedType
	}
	if s.maxWidth > 0 && uint(img.Bounds().Dx()) > s.maxWidth {
		img = resize.Resize(s.maxWidth, 0, img, resize.Lanczos3)
	}

	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.jpeg", prefix, uuid.New().String())
	path := filepath.Join(s.root, dir, name)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	err = encodeJPEG(out, img)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := os.Remove(path); rerr != nil {
			slog.Error("Save: failed to remove partial upload", "path", path, "error", rerr)
		}
		return "", fmt.Errorf("encode upload: %w", err)
	}
	return name, nil
}

var encodeJPEG = func(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
}

func allowed(mt *mimetype.MIME) bool {
	for _, t := range allowedTypes {
		if mt.Is(t) {
			return true
		}
	}
	return false
}

// Remove deletes files given relative to root. Failures are logged only.
func (s *Store) Remove(paths []string) {
	for _, p := range paths {
		clean := filepath.Clean("/" + p)
		if strings.Contains(p, "..") || clean == "/" {
			slog.Warn("Remove: refusing suspicious upload path", "path", p)
			continue
		}
		if err := os.Remove(filepath.Join(s.root, clean)); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Error("Remove: failed to delete upload", "path", p, "error", err)
		}
	}
}
