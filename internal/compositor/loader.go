package compositor

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

var ErrBadDataURL = errors.New("malformed data URL")

// Loader resolves an image reference to a decoded image.
type Loader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// LoadAll loads every distinct reference concurrently. The first failure
// cancels the rest and is returned; no partial result is produced.
func LoadAll(ctx context.Context, l Loader, refs []string) (map[string]image.Image, error) {
	var (
		mu  sync.Mutex
		out = make(map[string]image.Image, len(refs))
	)
	seen := make(map[string]bool, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	for _, ref := range refs {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		g.Go(func() error {
			img, err := l.Load(ctx, ref)
			if err != nil {
				return fmt.Errorf("load %s: %w", shortRef(ref), err)
			}
			mu.Lock()
			out[ref] = img
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// FileLoader loads images from disk or from inline data URLs. Relative paths
// are resolved against Root.
type FileLoader struct {
	Root string
}

func (l FileLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.HasPrefix(ref, "data:") {
		return DecodeDataURL(ref)
	}
	path := ref
	if !filepath.IsAbs(path) && l.Root != "" {
		path = filepath.Join(l.Root, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode decodes PNG, JPEG, GIF, WebP, BMP or TIFF data.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// DecodeDataURL decodes a base64 "data:image/...;base64," URL.
func DecodeDataURL(dataURL string) (image.Image, error) {
	data, err := DataURLBytes(dataURL)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(data))
}

// DataURLBytes returns the payload of a base64 data URL.
func DataURLBytes(dataURL string) ([]byte, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, ErrBadDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDataURL, err)
	}
	return data, nil
}

// EncodeDataURL wraps PNG bytes as a data URL.
func EncodeDataURL(pngData []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)
}

func shortRef(ref string) string {
	if strings.HasPrefix(ref, "data:") && len(ref) > 32 {
		return ref[:32] + "..."
	}
	return ref
}
