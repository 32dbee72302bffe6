package persist

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	// Decoders for formats the CDN may serve
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/ytget/discord-media-downloader/internal/platform"
)

// MaxImagePixels caps the decoded size of a normalized image
const MaxImagePixels = 4096 * 4096

// ErrImageTooLarge is returned for images whose dimensions exceed MaxImagePixels
var ErrImageTooLarge = errors.New("image dimensions too large")

// Saver persists media bytes
type Saver interface {
	Save(data []byte, path string, normalize bool) error
}

// FileSaver writes media to the local filesystem
type FileSaver struct{}

// NewFileSaver creates a new file saver
func NewFileSaver() *FileSaver {
	return &FileSaver{}
}

// Save writes data to path. With normalize the data is decoded, converted
// to non-premultiplied RGBA and re-encoded as PNG; otherwise it is written
// unchanged. The file is replaced atomically.
func (s *FileSaver) Save(data []byte, path string, normalize bool) error {
	if normalize {
		out, err := NormalizePNG(data)
		if err != nil {
			return err
		}
		data = out
	}
	return writeFileAtomic(path, data)
}

// NormalizePNG decodes any supported raster image and encodes it as a PNG
// whose color type always carries an alpha channel.
func NormalizePNG(data []byte) ([]byte, error) {
	// Check the header before allocating pixel buffers
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image header: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, fmt.Errorf("%s %dx%d: %w", format, cfg.Width, cfg.Height, ErrImageTooLarge)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, alphaImage{dst}); err != nil {
		return nil, fmt.Errorf("encoding %s as png: %w", format, err)
	}
	return buf.Bytes(), nil
}

// alphaImage hides NRGBA's pixel scan so the encoder keeps the alpha channel
// even when every pixel is opaque.
type alphaImage struct {
	*image.NRGBA
}

// Opaque implements the png encoder's opaquer check
func (alphaImage) Opaque() bool { return false }

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, platform.DefaultFilePermissions); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
