package persist

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// pngColorTypeOffset is the IHDR color type byte: signature(8) + length(4) + type(4) + width(4) + height(4) + depth(1)
const pngColorTypeOffset = 25

const pngColorTypeRGBA = 6

func encodeGray(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 4, 3))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 10)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode gray png: %v", err)
	}
	return buf.Bytes()
}

func encodeGIF(t *testing.T) []byte {
	t.Helper()
	pal := color.Palette{color.Black, color.White, color.Transparent}
	frame := image.NewPaletted(image.Rect(0, 0, 2, 2), pal)
	frame.SetColorIndex(1, 1, 1)
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, &gif.GIF{Image: []*image.Paletted{frame, frame}, Delay: []int{5, 5}}); err != nil {
		t.Fatalf("Failed to encode gif: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("Failed to encode jpeg: %v", err)
	}
	return buf.Bytes()
}

// withPNGDimensions rewrites the IHDR width and height and fixes its CRC
func withPNGDimensions(t *testing.T, data []byte, width, height uint32) []byte {
	t.Helper()
	out := append([]byte(nil), data...)
	// signature(8) + length(4), then "IHDR"(4) + 13 data bytes + crc(4)
	binary.BigEndian.PutUint32(out[16:20], width)
	binary.BigEndian.PutUint32(out[20:24], height)
	binary.BigEndian.PutUint32(out[29:33], crc32.ChecksumIEEE(out[12:29]))
	return out
}

func TestNormalizePNG_AlwaysRGBA(t *testing.T) {
	tests := []struct {
		name   string
		input  func(*testing.T) []byte
		width  int
		height int
	}{
		{"opaque gray png", encodeGray, 4, 3},
		{"paletted gif", encodeGIF, 2, 2},
		{"jpeg", encodeJPEG, 8, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NormalizePNG(tt.input(t))
			if err != nil {
				t.Fatalf("NormalizePNG failed: %v", err)
			}

			if len(out) <= pngColorTypeOffset || out[pngColorTypeOffset] != pngColorTypeRGBA {
				t.Fatalf("Expected PNG color type RGBA (6), got header % x", out[:min(len(out), 32)])
			}

			img, err := png.Decode(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("Output is not a valid png: %v", err)
			}
			if _, ok := img.(*image.NRGBA); !ok {
				t.Errorf("Expected *image.NRGBA after decode, got %T", img)
			}
			if img.Bounds().Dx() != tt.width || img.Bounds().Dy() != tt.height {
				t.Errorf("Expected %dx%d, got %v", tt.width, tt.height, img.Bounds())
			}
		})
	}
}

func TestNormalizePNG_PreservesPixels(t *testing.T) {
	out, err := NormalizePNG(encodeGray(t))
	if err != nil {
		t.Fatalf("NormalizePNG failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	got := color.NRGBAModel.Convert(img.At(1, 0)).(color.NRGBA)
	want := color.NRGBA{R: 10, G: 10, B: 10, A: 255}
	if got != want {
		t.Errorf("Pixel (1,0) = %v, expected %v", got, want)
	}
}

func TestNormalizePNG_InvalidData(t *testing.T) {
	if _, err := NormalizePNG([]byte("<html>not an image</html>")); err == nil {
		t.Error("Expected decode error, got nil")
	}
}

func TestSave_Verbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emoji_1.gif")
	data := encodeGIF(t)

	if err := NewFileSaver().Save(data, path, false); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !bytes.Equal(written, data) {
		t.Error("Verbatim save should be byte-identical")
	}
}

func TestSave_Normalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sticker_1.png")

	if err := NewFileSaver().Save(encodeGray(t), path, true); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if written[pngColorTypeOffset] != pngColorTypeRGBA {
		t.Errorf("Expected RGBA png on disk, got color type %d", written[pngColorTypeOffset])
	}
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emoji_2.gif")
	saver := NewFileSaver()

	if err := saver.Save([]byte("first"), path, false); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	if err := saver.Save([]byte("second"), path, false); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	written, _ := os.ReadFile(path)
	if string(written) != "second" {
		t.Errorf("Expected overwritten content, got %q", written)
	}
}

func TestSave_Failures(t *testing.T) {
	dir := t.TempDir()

	// Decode failure leaves nothing on disk
	badPath := filepath.Join(dir, "sticker_bad.png")
	if err := NewFileSaver().Save([]byte("garbage"), badPath, true); err == nil {
		t.Error("Expected error for undecodable data")
	}
	if _, err := os.Stat(badPath); !os.IsNotExist(err) {
		t.Error("No file should be written when normalization fails")
	}

	// Missing directory
	missing := filepath.Join(dir, "missing", "emoji_1.gif")
	if err := NewFileSaver().Save([]byte("x"), missing, false); err == nil {
		t.Error("Expected error for missing directory")
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("Temp file left behind: %s", e.Name())
		}
	}
}

func TestNormalizePNG_RejectsHugeDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
	}{
		{"square", 20000, 20000},
		{"wide", MaxImagePixels + 1, 1},
		{"tall", 5000, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := withPNGDimensions(t, encodeGray(t), tt.width, tt.height)
			if _, err := NormalizePNG(data); !errors.Is(err, ErrImageTooLarge) {
				t.Errorf("Expected ErrImageTooLarge, got %v", err)
			}
		})
	}
}

func TestSave_HugeImageWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sticker_1.png")
	data := withPNGDimensions(t, encodeGray(t), 20000, 20000)

	if err := NewFileSaver().Save(data, path, true); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("Expected ErrImageTooLarge, got %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no files, got %d", len(entries))
	}
}
