package x12

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how, if at all, the input bytes are decompressed
// before delimiter detection. Interchanges are routinely transferred
// compressed; the engine itself always operates on the plain text.
type Compression uint8

const (
	// CompAuto sniffs gzip, Zstandard, LZ4 and ZIP magic bytes and falls
	// back to plain text when none match.
	CompAuto Compression = iota
	// CompNone treats the input as plain X12 text.
	CompNone
	CompGzip
	CompZSTD
	CompLZ4
	// CompBR selects Brotli, which has no magic bytes and is never sniffed.
	CompBR
	// CompZIP expects a ZIP archive containing exactly one file.
	CompZIP
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	zipMagic  = []byte{'P', 'K', 0x03, 0x04}
)

// Function variables for testing injection.
var (
	newZstdReader = func(r io.Reader) (*zstd.Decoder, error) { return zstd.NewReader(r) }
	newGzipReader = func(r io.Reader) (*gzip.Reader, error) { return gzip.NewReader(r) }
	zipOpen       = func(zf *zip.File) (io.ReadCloser, error) { return zf.Open() }
)

func sniffCompression(input []byte) Compression {
	switch {
	case bytes.HasPrefix(input, gzipMagic):
		return CompGzip
	case bytes.HasPrefix(input, zstdMagic):
		return CompZSTD
	case bytes.HasPrefix(input, lz4Magic):
		return CompLZ4
	case bytes.HasPrefix(input, zipMagic):
		return CompZIP
	default:
		return CompNone
	}
}

// decompressInput returns the plain X12 text for the configured
// compression, enforcing maxLen on the decompressed size.
func decompressInput(comp Compression, input []byte, maxLen uint64) ([]byte, error) {
	if comp == CompAuto {
		comp = sniffCompression(input)
	}
	switch comp {
	case CompNone:
		if uint64(len(input)) > maxLen {
			return nil, fmt.Errorf("%w: input of %d bytes", ErrLimitExceeded, len(input))
		}
		return input, nil
	case CompGzip:
		r, err := newGzipReader(bytes.NewReader(input))
		if err != nil {
			return nil, fmt.Errorf("%w: gzip: %v", ErrInvalidPayload, err)
		}
		defer r.Close()
		return readLimited(r, maxLen, "gzip")
	case CompZSTD:
		r, err := newZstdReader(bytes.NewReader(input))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrInvalidPayload, err)
		}
		defer r.Close()
		return readLimited(r, maxLen, "zstd")
	case CompLZ4:
		return readLimited(lz4.NewReader(bytes.NewReader(input)), maxLen, "lz4")
	case CompBR:
		return readLimited(brotli.NewReader(bytes.NewReader(input)), maxLen, "brotli")
	case CompZIP:
		return zipExtract(input, maxLen)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidPayload, comp)
	}
}

// readLimited reads everything from r while refusing to expand beyond
// maxLen bytes, guarding against decompression bombs.
func readLimited(r io.Reader, maxLen uint64, name string) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, int64(maxLen)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, name, err)
	}
	if uint64(len(b)) > maxLen {
		return nil, fmt.Errorf("%w: %s expanded beyond %d bytes", ErrLimitExceeded, name, maxLen)
	}
	return b, nil
}

// zipExtract returns the contents of the single file a ZIP-wrapped
// interchange must contain.
func zipExtract(zipBytes []byte, maxLen uint64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, fmt.Errorf("%w: zip: %v", ErrInvalidPayload, err)
	}
	if len(zr.File) != 1 {
		return nil, fmt.Errorf("%w: zip must contain exactly one entry, has %d", ErrInvalidPayload, len(zr.File))
	}
	zf := zr.File[0]
	if zf.FileInfo().IsDir() {
		return nil, fmt.Errorf("%w: zip entry must be a file", ErrInvalidPayload)
	}
	if zf.UncompressedSize64 > maxLen {
		return nil, fmt.Errorf("%w: zip entry of %d bytes", ErrLimitExceeded, zf.UncompressedSize64)
	}
	rc, err := zipOpen(zf)
	if err != nil {
		return nil, fmt.Errorf("%w: zip: %v", ErrInvalidPayload, err)
	}
	defer rc.Close()
	return readLimited(rc, maxLen, "zip")
}
