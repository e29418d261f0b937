// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package imaging_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"codeberg.org/oliverandrich/imagetext/internal/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

// withPHYs splices a pHYs chunk carrying the given pixels-per-metre
// resolution into an encoded PNG, directly after the IHDR chunk.
func withPHYs(t *testing.T, data []byte, ppm uint32) []byte {
	t.Helper()
	const ihdrEnd = 8 + 25 // signature + IHDR chunk

	chunk := make([]byte, 0, 21)
	chunk = binary.BigEndian.AppendUint32(chunk, 9)
	chunk = append(chunk, []byte("pHYs")...)
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = append(chunk, 1) // unit: metre
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:ihdrEnd]...)
	out = append(out, chunk...)
	out = append(out, data[ihdrEnd:]...)
	return out
}

func TestDecode_PNG(t *testing.T) {
	info, err := imaging.Decode(encodePNG(t, 10, 6))

	require.NoError(t, err)
	assert.Equal(t, 10, info.Width)
	assert.Equal(t, 6, info.Height)
	assert.Equal(t, "PNG", info.Format)
	assert.Equal(t, "10x6", info.Size())
	assert.Nil(t, info.DPI)
}

func TestDecode_PNGWithDPI(t *testing.T) {
	// 11811 pixels per metre is 300 DPI
	data := withPHYs(t, encodePNG(t, 4, 4), 11811)

	info, err := imaging.Decode(data)

	require.NoError(t, err)
	assert.Equal(t, []int{300, 300}, info.DPI)
}

func TestDecode_JPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil))

	info, err := imaging.Decode(buf.Bytes())

	require.NoError(t, err)
	assert.Equal(t, "JPEG", info.Format)
	assert.Equal(t, 8, info.Width)
}

func TestDecode_JPEGWithJFIFDensity(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil))
	encoded := buf.Bytes()

	// Splice a JFIF APP0 segment with 300x300 dpi after SOI.
	app0 := []byte{
		0xFF, 0xE0, 0x00, 0x10,
		'J', 'F', 'I', 'F', 0x00,
		0x01, 0x01, // version
		0x01,       // units: dots per inch
		0x01, 0x2C, // x density: 300
		0x01, 0x2C, // y density: 300
		0x00, 0x00, // no thumbnail
	}
	data := append([]byte{0xFF, 0xD8}, app0...)
	data = append(data, encoded[2:]...)

	info, err := imaging.Decode(data)

	require.NoError(t, err)
	assert.Equal(t, []int{300, 300}, info.DPI)
}

func TestDecode_BMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))))

	info, err := imaging.Decode(buf.Bytes())

	require.NoError(t, err)
	assert.Equal(t, "BMP", info.Format)
	assert.Equal(t, "3x2", info.Size())
}

func TestDecode_Garbage(t *testing.T) {
	_, err := imaging.Decode([]byte("definitely not an image"))
	assert.Error(t, err)
}
