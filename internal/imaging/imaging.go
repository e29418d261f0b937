// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package imaging reads dimensions, format and resolution metadata from
// encoded images without fully decoding the pixel data.
package imaging

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"math"
	"strings"

	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Info describes an encoded image. DPI is nil when the file carries no
// resolution metadata.
type Info struct {
	Width  int
	Height int
	Format string // upper-case format name, e.g. "PNG"
	DPI    []int  // [x, y] dots per inch
}

// Size returns the dimensions formatted as "WxH".
func (i *Info) Size() string {
	return fmt.Sprintf("%dx%d", i.Width, i.Height)
}

// Decode reads the image header and returns its metadata.
func Decode(data []byte) (*Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	info := &Info{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: strings.ToUpper(format),
	}

	switch format {
	case "png":
		info.DPI = pngDPI(data)
	case "jpeg":
		info.DPI = jpegDPI(data)
	}

	return info, nil
}

// pngDPI reads the pHYs chunk. Resolution is stored as pixels per metre.
func pngDPI(data []byte) []int {
	const sigLen = 8
	pos := sigLen
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		ctype := string(data[pos+4 : pos+8])
		body := pos + 8
		if ctype == "pHYs" && length == 9 && body+9 <= len(data) {
			if data[body+8] != 1 { // unit must be metre
				return nil
			}
			ppmX := binary.BigEndian.Uint32(data[body : body+4])
			ppmY := binary.BigEndian.Uint32(data[body+4 : body+8])
			return []int{
				int(math.Round(float64(ppmX) * 0.0254)),
				int(math.Round(float64(ppmY) * 0.0254)),
			}
		}
		if ctype == "IDAT" || ctype == "IEND" {
			return nil
		}
		pos = body + length + 4 // skip body and CRC
	}
	return nil
}

// jpegDPI reads the density fields of the JFIF APP0 segment.
func jpegDPI(data []byte) []int {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil
	}
	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != 0xFF {
			return nil
		}
		marker := data[pos+1]
		if marker == 0xD9 || marker == 0xDA { // EOI or start of scan
			return nil
		}
		length := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		if marker == 0xE0 && length >= 14 && pos+4+length-2 <= len(data) {
			seg := data[pos+4 : pos+2+length]
			if bytes.HasPrefix(seg, []byte("JFIF\x00")) {
				units := seg[7]
				x := int(binary.BigEndian.Uint16(seg[8:10]))
				y := int(binary.BigEndian.Uint16(seg[10:12]))
				switch units {
				case 1: // dots per inch
					return []int{x, y}
				case 2: // dots per centimetre
					return []int{
						int(math.Round(float64(x) * 2.54)),
						int(math.Round(float64(y) * 2.54)),
					}
				}
				return nil
			}
		}
		pos += 2 + length
	}
	return nil
}
