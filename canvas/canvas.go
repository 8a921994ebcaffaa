// Package canvas stores rendered images and serializes them.
package canvas

import (
	"bufio"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strconv"

	"row-major/phong/rgb"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	maxColor = 255

	// PPM readers are only required to accept lines this long.
	ppmLineLimit = 70

	dataLayoutVersion = 1
)

// Canvas is a Width x Height grid of colors, stored row-major with row 0 at
// the top.
type Canvas struct {
	Width, Height int
	Pixels        []rgb.T
}

func New(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		Pixels: make([]rgb.T, width*height),
	}
}

func (c *Canvas) PixelAt(x, y int) rgb.T {
	return c.Pixels[y*c.Width+x]
}

// WritePixel sets the pixel at (x, y).  Writes outside the canvas are
// dropped.
func (c *Canvas) WritePixel(x, y int, col rgb.T) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	c.Pixels[y*c.Width+x] = col
}

// Cut copies out rows [rowSrc, rowLim) as a new canvas.
func (c *Canvas) Cut(rowSrc, rowLim int) *Canvas {
	dst := New(c.Width, rowLim-rowSrc)
	copy(dst.Pixels, c.Pixels[rowSrc*c.Width:rowLim*c.Width])
	return dst
}

// Paste copies src over c, with src's first row landing on rowSrc.  src must
// be as wide as c.
func (c *Canvas) Paste(src *Canvas, rowSrc int) {
	copy(c.Pixels[rowSrc*c.Width:], src.Pixels)
}

func channel(f float64) int {
	v := maxColor * f
	if v < 0 {
		return 0
	}
	if v > maxColor {
		return maxColor
	}
	return int(v)
}

// WritePPM writes c as a plain (P3) PPM.  Channels are scaled to [0, 255],
// clamped and truncated, and no line exceeds 70 characters.
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n%d\n", c.Width, c.Height, maxColor); err != nil {
		return fmt.Errorf("while writing header: %w", err)
	}

	line := make([]byte, 0, ppmLineLimit)
	for y := 0; y < c.Height; y++ {
		line = line[:0]
		for x := 0; x < c.Width; x++ {
			p := c.PixelAt(x, y)
			for _, f := range p {
				tok := strconv.Itoa(channel(f))
				if len(line) > 0 && len(line)+1+len(tok) > ppmLineLimit {
					line = append(line, '\n')
					if _, err := bw.Write(line); err != nil {
						return fmt.Errorf("while writing row %d: %w", y, err)
					}
					line = line[:0]
				}
				if len(line) > 0 {
					line = append(line, ' ')
				}
				line = append(line, tok...)
			}
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("while writing row %d: %w", y, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while flushing: %w", err)
	}
	return nil
}

// Image converts c to an 8-bit image, quantizing the same way WritePPM does.
func (c *Canvas) Image() *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			p := c.PixelAt(x, y)
			im.SetNRGBA(x, y, color.NRGBA{
				R: uint8(channel(p[0])),
				G: uint8(channel(p[1])),
				B: uint8(channel(p[2])),
				A: 0xff,
			})
		}
	}
	return im
}

func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("while encoding png: %w", err)
	}
	return nil
}

// ReadCanvas reads a canvas in the lossless format written by WriteCanvas.
func ReadCanvas(in io.Reader) (*Canvas, error) {
	var headerLength uint64
	if err := binary.Read(in, binary.LittleEndian, &headerLength); err != nil {
		return nil, fmt.Errorf("while reading header length: %w", err)
	}

	headerBytes := make([]byte, int(headerLength))
	if _, err := io.ReadFull(in, headerBytes); err != nil {
		return nil, fmt.Errorf("while reading header bytes: %w", err)
	}

	hdr := &structpb.Struct{}
	if err := proto.Unmarshal(headerBytes, hdr); err != nil {
		return nil, fmt.Errorf("while unmarshaling header: %w", err)
	}

	fields := hdr.GetFields()
	if v := fields["dataLayoutVersion"].GetNumberValue(); v != dataLayoutVersion {
		return nil, fmt.Errorf("bad data layout version: %v", v)
	}

	width := int(fields["width"].GetNumberValue())
	height := int(fields["height"].GetNumberValue())
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("bad canvas dimensions %dx%d", width, height)
	}
	c := New(width, height)

	zipReader, err := zlib.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("while opening zip reader: %w", err)
	}
	defer zipReader.Close()

	if err := binary.Read(zipReader, binary.LittleEndian, c.Pixels); err != nil {
		return nil, fmt.Errorf("while reading pixels: %w", err)
	}

	return c, nil
}

func ReadCanvasFromFile(name string) (*Canvas, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("while opening file: %w", err)
	}
	defer f.Close()

	return ReadCanvas(f)
}

// WriteCanvas writes c without loss: an 8-byte header length, a protobuf
// header describing the dimensions, then the zlib-compressed float64
// channels.
func WriteCanvas(c *Canvas, w io.Writer) error {
	hdr, err := structpb.NewStruct(map[string]interface{}{
		"width":             c.Width,
		"height":            c.Height,
		"dataLayoutVersion": dataLayoutVersion,
	})
	if err != nil {
		return fmt.Errorf("while building header: %w", err)
	}

	hdrBytes, err := proto.Marshal(hdr)
	if err != nil {
		return fmt.Errorf("while marshaling header: %w", err)
	}

	headerLengthBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(headerLengthBytes, uint64(len(hdrBytes)))
	if _, err := w.Write(headerLengthBytes); err != nil {
		return fmt.Errorf("while writing header length: %w", err)
	}

	if _, err := w.Write(hdrBytes); err != nil {
		return fmt.Errorf("while writing header: %w", err)
	}

	zipWriter := zlib.NewWriter(w)

	if err := binary.Write(zipWriter, binary.LittleEndian, c.Pixels); err != nil {
		return fmt.Errorf("while writing pixels: %w", err)
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("while closing zip writer: %w", err)
	}

	return nil
}
