package headlessterm

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strconv"
	"strings"
)

// ImagePassthroughCommand is a single, non-chunked inline image request,
// modeled on iTerm2's OSC 1337 "File=key=value,...:base64data" convention:
// the simplest widely-deployed wire format that needs no multi-part
// reassembly. Unlike the Sixel raster language or the Kitty graphics
// protocol's chunked transfer and action verbs, a command always carries
// the complete image in one shot and is always transmit-and-display.
type ImagePassthroughCommand struct {
	ImageID uint32 // optional caller-supplied id; 0 means auto-assign
	Width   uint32 // required for raw formats, ignored for png
	Height  uint32 // required for raw formats, ignored for png
	Format  string // "png" (default) or "rgba"
	Payload []byte // base64-decoded bytes
}

// ParseImagePassthrough parses "key=value,key=value;<base64>" into a
// command. Recognized keys: i (image id), w (width), h (height),
// f (format: "png" or "rgba"). Unknown keys are ignored so that a sender
// using a handful of extra Kitty-style keys (quiet, more, action) degrades
// gracefully instead of failing outright.
func ParseImagePassthrough(data []byte) (*ImagePassthroughCommand, error) {
	sep := bytes.IndexByte(data, ';')
	if sep < 0 {
		return nil, fmt.Errorf("headlessterm: image pass-through: missing ';' separator")
	}

	cmd := &ImagePassthroughCommand{Format: "png"}
	for _, kv := range strings.Split(string(data[:sep]), ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		switch k {
		case "i":
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				cmd.ImageID = uint32(n)
			}
		case "w":
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				cmd.Width = uint32(n)
			}
		case "h":
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				cmd.Height = uint32(n)
			}
		case "f":
			cmd.Format = v
		}
	}

	payload, err := base64.StdEncoding.DecodeString(string(data[sep+1:]))
	if err != nil {
		return nil, fmt.Errorf("headlessterm: image pass-through: %w", err)
	}
	cmd.Payload = payload
	return cmd, nil
}

// DecodeImageData converts the command's payload to RGBA pixels.
func (c *ImagePassthroughCommand) DecodeImageData() (rgba []byte, width, height uint32, err error) {
	switch c.Format {
	case "rgba":
		if c.Width == 0 || c.Height == 0 {
			return nil, 0, 0, fmt.Errorf("headlessterm: image pass-through: raw format requires w and h")
		}
		if uint64(len(c.Payload)) < uint64(c.Width)*uint64(c.Height)*4 {
			return nil, 0, 0, fmt.Errorf("headlessterm: image pass-through: payload shorter than w*h*4")
		}
		return c.Payload, c.Width, c.Height, nil

	case "png", "":
		img, err := png.Decode(bytes.NewReader(c.Payload))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("headlessterm: image pass-through: %w", err)
		}
		bounds := img.Bounds()
		out := image.NewRGBA(bounds)
		draw.Draw(out, bounds, img, bounds.Min, draw.Src)
		return out.Pix, uint32(bounds.Dx()), uint32(bounds.Dy()), nil

	default:
		return nil, 0, 0, fmt.Errorf("headlessterm: image pass-through: unsupported format %q", c.Format)
	}
}

// ImagePassthroughReceived processes an inline image pass-through request
// delivered as an APC payload beginning with 'G' (the same entry point
// xterm-family terminals use for graphics APCs). Anything that is not a
// well-formed, single-shot pass-through command — a Sixel raster, a
// chunked Kitty transfer, a malformed payload — is logged and ignored so
// operators can see the sequence was received and deliberately not acted
// on, rather than silently misrendering it.
func (t *Terminal) ImagePassthroughReceived(data []byte) {
	if !t.imagePassthroughEnabled {
		t.logf("image pass-through disabled, ignoring %d byte APC payload", len(data))
		return
	}

	cmd, err := ParseImagePassthrough(data)
	if err != nil {
		t.logf("image pass-through: %v", err)
		return
	}

	rgba, width, height, err := cmd.DecodeImageData()
	if err != nil {
		t.logf("image pass-through: %v", err)
		return
	}

	var imageID uint32
	if cmd.ImageID > 0 {
		t.images.StoreWithID(cmd.ImageID, width, height, rgba)
		imageID = cmd.ImageID
	} else {
		imageID = t.images.Store(width, height, rgba)
	}

	cellW, cellH := t.getCellSizePixels()
	cols := int((width + uint32(cellW) - 1) / uint32(cellW))
	rows := int((height + uint32(cellH) - 1) / uint32(cellH))

	t.mu.Lock()
	curRow := t.cursor.Row
	curCol := t.cursor.Col
	t.mu.Unlock()

	placement := &ImagePlacement{
		ImageID: imageID,
		Row:     curRow,
		Col:     curCol,
		Cols:    cols,
		Rows:    rows,
		SrcW:    width,
		SrcH:    height,
	}
	placementID := t.images.Place(placement)
	t.assignImageToCells(imageID, placementID, placement, width, height, cellW, cellH)

	t.mu.Lock()
	t.cursor.Col += cols
	if t.cursor.Col >= t.cols {
		t.cursor.Col = 0
		t.cursor.Row += rows
	}
	if t.cursor.Row >= t.rows {
		t.cursor.Row = t.rows - 1
	}
	t.mu.Unlock()
}
