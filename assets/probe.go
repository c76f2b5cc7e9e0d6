package assets

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrUnknownFormat is returned by Probe for payloads none of the registered
// decoders recognise (EMF and WMF drawings, for instance).
var ErrUnknownFormat = errors.New("unknown image format")

// Info describes a probed image payload
type Info struct {
	Format    string // decoder name: png, jpeg, gif, bmp, tiff, webp
	MediaType string
	Width     int
	Height    int
}

var mediaTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"webp": "image/webp",
}

// Probe identifies the format and pixel size of an image payload by reading
// its header. The pixel data is not decoded.
func Probe(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Info{}, ErrUnknownFormat
		}
		return Info{}, err
	}
	return Info{
		Format:    format,
		MediaType: mediaTypes[format],
		Width:     cfg.Width,
		Height:    cfg.Height,
	}, nil
}
