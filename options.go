package docxtree

import (
	"log/slog"

	"github.com/tsawler/docxtree/assets"
)

// ExtractOptions holds configuration for content tree extraction.
type ExtractOptions struct {
	// Asset output. sink wins over assetDir when both are set.
	sink     assets.Sink
	assetDir string

	logger *slog.Logger

	// Processing options
	headersFooters bool
	inOrderMath    bool
	ocrLanguage    string // empty disables OCR
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		sink:           nil, // nil discards assets
		logger:         nil, // nil disables logging
		headersFooters: false,
		inOrderMath:    false,
	}
}

// clone creates a copy of ExtractOptions. The sink and logger are shared.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		sink:           o.sink,
		assetDir:       o.assetDir,
		logger:         o.logger,
		headersFooters: o.headersFooters,
		inOrderMath:    o.inOrderMath,
		ocrLanguage:    o.ocrLanguage,
	}
}

// assetSink returns the sink images are written to.
func (o ExtractOptions) assetSink() assets.Sink {
	switch {
	case o.sink != nil:
		return o.sink
	case o.assetDir != "":
		return assets.NewDirSink(o.assetDir)
	default:
		return assets.Discard
	}
}
