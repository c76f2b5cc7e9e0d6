package docx

import (
	"fmt"
	"strings"

	"github.com/tsawler/docxtree/assets"
	"github.com/tsawler/docxtree/model"
)

// extractImage resolves the picture of a w:drawing, hands its payload to
// the asset sink and returns the image node. Unresolvable drawings produce
// a warning and a nil node; only a sink failure is returned as an error.
func (t *transcriber) extractImage(drawing *Node) (*model.Image, error) {
	blip := drawing.First(nsA, "blip")
	if blip == nil {
		t.warn(WarnImage, "drawing has no embedded picture")
		return nil, nil
	}

	id, _ := blip.AttrValue(nsR, "embed")
	if id == "" {
		t.warn(WarnImage, "picture has no relationship id")
		return nil, nil
	}

	rel, ok := t.r.Relationship(id)
	if !ok {
		t.warn(WarnImage, "relationship %s not found", id)
		return nil, nil
	}
	if rel.External {
		t.warn(WarnImage, "relationship %s points outside the package", id)
		return nil, nil
	}

	contentType := t.r.ContentType(rel.Target)
	if rel.Type != relTypeImage && !strings.HasPrefix(contentType, "image/") {
		t.warn(WarnImage, "relationship %s targets %s, not an image", id, rel.Target)
		return nil, nil
	}

	data, err := t.r.ReadPart(rel.Target)
	if err != nil {
		t.warn(WarnImage, "reading %s: %v", rel.Target, err)
		return nil, nil
	}

	name := assets.ImageName(id)
	if err := assets.ValidName(name); err != nil {
		t.warn(WarnImage, "relationship %s: %v", id, err)
		return nil, nil
	}

	asset := assets.Asset{
		Name:      name,
		MediaType: contentType,
		Data:      data,
	}
	info, probeErr := assets.Probe(data)
	if probeErr == nil {
		asset.MediaType = info.MediaType
		asset.Width, asset.Height = info.Width, info.Height
	} else {
		t.log.Debug("image format not recognised", "index", t.element, "part", rel.Target, "error", probeErr)
	}

	if err := t.opts.Sink.WriteAsset(asset); err != nil {
		return nil, fmt.Errorf("writing asset %s: %w", asset.Name, err)
	}

	img := &model.Image{
		AssetRef:  asset.Name,
		MediaType: asset.MediaType,
	}
	if descr, ok := drawing.First(nsWP, "docPr").AttrValue("", "descr"); ok {
		img.Description = strings.TrimSpace(descr)
	}

	if t.opts.Recognizer != nil && probeErr == nil {
		text, err := t.opts.Recognizer.Recognize(data)
		if err != nil {
			t.warn(WarnOCR, "recognising %s: %v", asset.Name, err)
		} else {
			img.Text = text
		}
	}

	return img, nil
}
