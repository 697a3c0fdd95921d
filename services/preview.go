package services

import (
	"bytes"
	"encoding/base64"

	"github.com/disintegration/imaging"
)

// DefaultFolderPreview is used when a folder has no decodable image, which
// is what the dashboard renders for an empty folder anyway.
const DefaultFolderPreview = "📁"

// PreviewDataURI renders a small JPEG thumbnail of an image payload as a
// data: URI for the folder grid.
func PreviewDataURI(data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	thumb := imaging.Thumbnail(img, 96, 96, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return "", err
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
