package wizard

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// maxEncodedFileSize caps a single captured image before encoding.
	maxEncodedFileSize = 10 * 1024 * 1024

	// maxImagesPerList caps each of the two image lists.
	maxImagesPerList = 5
)

// EncodeImage converts raw image bytes into an embedded data URL payload.
// Non-image MIME types and files over 10MB are rejected before any encoding
// work happens.
func EncodeImage(filename, mimeType string, data []byte) (ImagePayload, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return ImagePayload{}, fmt.Errorf("unsupported file type: %s", mimeType)
	}
	if int64(len(data)) > maxEncodedFileSize {
		return ImagePayload{}, fmt.Errorf("file %s exceeds the 10MB limit", filename)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return ImagePayload{
		URL:      fmt.Sprintf("data:%s;base64,%s", mimeType, encoded),
		Filename: filename,
		Size:     int64(len(data)),
		MimeType: mimeType,
	}, nil
}

// EncodeImages encodes a batch for one image list, failing fast on the
// first bad file so no partial work is kept.
func EncodeImages(files []RawImage) ([]ImagePayload, error) {
	if len(files) > maxImagesPerList {
		return nil, fmt.Errorf("at most %d images are allowed per list", maxImagesPerList)
	}

	payloads := make([]ImagePayload, 0, len(files))
	for _, f := range files {
		payload, err := EncodeImage(f.Filename, f.MimeType, f.Data)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, payload)
	}
	return payloads, nil
}

// RawImage is a captured file before encoding.
type RawImage struct {
	Filename string
	MimeType string
	Data     []byte
}
