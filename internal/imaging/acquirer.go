/**
* Name: 			acquirer.go
* Description: 		Meal image acquisition from a file upload or a camera capture
* Workflow: 		source selection, byte read, MIME resolution, sanity checks
 */

package imaging

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"CaloriesAdvisor/internal/models"

	"github.com/gabriel-vasile/mimetype"
)

// CapturedMimeType is assumed for every camera capture.
const CapturedMimeType = "image/jpeg"

var (
	ErrNoImage     = errors.New("no file uploaded or image captured")
	ErrImageDecode = errors.New("image could not be read")
)

var acceptedTypes = []string{"image/jpeg", "image/png"}

// Source is either an UploadedImage or a CapturedImage.
type Source interface {
	isSource()
}

type UploadedImage struct {
	Header *multipart.FileHeader
}

type CapturedImage struct {
	Data []byte
}

func (UploadedImage) isSource() {}
func (CapturedImage) isSource() {}

// Select picks the upload over the capture. It returns nil when neither is present.
func Select(uploaded *multipart.FileHeader, captured []byte) Source {
	if uploaded != nil {
		return UploadedImage{Header: uploaded}
	}
	if len(captured) > 0 {
		return CapturedImage{Data: captured}
	}
	return nil
}

type Acquirer struct {
	maxBytes int64
}

func NewAcquirer(maxBytes int64) *Acquirer {
	return &Acquirer{maxBytes: maxBytes}
}

// Acquire turns the selected source into exactly one payload.
func (a *Acquirer) Acquire(src Source) (models.ImagePayload, error) {
	switch s := src.(type) {
	case UploadedImage:
		return a.fromUpload(s)
	case CapturedImage:
		return a.fromCapture(s)
	default:
		return models.ImagePayload{}, ErrNoImage
	}
}

func (a *Acquirer) fromUpload(s UploadedImage) (models.ImagePayload, error) {
	if s.Header == nil {
		return models.ImagePayload{}, ErrNoImage
	}
	if s.Header.Size > a.maxBytes {
		return models.ImagePayload{}, fmt.Errorf("%w: %s is larger than %d bytes", ErrImageDecode, s.Header.Filename, a.maxBytes)
	}

	f, err := s.Header.Open()
	if err != nil {
		return models.ImagePayload{}, fmt.Errorf("%w: open %s: %v", ErrImageDecode, s.Header.Filename, err)
	}
	defer f.Close()

	data, err := a.readLimited(f)
	if err != nil {
		return models.ImagePayload{}, fmt.Errorf("%w: %s: %v", ErrImageDecode, s.Header.Filename, err)
	}

	detected := mimetype.Detect(data)
	if !detected.Is(acceptedTypes[0]) && !detected.Is(acceptedTypes[1]) {
		return models.ImagePayload{}, fmt.Errorf("%w: %s is %s, expected JPEG or PNG", ErrImageDecode, s.Header.Filename, detected.String())
	}

	mimeType := s.Header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = detected.String()
	}
	return models.ImagePayload{MimeType: mimeType, Data: data}, nil
}

func (a *Acquirer) fromCapture(s CapturedImage) (models.ImagePayload, error) {
	if len(s.Data) == 0 {
		return models.ImagePayload{}, ErrNoImage
	}
	if int64(len(s.Data)) > a.maxBytes {
		return models.ImagePayload{}, fmt.Errorf("%w: captured image is larger than %d bytes", ErrImageDecode, a.maxBytes)
	}
	return models.ImagePayload{MimeType: CapturedMimeType, Data: s.Data}, nil
}

func (a *Acquirer) readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, a.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > a.maxBytes {
		return nil, fmt.Errorf("larger than %d bytes", a.maxBytes)
	}
	if len(data) == 0 {
		return nil, errors.New("empty file")
	}
	return data, nil
}

// DecodeDataURL reads a "data:<mime>;base64,<payload>" string posted by the
// camera widget. An empty string, or a data URL with no payload (what a
// browser canvas yields before the camera has produced a frame), means no
// capture was taken.
func DecodeDataURL(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	meta, payload, ok := strings.Cut(s, ",")
	if ok && strings.HasPrefix(meta, "data:") && strings.TrimSpace(payload) == "" {
		return nil, nil
	}
	if !ok || !strings.HasPrefix(meta, "data:") || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: malformed camera capture", ErrImageDecode)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: camera capture: %v", ErrImageDecode, err)
	}
	return data, nil
}
