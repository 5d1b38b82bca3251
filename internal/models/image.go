package models

import "encoding/base64"

// ImagePayload is the meal photo sent along with the prompt. It belongs to a
// single submit and is never cached.
type ImagePayload struct {
	MimeType string
	Data     []byte
}

// DataURL renders the payload for an inline <img> preview.
func (p ImagePayload) DataURL() string {
	if len(p.Data) == 0 {
		return ""
	}
	return "data:" + p.MimeType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}
