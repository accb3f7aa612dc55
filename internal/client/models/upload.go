package models

import "encoding/json"

// SubmitOptions are the user-entered values sent along with protected requests.
type SubmitOptions struct {
	PassCode      string
	IsForceUpload bool
}

// UploadRequest is built once per upload attempt and never retried.
// FileName and PassCode are raw; the caller encodes them for the wire.
type UploadRequest struct {
	FileName    string
	PassCode    string
	ForceUpload bool
	Image       string
	Thumbnail   string
}

type uploadBody struct {
	Image     string `json:"image"`
	Thumbnail string `json:"thumbnail"`
}

// Body returns the JSON request body {"image": ..., "thumbnail": ...}.
func (r UploadRequest) Body() ([]byte, error) {
	return json.Marshal(uploadBody{Image: r.Image, Thumbnail: r.Thumbnail})
}
