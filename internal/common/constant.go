// Package common contains shared constants and small helpers used across
// imagedrop client components.
package common

// Request header names understood by the image server. They are sent exactly
// as written here; the transport does not canonicalise them.
const (
	HeaderPassCode     = "PassCode"
	HeaderFileName     = "FileName"
	HeaderForceUpload  = "ForceUpload"
	HeaderSearchPhrase = "SearchPhrase"
	HeaderContentType  = "Content-type"
)

// Endpoints relative to the server base URL.
const (
	EndpointUpload   = "api/upload"
	EndpointSearch   = "api/search"
	EndpointValidate = "api/validate"
	EndpointDelete   = "api/delete"
)

// UploadContentType is the content type the server expects on api/upload,
// for both the JSON and the raw body variants.
const UploadContentType = "multipart/form-data"
