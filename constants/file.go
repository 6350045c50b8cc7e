package constants

import "strings"

// FileFormats holds the broad input formats the pipeline distinguishes.
const (
	PDF   = "PDF"
	IMAGE = "IMAGE"
)

// AllowedMediaTypes holds the declared upload content types the pipeline
// accepts. Anything else is rejected before a backend is attempted.
var AllowedMediaTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/jpg":       {},
	"image/png":       {},
}

// MediaTypeAllowed reports whether the declared content type is accepted.
func MediaTypeAllowed(mediaType string) bool {
	_, ok := AllowedMediaTypes[NormalizeMediaType(mediaType)]
	return ok
}

// MapMediaTypeToFormat maps a declared content type to a broad format.
// Returns "" for unsupported types.
func MapMediaTypeToFormat(mediaType string) string {
	mt := NormalizeMediaType(mediaType)
	switch {
	case mt == "application/pdf":
		return PDF
	case strings.HasPrefix(mt, "image/"):
		if _, ok := AllowedMediaTypes[mt]; ok {
			return IMAGE
		}
	}
	return ""
}

// NormalizeMediaType lowercases and strips any parameters
// (e.g. "image/png; charset=binary" -> "image/png").
func NormalizeMediaType(mediaType string) string {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ExtToMediaType maps a file extension to the declared content type the
// batch CLI submits for it. Returns "" for unsupported extensions.
func ExtToMediaType(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return "application/pdf"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	}
	return ""
}
