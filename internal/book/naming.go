// Package book holds the domain core of the slam book pipeline: the CSV
// roster of people, the canonical artifact naming grammar, and configuration.
package book

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// AnonymousName is the fallback token when sanitization yields nothing.
const AnonymousName = "Anonymous"

// pagePrefix and pageSuffix form the page filename grammar. PageFile is the
// only encoder and ParsePageFile the only decoder; nothing else in the repo
// re-derives this shape.
const (
	pagePrefix = "slam_page_"
	pageSuffix = ".html"

	photoPrefix = "photo_"

	ordinalDigits = 2
)

// LegacyPhotoExts are the raster extensions a photo may have been left in
// before transcoding. The index probe and the cleaner share this list.
var LegacyPhotoExts = []string{".jpg", ".jpeg", ".png"}

// WebPExt is the extension of transcoded photo assets.
const WebPExt = ".webp"

// Sanitize derives a filename-safe name: every rune that is not a letter,
// digit, underscore, space, or hyphen is dropped, then runs of whitespace and
// hyphens collapse to a single underscore. An empty result falls back to
// AnonymousName so filenames are never missing their name part.
func Sanitize(name string) string {
	var b strings.Builder

	pendingSep := false

	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsSpace(r) || r == '-':
			pendingSep = true
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}

			pendingSep = false

			b.WriteRune(r)
		default:
			// dropped
		}
	}

	s := strings.Trim(b.String(), "_")
	if s == "" {
		return AnonymousName
	}

	return s
}

// PhotoStem returns the extensionless photo asset name for a person,
// e.g. PhotoStem(1, "Jane Doe") == "photo_01_Jane_Doe".
func PhotoStem(ordinal int, name string) string {
	return fmt.Sprintf("%s%0*d_%s", photoPrefix, ordinalDigits, ordinal, Sanitize(name))
}

// PageFile returns the page filename for a person,
// e.g. PageFile(1, "Jane Doe") == "slam_page_01_Jane_Doe.html".
func PageFile(ordinal int, name string) string {
	return fmt.Sprintf("%s%0*d_%s%s", pagePrefix, ordinalDigits, ordinal, Sanitize(name), pageSuffix)
}

// ParsePageFile decodes a filename produced by PageFile back into its ordinal
// and sanitized name. Returns ok=false for anything outside the grammar.
func ParsePageFile(filename string) (ordinal int, name string, ok bool) {
	rest, found := strings.CutPrefix(filename, pagePrefix)
	if !found {
		return 0, "", false
	}

	rest, found = strings.CutSuffix(rest, pageSuffix)
	if !found {
		return 0, "", false
	}

	digits, name, found := strings.Cut(rest, "_")
	if !found || len(digits) < ordinalDigits || name == "" {
		return 0, "", false
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, "", false
	}

	return n, name, true
}

// DisplayName converts a sanitized name back into a human-readable form by
// replacing underscores with spaces. Lossy: the original spacing is gone.
func DisplayName(sanitized string) string {
	return strings.ReplaceAll(sanitized, "_", " ")
}
