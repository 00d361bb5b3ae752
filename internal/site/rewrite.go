package site

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/natefinch/atomic"
)

// photoRefPattern matches quoted references to legacy-format photo assets
// (src attributes and JS data alike): anything quoted that contains a
// photo_NN_ stem and ends in a legacy raster extension.
var photoRefPattern = regexp.MustCompile(`(["'])([^"']*photo_\d{2}_[^"']*)\.(?i:jpg|jpeg|png)(["'])`)

// RewriteWebPRefs rewrites legacy photo references in an HTML document to
// the web format. Returns the rewritten content and the replacement count.
func RewriteWebPRefs(content []byte) ([]byte, int) {
	count := len(photoRefPattern.FindAll(content, -1))
	if count == 0 {
		return content, 0
	}

	return photoRefPattern.ReplaceAll(content, []byte(`${1}${2}.webp${3}`)), count
}

// RewriteFile applies RewriteWebPRefs to the file at path, writing it back
// only when something changed. Returns the replacement count.
func RewriteFile(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	rewritten, count := RewriteWebPRefs(content)
	if count == 0 {
		return 0, nil
	}

	writeErr := atomic.WriteFile(path, bytes.NewReader(rewritten))
	if writeErr != nil {
		return 0, fmt.Errorf("write %s: %w", path, writeErr)
	}

	return count, nil
}
