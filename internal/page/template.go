// Package page fills the per-person HTML template. Substitution targets a
// small set of named slots identified by stable class markers; the slot set
// is validated when the template is loaded so a broken template fails fast
// instead of silently producing corrupt pages.
package page

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/net/html"
)

// Error variables for template handling.
var (
	ErrTemplateNotFound  = errors.New("template file not found")
	ErrMalformedTemplate = errors.New("template missing required slot")
)

// Slot markers. The template is plain HTML; these classes (and the photo
// alt text) are the whole substitution contract.
const (
	ClassName     = "slam-name"       // <span> holding the person's name
	ClassFeatured = "featured-answer" // answer card next to the photo
	ClassCard     = "answer-card"     // generic answer cards, document order
	ClassAnswer   = "answer-text"     // text target inside a card
	ClassFooter   = "footer-text"     // generation stamp
	PhotoAlt      = "Your Photo"      // alt of the placeholder <img>
)

// Template is a validated page template. Load it once and compose any number
// of pages from it; each composition re-parses the source so compositions
// never see each other's mutations.
type Template struct {
	src    []byte
	logger *slog.Logger

	// cardCount is the number of generic answer slots found at load time.
	cardCount int
}

// Load reads and validates the template at path. The name slot, the photo
// slot, and at least one answer card must be present; the featured slot,
// footer, and title are optional and their absence is only logged during
// composition.
func Load(path string, logger *slog.Logger) (*Template, error) {
	if logger == nil {
		logger = slog.Default()
	}

	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}

		return nil, fmt.Errorf("read template: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	if findByClass(doc, ClassName) == nil {
		return nil, fmt.Errorf("%w: .%s", ErrMalformedTemplate, ClassName)
	}

	if findImgByAlt(doc, PhotoAlt) == nil {
		return nil, fmt.Errorf("%w: img[alt=%q]", ErrMalformedTemplate, PhotoAlt)
	}

	cards := collectByClass(doc, ClassCard)
	if len(cards) == 0 && findByClass(doc, ClassFeatured) == nil {
		return nil, fmt.Errorf("%w: no .%s or .%s slots", ErrMalformedTemplate, ClassFeatured, ClassCard)
	}

	return &Template{src: src, logger: logger, cardCount: len(cards)}, nil
}

// AnswerSlots returns how many answers the template can show, counting the
// featured slot.
func (t *Template) AnswerSlots() int {
	return t.cardCount + 1
}
