package page

import (
	"bytes"
	"fmt"
	"time"

	"golang.org/x/net/html"

	"slambook/internal/book"
)

// footerTimeFormat matches the stamp the generated pages have always carried.
const footerTimeFormat = "January 02, 2006 at 03:04 PM"

// Result is one composed page.
type Result struct {
	HTML     []byte
	Answered int // answer slots that rendered (non-empty answers)
}

// Compose fills the template for one person. photoFile is the transcoded
// photo filename relative to the output directory, or "" to keep the
// template's placeholder image. Answer slots whose answer is empty are
// removed from the document entirely: an unanswered question is not shown
// as a blank box.
func (t *Template) Compose(person book.Person, photoFile string, now time.Time) (Result, error) {
	doc, err := html.Parse(bytes.NewReader(t.src))
	if err != nil {
		return Result{}, fmt.Errorf("parse template: %w", err)
	}

	setText(findByClass(doc, ClassName), person.Name)

	if title := findElement(doc, "title"); title != nil {
		setText(title, "Slam Book - "+person.Name)
	}

	photo := findImgByAlt(doc, PhotoAlt)
	if photoFile != "" {
		setAttr(photo, "src", photoFile)
	}

	setAttr(photo, "alt", person.Name+"'s Photo")

	answered := t.fillAnswers(doc, person.Answers)

	if footer := findByClass(doc, ClassFooter); footer != nil {
		stamp := fmt.Sprintf("Generated on %s | Page %d", now.Format(footerTimeFormat), person.Ordinal)
		setText(footer, stamp)
	} else {
		t.logger.Warn("template has no footer slot, leaving it out", "person", person.Name)
	}

	var buf bytes.Buffer

	renderErr := html.Render(&buf, doc)
	if renderErr != nil {
		return Result{}, fmt.Errorf("render page: %w", renderErr)
	}

	return Result{HTML: buf.Bytes(), Answered: answered}, nil
}

// fillAnswers maps answers positionally onto slots: the first answer feeds
// the featured slot, the rest feed the generic cards in document order.
// Slots with no corresponding answer are removed too.
func (t *Template) fillAnswers(doc *html.Node, answers []string) int {
	answered := 0

	featured := findByClass(doc, ClassFeatured)
	if featured == nil {
		t.logger.Warn("template has no featured answer slot")
	} else if fillSlot(featured, first(answers)) {
		answered++
	}

	rest := answers
	if len(rest) > 0 {
		rest = rest[1:]
	}

	for idx, card := range collectByClass(doc, ClassCard) {
		answer := ""
		if idx < len(rest) {
			answer = rest[idx]
		}

		if fillSlot(card, answer) {
			answered++
		}
	}

	return answered
}

// fillSlot writes answer into the slot's answer-text node, or removes the
// whole slot when the answer is empty. Reports whether the slot rendered.
func fillSlot(slot *html.Node, answer string) bool {
	if answer == "" {
		removeNode(slot)

		return false
	}

	target := findByClass(slot, ClassAnswer)
	if target == nil {
		// Degenerate card without a text target: put the answer directly in.
		target = slot
	}

	setText(target, answer)

	return true
}

func first(answers []string) string {
	if len(answers) == 0 {
		return ""
	}

	return answers[0]
}
