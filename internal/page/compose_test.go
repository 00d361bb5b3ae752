package page

import (
	"strings"
	"testing"
	"time"

	"slambook/internal/book"
)

func loadTestTemplate(t *testing.T) *Template {
	t.Helper()

	tmpl, err := Load(writeTemplate(t, testTemplate), discardLogger())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	return tmpl
}

func TestCompose(t *testing.T) {
	t.Parallel()

	tmpl := loadTestTemplate(t)

	person := book.Person{
		Ordinal: 3,
		Name:    "Jane Doe",
		Answers: []string{"featured answer", "card one", "card two"},
	}

	now := time.Date(2024, time.June, 5, 14, 30, 0, 0, time.UTC)

	result, err := tmpl.Compose(person, "photo_03_Jane_Doe.webp", now)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	html := string(result.HTML)

	for _, want := range []string{
		"Jane Doe",
		"<title>Slam Book - Jane Doe</title>",
		`src="photo_03_Jane_Doe.webp"`,
		`alt="Jane Doe&#39;s Photo"`,
		"featured answer",
		"card one",
		"card two",
		"Generated on June 05, 2024 at 02:30 PM | Page 3",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}

	if result.Answered != 3 {
		t.Errorf("Answered = %d, want 3", result.Answered)
	}
}

func TestComposePrunesEmptyAnswers(t *testing.T) {
	t.Parallel()

	tmpl := loadTestTemplate(t)

	person := book.Person{
		Ordinal: 1,
		Name:    "Bob",
		// Featured answered, first card empty, second card answered,
		// third card has no answer at all.
		Answers: []string{"featured", "", "kept"},
	}

	result, err := tmpl.Compose(person, "", time.Now())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	html := string(result.HTML)

	if result.Answered != 2 {
		t.Errorf("Answered = %d, want 2", result.Answered)
	}

	if !strings.Contains(html, "kept") {
		t.Error("answered card should survive")
	}

	// The pruned cards disappear along with their question labels.
	if strings.Contains(html, "Q1") || strings.Contains(html, "Q3") {
		t.Error("unanswered cards should be removed")
	}

	if !strings.Contains(html, "Q2") {
		t.Error("answered card question should survive")
	}
}

func TestComposeWithoutPhotoKeepsPlaceholder(t *testing.T) {
	t.Parallel()

	tmpl := loadTestTemplate(t)

	result, err := tmpl.Compose(book.Person{Ordinal: 1, Name: "Bob", Answers: []string{"a"}}, "", time.Now())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	html := string(result.HTML)

	if !strings.Contains(html, "placehold.co") {
		t.Error("placeholder image src should survive when there is no photo")
	}

	// The alt text is still personalized.
	if !strings.Contains(html, `alt="Bob&#39;s Photo"`) {
		t.Error("alt text should carry the person's name")
	}
}

func TestComposeNoAnswers(t *testing.T) {
	t.Parallel()

	tmpl := loadTestTemplate(t)

	result, err := tmpl.Compose(book.Person{Ordinal: 2, Name: "Quiet"}, "", time.Now())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if result.Answered != 0 {
		t.Errorf("Answered = %d, want 0", result.Answered)
	}

	if strings.Contains(string(result.HTML), "answer-card") {
		t.Error("all answer cards should be removed")
	}
}

func TestComposeIsRepeatable(t *testing.T) {
	t.Parallel()

	tmpl := loadTestTemplate(t)

	// A page for someone with few answers must not dent the template for
	// the next person.
	_, err := tmpl.Compose(book.Person{Ordinal: 1, Name: "First", Answers: []string{"only"}}, "", time.Now())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	result, err := tmpl.Compose(book.Person{
		Ordinal: 2,
		Name:    "Second",
		Answers: []string{"f", "c1", "c2", "c3"},
	}, "", time.Now())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if result.Answered != 4 {
		t.Errorf("Answered = %d, want 4", result.Answered)
	}
}
