package book

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Person is one parsed CSV row. Immutable after creation.
type Person struct {
	Ordinal  int      // 1-based row position, stable across reruns
	Name     string   // display name, defaulted when the CSV cell is empty
	PhotoURL string   // external sharing URL, may be empty
	Answers  []string // cleaned question answers in column order, may contain ""
}

// PlaceholderName returns the positional name used when a row has no name.
func PlaceholderName(ordinal int) string {
	return fmt.Sprintf("Person_%d", ordinal)
}

// timestampColumn is the form-export metadata column excluded from answers.
const timestampColumn = "Timestamp"

// Roster reads Person records lazily from a CSV file. A Roster is a single
// forward pass; restart by opening a new one.
//
// Blank rows are skipped but still consume an ordinal slot, so filling a
// previously blank row in never renumbers everyone after it.
type Roster struct {
	file      *os.File
	csv       *csv.Reader
	nameIdx   int
	photoIdx  int
	answerIdx []int
	ordinal   int
}

// OpenRoster opens the CSV at path and parses its header. nameColumn and
// photoColumn are the required header names; every other column except the
// timestamp is treated positionally as a question answer.
func OpenRoster(path, nameColumn, photoColumn string) (*Roster, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCSVNotFound, path)
		}

		return nil, fmt.Errorf("open roster: %w", err)
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := reader.Read()
	if err != nil {
		closeErr := file.Close()
		_ = closeErr

		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", ErrEmptyHeader, path)
		}

		return nil, fmt.Errorf("read csv header: %w", err)
	}

	roster := &Roster{
		file:     file,
		csv:      reader,
		nameIdx:  -1,
		photoIdx: -1,
	}

	for idx, col := range header {
		switch strings.TrimSpace(col) {
		case nameColumn:
			roster.nameIdx = idx
		case photoColumn:
			roster.photoIdx = idx
		case timestampColumn:
			// metadata, not an answer
		default:
			roster.answerIdx = append(roster.answerIdx, idx)
		}
	}

	if roster.nameIdx < 0 || roster.photoIdx < 0 {
		closeErr := file.Close()
		_ = closeErr

		return nil, fmt.Errorf("%w: need %q and %q", ErrMissingColumns, nameColumn, photoColumn)
	}

	return roster, nil
}

// Next returns the next non-blank Person. Returns io.EOF after the last row.
func (r *Roster) Next() (Person, error) {
	for {
		record, err := r.csv.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Person{}, io.EOF
			}

			return Person{}, fmt.Errorf("read csv row: %w", err)
		}

		r.ordinal++

		if rowBlank(record) {
			continue
		}

		person := Person{
			Ordinal:  r.ordinal,
			Name:     strings.TrimSpace(field(record, r.nameIdx)),
			PhotoURL: strings.TrimSpace(field(record, r.photoIdx)),
		}

		if person.Name == "" {
			person.Name = PlaceholderName(r.ordinal)
		}

		for _, idx := range r.answerIdx {
			person.Answers = append(person.Answers, CleanText(field(record, idx)))
		}

		return person, nil
	}
}

// Close releases the underlying file.
func (r *Roster) Close() error {
	return r.file.Close()
}

// LoadRoster reads the whole roster in one pass.
func LoadRoster(path, nameColumn, photoColumn string) ([]Person, error) {
	roster, err := OpenRoster(path, nameColumn, photoColumn)
	if err != nil {
		return nil, err
	}
	defer func() {
		closeErr := roster.Close()
		_ = closeErr
	}()

	var people []Person

	for {
		person, err := roster.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return people, nil
			}

			return nil, err
		}

		people = append(people, person)
	}
}

// field returns record[idx] or "" when the row is too short.
func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return record[idx]
}

func rowBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
