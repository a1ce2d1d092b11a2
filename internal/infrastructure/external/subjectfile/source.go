// Package subjectfile reads the subject list from a delimited text file.
// The first record of the file is the ordered list of subject names.
package subjectfile

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MiracleAriel/seminar12-gb-hw/internal/domain/shared"
)

const domain = "subjectfile"

// Source loads subjects from a CSV file.
type Source struct {
	path      string
	delimiter rune
}

// Option configures a Source.
type Option func(*Source)

// WithDelimiter sets the field delimiter (default ',').
func WithDelimiter(d rune) Option {
	return func(s *Source) {
		if d != 0 {
			s.delimiter = d
		}
	}
}

// New creates a file-backed subject source.
func New(path string, opts ...Option) *Source {
	s := &Source{path: path, delimiter: ','}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadSubjects opens the file and returns its first record.
func (s *Source) LoadSubjects(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, shared.WrapError(domain, "Open", shared.ErrSourceUnavailable,
			fmt.Sprintf("cannot open %s", s.path), err)
	}
	defer f.Close()

	return s.readFirstRecord(f)
}

// Read parses the first record from r.
func (s *Source) Read(r io.Reader) ([]string, error) {
	return s.readFirstRecord(r)
}

func (s *Source) readFirstRecord(r io.Reader) ([]string, error) {
	// csv.Reader skips blank lines, so the leading line is cut out first
	// and a blank one is reported instead of falling through to the next.
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, shared.WrapError(domain, "Read", shared.ErrSourceUnavailable,
			fmt.Sprintf("cannot read %s", s.describe()), err)
	}
	if line == "" {
		return nil, shared.NewDomainError(domain, "Read", shared.ErrSourceFormat,
			fmt.Sprintf("%s is empty", s.describe()))
	}
	if strings.TrimSpace(line) == "" {
		return nil, shared.NewDomainError(domain, "Read", shared.ErrSourceFormat,
			fmt.Sprintf("first row of %s is empty", s.describe()))
	}

	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = s.delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	record, err := reader.Read()
	if err != nil {
		return nil, shared.WrapError(domain, "Read", shared.ErrSourceFormat,
			fmt.Sprintf("cannot parse %s", s.describe()), err)
	}

	subjects := make([]string, 0, len(record))
	for i, field := range record {
		name := strings.TrimSpace(field)
		if name == "" {
			return nil, shared.NewDomainError(domain, "Read", shared.ErrSourceFormat,
				fmt.Sprintf("empty subject name in column %d of %s", i+1, s.describe()))
		}
		subjects = append(subjects, name)
	}

	return subjects, nil
}

// Seed writes subjects as the single record of the file, replacing its content.
func (s *Source) Seed(ctx context.Context, subjects []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(subjects) == 0 {
		return shared.NewDomainError(domain, "Seed", shared.ErrSourceFormat, "nothing to seed")
	}

	f, err := os.Create(s.path)
	if err != nil {
		return shared.WrapError(domain, "Seed", shared.ErrSourceUnavailable,
			fmt.Sprintf("cannot create %s", s.path), err)
	}

	w := csv.NewWriter(f)
	w.Comma = s.delimiter
	if err := w.Write(subjects); err != nil {
		f.Close()
		return shared.WrapError(domain, "Seed", shared.ErrSourceUnavailable,
			fmt.Sprintf("cannot write %s", s.path), err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return shared.WrapError(domain, "Seed", shared.ErrSourceUnavailable,
			fmt.Sprintf("cannot write %s", s.path), err)
	}

	return f.Close()
}

func (s *Source) describe() string {
	if s.path == "" {
		return "subject list"
	}
	return s.path
}
