package gradebook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MiracleAriel/seminar12-gb-hw/internal/domain/student"
)

// SubjectAverage is one line of a report.
type SubjectAverage struct {
	Subject           string
	Grades            int
	AverageGrade      float64
	AverageTestResult float64
}

// Report is a read-only snapshot of a student's averages.
type Report struct {
	Student  string
	Subjects []SubjectAverage
	Overall  float64
}

// Report builds averages for every subject in source order plus the overall average.
func (s *Service) Report(st *student.Student) Report {
	r := Report{
		Student: st.String(),
		Overall: st.AverageGrade(),
	}

	for _, subject := range st.Subjects() {
		// Subjects come from the record itself, so lookups cannot fail.
		avg, _ := st.AverageGradeFor(subject)
		results, _ := st.AverageTestResultFor(subject)
		scores, _ := st.Scores(subject)

		r.Subjects = append(r.Subjects, SubjectAverage{
			Subject:           subject,
			Grades:            len(scores.Grades),
			AverageGrade:      avg,
			AverageTestResult: results,
		})
	}

	return r
}

// ParseScore parses "Subject:grade:result" as given on the command line.
func ParseScore(value string) (RecordScoreCommand, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return RecordScoreCommand{}, fmt.Errorf("score %q: expected Subject:grade:result", value)
	}

	subject := strings.TrimSpace(parts[0])
	if subject == "" {
		return RecordScoreCommand{}, fmt.Errorf("score %q: subject is empty", value)
	}

	grade, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return RecordScoreCommand{}, fmt.Errorf("score %q: grade: %w", value, err)
	}

	result, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return RecordScoreCommand{}, fmt.Errorf("score %q: test result: %w", value, err)
	}

	return RecordScoreCommand{Subject: subject, Grade: grade, TestResult: result}, nil
}
