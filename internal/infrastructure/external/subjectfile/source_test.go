package subjectfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiracleAriel/seminar12-gb-hw/internal/domain/shared"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subjects.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSubjects_FirstRowOnly(t *testing.T) {
	path := writeFile(t, "Math,Physics,History\nArt,Music\n")

	subjects, err := New(path).LoadSubjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Math", "Physics", "History"}, subjects)
}

func TestLoadSubjects_TrimsSpacesAndHonoursDelimiter(t *testing.T) {
	path := writeFile(t, "Math; Physics ;History\n")

	subjects, err := New(path, WithDelimiter(';')).LoadSubjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Math", "Physics", "History"}, subjects)
}

func TestLoadSubjects_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.csv")).LoadSubjects(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrSourceUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSubjects_EmptyFile(t *testing.T) {
	_, err := New(writeFile(t, "")).LoadSubjects(context.Background())
	assert.ErrorIs(t, err, shared.ErrSourceFormat)
}

func TestRead_EmptyCell(t *testing.T) {
	_, err := New("").Read(strings.NewReader("Math,,History\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrSourceFormat)
	assert.Contains(t, err.Error(), "column 2")
}

func TestRead_BlankFirstRow(t *testing.T) {
	for _, content := range []string{"\nMath,Physics\n", "  \r\nMath\n"} {
		_, err := New("").Read(strings.NewReader(content))
		require.Error(t, err, "%q", content)
		assert.ErrorIs(t, err, shared.ErrSourceFormat)
		assert.Contains(t, err.Error(), "first row")
	}
}

func TestRead_LineEndings(t *testing.T) {
	subjects, err := New("").Read(strings.NewReader("Math,Physics\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Math", "Physics"}, subjects)

	subjects, err = New("").Read(strings.NewReader("Math"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Math"}, subjects)
}

func TestRead_MalformedQuotes(t *testing.T) {
	_, err := New("").Read(strings.NewReader("\"Math,Physics\n"))
	assert.ErrorIs(t, err, shared.ErrSourceFormat)
}

func TestSeed_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subjects.csv")
	src := New(path, WithDelimiter(';'))

	require.NoError(t, src.Seed(context.Background(), []string{"Math", "Physics", "History"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Math;Physics;History\n", string(raw))

	subjects, err := src.LoadSubjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Math", "Physics", "History"}, subjects)

	assert.ErrorIs(t, src.Seed(context.Background(), nil), shared.ErrSourceFormat)
}

func TestLoadSubjects_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(writeFile(t, "Math\n")).LoadSubjects(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
