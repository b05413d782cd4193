package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/vvka-141/inetl/internal/logging"
	"github.com/vvka-141/inetl/pkg/inetl"
)

const sourceHeader = "Location,Rate (WB),Year,Rate (ITU),Year,Users (CIA),Year,Notes\n"

func writeSource(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "internet_users.csv")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func newTestExtractor(opts ...Option) *CSVExtractor {
	return New(logging.NewNullLogger(), opts...)
}

func TestExtract_ReadsRowsInOrder(t *testing.T) {
	path := writeSource(t, []byte(sourceHeader+
		"Afghanistan,18.4,2020.0,17.6,2020.0,\"7,000,000\",2021.0,\n"+
		"Albania,72.2,2020.0,79.3,2022.0,2100000,2021.0,mobile only\n"))

	table, err := newTestExtractor().Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, inetl.SourceHeaders(), table.Header)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "Afghanistan", table.Rows[0][0])
	assert.Equal(t, "7,000,000", table.Rows[0][5])
	assert.Equal(t, "", table.Rows[0][7])
	assert.Equal(t, "mobile only", table.Rows[1][7])
}

func TestExtract_HeaderOnly(t *testing.T) {
	path := writeSource(t, []byte(sourceHeader))

	table, err := newTestExtractor().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestExtract_StripsBOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte(sourceHeader+"Chad,10,2020,,,,,\n")...)
	path := writeSource(t, content)

	table, err := newTestExtractor().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Location", table.Header[0])
}

func TestExtract_DecodesLatin1(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String(sourceHeader + "Curaçao,68.1,2020,,,,,\n")
	require.NoError(t, err)
	path := writeSource(t, []byte(encoded))

	table, err := newTestExtractor(WithEncoding("windows-1252")).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Curaçao", table.Rows[0][0])
}

func TestExtract_Delimiter(t *testing.T) {
	path := writeSource(t, []byte(
		"Location;Rate (WB);Year;Rate (ITU);Year;Users (CIA);Year;Notes\n"+
			"Chad;10,5;2020;;;;;\n"))

	table, err := newTestExtractor(WithDelimiter(';')).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "10,5", table.Rows[0][1])
}

func TestExtract_ExtraColumnsKept(t *testing.T) {
	path := writeSource(t, []byte("S/N,"+sourceHeader+"0,Chad,10,2020,,,,,\n"))

	table, err := newTestExtractor().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "S/N", table.Header[0])
	assert.Len(t, table.Header, 9)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"empty file", "", inetl.ErrSourceParse},
		{"ragged row", sourceHeader + "Chad,10\n", inetl.ErrSourceParse},
		{"bad quoting", sourceHeader + "\"Chad,10,2020,,,,,\n", inetl.ErrSourceParse},
		{"missing column", "Location,Rate (WB)\nChad,10\n", inetl.ErrSourceParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, []byte(tt.content))
			_, err := newTestExtractor().Extract(context.Background(), path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExtract_MissingColumnNamed(t *testing.T) {
	path := writeSource(t, []byte("Location,Rate (WB),Year,Notes\n"))

	_, err := newTestExtractor().Extract(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Rate (ITU)"`)
	assert.Contains(t, err.Error(), `"Year.2"`)
}

func TestExtract_NotFound(t *testing.T) {
	_, err := newTestExtractor().Extract(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, inetl.ErrSourceNotFound)
}

func TestExtract_Directory(t *testing.T) {
	_, err := newTestExtractor().Extract(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, inetl.ErrSourceParse)
}

func TestExtract_CancelledContext(t *testing.T) {
	path := writeSource(t, []byte(sourceHeader+"Chad,10,2020,,,,,\n"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestExtractor().Extract(ctx, path)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestExtract_UnsupportedEncoding(t *testing.T) {
	path := writeSource(t, []byte(sourceHeader))

	_, err := newTestExtractor(WithEncoding("ebcdic")).Extract(context.Background(), path)
	assert.ErrorIs(t, err, inetl.ErrInvalidConfig)
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"a", "b"}, []string{"a", "b"}},
		{[]string{" Year ", "Year", "Year"}, []string{"Year", "Year.1", "Year.2"}},
		{[]string{"Year", "Year.1", "Year"}, []string{"Year", "Year.1", "Year.2"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeHeader(tt.in))
	}
}

func TestValidateEncoding(t *testing.T) {
	for _, name := range []string{"", "UTF-8", "utf8", "latin1", "cp1252", "Shift-JIS"} {
		assert.NoError(t, ValidateEncoding(name), name)
	}
	assert.ErrorIs(t, ValidateEncoding("klingon"), inetl.ErrInvalidConfig)
}

func TestNew_PanicsOnNilLogger(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}
