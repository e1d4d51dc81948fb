package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasic(t *testing.T) {
	m := Parse("CLIENTE;MATERIAL\r\nA;M1\r\nB;M2", DefaultDelimiter)
	require.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"CLIENTE", "MATERIAL"}, m.Header())
	assert.Equal(t, [][]string{{"A", "M1"}, {"B", "M2"}}, m.Records())
}

func TestParseLineEndings(t *testing.T) {
	for name, text := range map[string]string{
		"lf":   "a;b\nc;d\n",
		"crlf": "a;b\r\nc;d\r\n",
		"cr":   "a;b\rc;d\r",
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, Parse(text, ';').Rows)
		})
	}
}

func TestParseStripsBOM(t *testing.T) {
	m := Parse("\uFEFFCLIENTE;ESTADO\nA;OK\n", ';')
	assert.Equal(t, "CLIENTE", m.Header()[0])
}

func TestParseQuotes(t *testing.T) {
	text := "name;note\n\"a;b\";\"he said \"\"hi\"\"\"\n\"multi\nline\";x\n"
	m := Parse(text, ';')
	require.Len(t, m.Rows, 3)
	assert.Equal(t, []string{"a;b", `he said "hi"`}, m.Rows[1])
	assert.Equal(t, []string{"multi\nline", "x"}, m.Rows[2])
}

func TestParseDropsBlankRows(t *testing.T) {
	m := Parse("a;b\n;\n  ;  \n\nc;d\n", ';')
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, m.Rows)
}

func TestParseTrailingRowWithoutNewline(t *testing.T) {
	m := Parse("a;b\nc;", ';')
	assert.Equal(t, [][]string{{"a", "b"}, {"c", ""}}, m.Rows)
}

func TestParseUnterminatedQuoteClosesAtEOF(t *testing.T) {
	m := Parse("a;b\n\"open;still open\nmore", ';')
	require.Len(t, m.Rows, 2)
	assert.Equal(t, []string{"open;still open\nmore"}, m.Rows[1])
}

func TestParseCustomDelimiter(t *testing.T) {
	m := Parse("a,b\n1,\"2,5\"\n", ',')
	assert.Equal(t, []string{"1", "2,5"}, m.Rows[1])
}

func TestParseEmpty(t *testing.T) {
	assert.Equal(t, 0, Parse("", ';').Len())
	assert.Equal(t, 0, Parse("\n\n\r\n", ';').Len())
}
