package wordlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestRead(t *testing.T) {
	in := "# seed words\nbad\n\n  dad  \nmad\r\n# end\n"
	words, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"bad", "dad", "mad"}, words)
}

func TestReadEmpty(t *testing.T) {
	words, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestReadNonASCII(t *testing.T) {
	in := "naïve\ncafé\nbad\nsmörgåsbord\n"
	words, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, words, 4)
	assert.Equal(t, "bad", words[2])
}

func TestReadLatin1AfterASCIIHead(t *testing.T) {
	var b strings.Builder
	for b.Len() < 2*sniffSize {
		b.WriteString("word\n")
	}
	for i := 0; i < 30; i++ {
		b.WriteString("café\nfaçade\nété\nrépété\nça\n")
	}
	latin1, err := charmap.ISO8859_1.NewEncoder().String(b.String())
	require.NoError(t, err)

	words, err := Read(strings.NewReader(latin1))
	require.NoError(t, err)
	assert.Contains(t, words, "café")
	assert.Contains(t, words, "façade")
	assert.Equal(t, "word", words[0])
}

func TestSniffWindow(t *testing.T) {
	assert.Nil(t, sniffWindow([]byte("bad\ndad\n")))

	data := []byte("bad\ndad\ncafé\nmad\n")
	assert.Equal(t, []byte("café\nmad\n"), sniffWindow(data))

	long := append([]byte(strings.Repeat("a", 10)+"\né"), []byte(strings.Repeat("b", 2*sniffSize))...)
	w := sniffWindow(long)
	assert.Len(t, w, sniffSize)
	assert.Equal(t, "é", string(w[:2]))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nbeta\n"), 0644))

	words, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, words)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
