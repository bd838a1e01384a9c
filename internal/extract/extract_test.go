package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeTextPlain(t *testing.T) {
	text, err := ResumeText("text/plain", []byte("Led team of 5 engineers"))
	require.NoError(t, err)
	assert.Equal(t, "Led team of 5 engineers", text)
}

func TestResumeTextUnsupportedType(t *testing.T) {
	_, err := ResumeText("image/png", []byte{0x89, 0x50})
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestResumeTextCorruptPDF(t *testing.T) {
	_, err := ResumeText("application/pdf", []byte("definitely not a pdf"))
	assert.Error(t, err)
}

func TestReadAll(t *testing.T) {
	data, err := ReadAll(strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}
