package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPDFKey(t *testing.T) {
	key := PDFKey("physics", "class11", "chapter-1-physical-world")
	assert.Equal(t, "ncert-pdfs/physics/class11/chapter-1-physical-world.pdf", key)
}

func TestPDFKeySanitizesParts(t *testing.T) {
	key := PDFKey("  Physics ", "Class 11", "Chapter_1 Physical World")
	assert.Equal(t, "ncert-pdfs/physics/class-11/chapter-1-physical-world.pdf", key)

	key = PDFKey("", "class11", "bab")
	assert.Equal(t, "ncert-pdfs/unknown/class11/bab.pdf", key)
}
