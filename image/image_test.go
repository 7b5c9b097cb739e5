package image_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bricks-rs/rcx/image"
)

func minimalImageBytes() []byte {
	return []byte{
		'R', 'C', 'X', 'I', // signature
		0x02, 0x01, // version 0x0102
		0x01, 0x00, // section_count 1
		0x01, 0x00, // symbol_count 1
		0x00,       // target_type Rcx
		0x00,       // reserved
		0x00,       // section type Task
		0x00,       // section number 0
		0x00, 0x00, // section length 0
		0x00,                          // symbol type Task
		0x00,                          // symbol index 0
		0x05, 0x00,                    // symbol length 5
		'm', 'a', 'i', 'n', 0x00,
	}
}

func TestParseMinimal(t *testing.T) {
	img, err := image.Parse(minimalImageBytes())
	require.NoError(t, err)

	assert.Equal(t, [4]byte{'R', 'C', 'X', 'I'}, img.Signature)
	assert.Equal(t, uint16(0x0102), img.Version)
	assert.Equal(t, image.TargetRcx, img.TargetType)
	require.Len(t, img.Sections, 1)
	assert.Equal(t, image.SectionTask, img.Sections[0].Type)
	assert.Equal(t, uint8(0), img.Sections[0].Number)
	require.Len(t, img.Symbols, 1)
	assert.Equal(t, image.SymbolTask, img.Symbols[0].Type)
	assert.Equal(t, "main", img.Symbols[0].Name)
}

func TestParseBadSignature(t *testing.T) {
	buf := minimalImageBytes()
	buf[0] = 'X'
	_, err := image.Parse(buf)
	require.Error(t, err)
}

func TestParseTruncated(t *testing.T) {
	buf := minimalImageBytes()
	_, err := image.Parse(buf[:8])
	require.Error(t, err)
}

func TestParseSectionCountMismatch(t *testing.T) {
	buf := minimalImageBytes()
	buf[6] = 2 // claims 2 sections but only 1 follows
	_, err := image.Parse(buf)
	require.Error(t, err)
}

func TestHexDumpAtMarksOffset(t *testing.T) {
	dump := image.HexDumpAt([]byte{0x01, 0x02, 0x03, 0x04}, 2)
	assert.Contains(t, dump, "^<<")
}

func TestParseTruncatedMarksRealFailureOffset(t *testing.T) {
	buf := []byte{
		'R', 'C', 'X', 'I', // signature
		0x02, 0x01, // version
		0x01, 0x00, // section_count 1
		0x00, 0x00, // symbol_count 0
		0x00, // target_type Rcx
		0x00, // reserved
		0x00, // section type Task
		0x00, // section number 0
		0x05, 0x00, // section length 5 (declared)
		0xAA, 0xBB, // only 2 of the 5 data bytes actually present
	}
	// Parsing reaches offset 16 (right after the length field) and then
	// fails needing 5 more bytes for the section's data, with only 2
	// left. The hex-dump marker must sit at 0x10 (16), the first byte of
	// the row starting at that offset — not at len(buf) == 18.
	_, err := image.Parse(buf)
	require.Error(t, err)
	lines := strings.Split(err.Error(), "\n")
	var markerLine string
	for i, l := range lines {
		if strings.Contains(l, "0x10:") && i+1 < len(lines) {
			markerLine = lines[i+1]
			break
		}
	}
	require.NotEmpty(t, markerLine, "expected a marker line under the 0x10 row")
	// "     " (5 cols), offset 16 is the first byte of that row => column 5.
	assert.Equal(t, 5, strings.Index(markerLine, "^<<"))
}
