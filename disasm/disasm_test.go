package disasm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bricks-rs/rcx/disasm"
	"github.com/bricks-rs/rcx/image"
)

func taskImage(data []byte) *image.Image {
	return &image.Image{
		Signature:    [4]byte{'R', 'C', 'X', 'I'},
		Version:      0x0102,
		SectionCount: 1,
		SymbolCount:  1,
		TargetType:   image.TargetRcx,
		Sections: []image.Section{
			{Type: image.SectionTask, Number: 0, Length: uint16(len(data)), Data: data},
		},
		Symbols: []image.Symbol{
			{Type: image.SymbolTask, Index: 0, Name: "main"},
		},
	}
}

func TestPrintLinearSweep(t *testing.T) {
	// SetMotorDirection(0x81), SetMotorOnOff(0x81), StopAllTasks, no branches.
	data := []byte{0xE1, 0x81, 0x21, 0x81, 0x11}
	out := disasm.Print("prog.rcx", taskImage(data), disasm.SectionFilter{}, nil)

	assert.Contains(t, out, ".SYMBOLS:")
	assert.Contains(t, out, `Task 0 "main"`)
	assert.Contains(t, out, "00: e1 SETMOTORDIRECTION 0x81")
	assert.Contains(t, out, "02: 21 SETMOTORONOFF 0x81")
	assert.Contains(t, out, "04: 11 STOPALLTASKS")
}

func TestPrintFollowsUnconditionalBranch(t *testing.T) {
	// BranchAlwaysNear(offset=0x02) at 0x00 jumps to 0x03; the offset byte
	// at 0x01 and the filler at 0x02 are never independently decoded.
	data := []byte{0xA0, 0x02, 0x00, 0x11}
	out := disasm.Print("prog.rcx", taskImage(data), disasm.SectionFilter{}, nil)

	lines := strings.Split(out, "\n")
	var instrLines []string
	for _, l := range lines {
		if strings.Contains(l, ": ") && strings.Contains(l, "    ") {
			instrLines = append(instrLines, l)
		}
	}
	assert.Len(t, instrLines, 2)
	assert.Contains(t, out, "00: a0 BRANCH => 03")
	assert.Contains(t, out, "03: 11 STOPALLTASKS")
	assert.NotContains(t, out, "01: ")
	assert.NotContains(t, out, "02: ")
}

func TestPrintNonCodeSectionIsHexDumped(t *testing.T) {
	img := &image.Image{
		Signature:  [4]byte{'R', 'C', 'X', 'I'},
		TargetType: image.TargetRcx,
		Sections: []image.Section{
			{Type: image.SectionSound, Number: 0, Length: 2, Data: []byte{0xAB, 0xCD}},
		},
	}
	out := disasm.Print("prog.rcx", img, disasm.SectionFilter{}, nil)
	assert.Contains(t, out, "abcd")
}

func TestPrintDrainsWorklistWhenBranchTargetIsSectionEnd(t *testing.T) {
	// TestAndBranchNear(offset=0x02) at 0x00 jumps to 0x03 == len(section);
	// the fallthrough at 0x02 (StopAllTasks) is pushed onto the worklist
	// before the jump and must still be decoded even though the jump
	// target itself runs off the end of the section.
	data := []byte{0xA2, 0x02, 0x11}
	out := disasm.Print("prog.rcx", taskImage(data), disasm.SectionFilter{}, nil)

	assert.Contains(t, out, "00: a2 TSTBRANCH => 03")
	assert.Contains(t, out, "02: 11 STOPALLTASKS")
}

func TestPrintSectionFilterBySection(t *testing.T) {
	img := &image.Image{
		Signature:  [4]byte{'R', 'C', 'X', 'I'},
		TargetType: image.TargetRcx,
		Sections: []image.Section{
			{Type: image.SectionTask, Number: 0, Length: 1, Data: []byte{0x11}},
			{Type: image.SectionTask, Number: 1, Length: 2, Data: []byte{0x51, 0x05}},
		},
	}
	out := disasm.Print("prog.rcx", img, disasm.SectionFilter{Number: 1, HasNumber: true}, nil)
	assert.NotContains(t, out, "STOPALLTASKS")
	assert.Contains(t, out, "PLAYSOUND 5")
}

func TestPrintSectionFilterByType(t *testing.T) {
	img := &image.Image{
		Signature:  [4]byte{'R', 'C', 'X', 'I'},
		TargetType: image.TargetRcx,
		Sections: []image.Section{
			{Type: image.SectionTask, Number: 0, Length: 1, Data: []byte{0x11}},
			{Type: image.SectionSound, Number: 0, Length: 2, Data: []byte{0xAB, 0xCD}},
		},
	}
	out := disasm.Print("prog.rcx", img, disasm.SectionFilter{Type: image.SectionSound, HasType: true}, nil)
	assert.NotContains(t, out, "STOPALLTASKS")
	assert.Contains(t, out, "abcd")
}
