// Package image parses the RCX binary image format: a signature-tagged
// header followed by code/data sections and a symbol table. Image files
// are the output of a downloader/compiler toolchain and the input to the
// disassembler.
package image

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/bricks-rs/rcx/rcxerr"
)

const (
	signature   = "RCXI"
	maxSections = 10
	hexdumpWrap = 16
)

// TargetType identifies the firmware family an image was compiled for.
type TargetType uint8

const (
	TargetRcx TargetType = iota
	TargetCyberMaster
	TargetScout
	TargetRcx2
	TargetSpybotics
	TargetSwan
)

func (t TargetType) String() string {
	switch t {
	case TargetRcx:
		return "Rcx"
	case TargetCyberMaster:
		return "CyberMaster"
	case TargetScout:
		return "Scout"
	case TargetRcx2:
		return "Rcx2"
	case TargetSpybotics:
		return "Spybotics"
	case TargetSwan:
		return "Swan"
	default:
		return "Unknown(" + strconv.Itoa(int(t)) + ")"
	}
}

func parseTargetType(b byte) (TargetType, error) {
	if b > byte(TargetSwan) {
		return 0, rcxerr.New(rcxerr.KindParse, fmt.Sprintf("unknown target type %d", b))
	}
	return TargetType(b), nil
}

// SectionType classifies a code or data section.
type SectionType uint8

const (
	SectionTask SectionType = iota
	SectionSubroutine
	SectionSound
	SectionAnimation
	SectionCount
)

func (t SectionType) String() string {
	switch t {
	case SectionTask:
		return "Task"
	case SectionSubroutine:
		return "Subroutine"
	case SectionSound:
		return "Sound"
	case SectionAnimation:
		return "Animation"
	case SectionCount:
		return "Count"
	default:
		return "Unknown(" + strconv.Itoa(int(t)) + ")"
	}
}

func parseSectionType(b byte) (SectionType, error) {
	if b > byte(SectionCount) {
		return 0, rcxerr.New(rcxerr.KindParse, fmt.Sprintf("unknown section type %d", b))
	}
	return SectionType(b), nil
}

// IsCode reports whether sections of this type carry disassemblable
// bytecode, as opposed to sound or animation data.
func (t SectionType) IsCode() bool {
	return t == SectionTask || t == SectionSubroutine
}

// SymbolType classifies a symbol table entry.
type SymbolType uint8

const (
	SymbolTask SymbolType = iota
	SymbolSub
	SymbolVar
)

func (t SymbolType) String() string {
	switch t {
	case SymbolTask:
		return "Task"
	case SymbolSub:
		return "Sub"
	case SymbolVar:
		return "Var"
	default:
		return "Unknown(" + strconv.Itoa(int(t)) + ")"
	}
}

func parseSymbolType(b byte) (SymbolType, error) {
	if b > byte(SymbolVar) {
		return 0, rcxerr.New(rcxerr.KindParse, fmt.Sprintf("unknown symbol type %d", b))
	}
	return SymbolType(b), nil
}

// Section is one code or data chunk.
type Section struct {
	Type   SectionType
	Number uint8
	Length uint16
	Data   []byte
}

func (s Section) String() string {
	return fmt.Sprintf("%s #%d - %d bytes\n  %x", s.Type, s.Number, s.Length, s.Data)
}

// Symbol is one entry of the image's symbol table.
type Symbol struct {
	Type  SymbolType
	Index uint8
	Name  string // NUL terminator stripped
}

func (s Symbol) String() string {
	return fmt.Sprintf("%s at %d - %q", s.Type, s.Index, s.Name)
}

// Image is a fully parsed RCX binary image.
type Image struct {
	Signature    [4]byte
	Version      uint16
	SectionCount uint16
	SymbolCount  uint16
	TargetType   TargetType
	Sections     []Section
	Symbols      []Symbol
}

func (img Image) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Signature: %s\n", img.Signature[:])
	fmt.Fprintf(&b, "Version: %x\n", img.Version)
	fmt.Fprintf(&b, "%d sections, %d symbols\n", img.SectionCount, img.SymbolCount)
	fmt.Fprintf(&b, "Target: %s\n", img.TargetType)
	b.WriteString("Sections:\n")
	for _, s := range img.Sections {
		fmt.Fprintln(&b, s.String())
	}
	b.WriteString("Symbols:\n")
	for _, s := range img.Symbols {
		fmt.Fprintln(&b, s.String())
	}
	return b.String()
}

// reader walks buf by hand, tracking position for error reporting and
// hex-dump marker placement on failure.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) need(n int) error {
	if r.pos+n > len(r.buf) {
		return rcxerr.New(rcxerr.KindInsufficientData, "")
	}
	return nil
}

func (r *reader) u8() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) u16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := uint16(r.buf[r.pos]) | uint16(r.buf[r.pos+1])<<8
	r.pos += 2
	return v, nil
}

func (r *reader) take(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	v := r.buf[r.pos : r.pos+n]
	r.pos += n
	return v, nil
}

// Parse reads an Image out of buf and verifies its structural invariants.
// Parse errors carry a hex-dump of buf with a marker at the byte offset
// where parsing failed; for a failed structural check that offset is the
// end of the decoded input, and no marker line is drawn when it lies at or
// past the end of buf.
func Parse(buf []byte) (*Image, error) {
	r := &reader{buf: buf}
	img, err := parse(r)
	if err != nil {
		return nil, rcxerr.Wrap(rcxerr.KindParse, err, "\n"+HexDumpAt(buf, r.pos))
	}
	if err := img.verify(); err != nil {
		return nil, rcxerr.Wrap(rcxerr.KindParse, err, "\n"+HexDumpAt(buf, r.pos))
	}
	return img, nil
}

// parse reads an Image from r, advancing r as it goes. On failure r.pos is
// left at the byte offset parsing stopped at, which Parse uses to place the
// hex-dump marker.
func parse(r *reader) (*Image, error) {
	sigBytes, err := r.take(4)
	if err != nil {
		return nil, err
	}
	if string(sigBytes) != signature {
		return nil, rcxerr.New(rcxerr.KindParse, "bad signature")
	}
	var sig [4]byte
	copy(sig[:], sigBytes)

	version, err := r.u16()
	if err != nil {
		return nil, err
	}
	sectionCount, err := r.u16()
	if err != nil {
		return nil, err
	}
	symbolCount, err := r.u16()
	if err != nil {
		return nil, err
	}
	targetByte, err := r.u8()
	if err != nil {
		return nil, err
	}
	targetType, err := parseTargetType(targetByte)
	if err != nil {
		return nil, err
	}
	if _, err := r.u8(); err != nil { // reserved
		return nil, err
	}

	sections := make([]Section, 0, sectionCount)
	for i := uint16(0); i < sectionCount; i++ {
		s, err := parseSection(r)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}

	symbols := make([]Symbol, 0, symbolCount)
	for i := uint16(0); i < symbolCount; i++ {
		s, err := parseSymbol(r)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, s)
	}

	return &Image{
		Signature:    sig,
		Version:      version,
		SectionCount: sectionCount,
		SymbolCount:  symbolCount,
		TargetType:   targetType,
		Sections:     sections,
		Symbols:      symbols,
	}, nil
}

func parseSection(r *reader) (Section, error) {
	typByte, err := r.u8()
	if err != nil {
		return Section{}, err
	}
	typ, err := parseSectionType(typByte)
	if err != nil {
		return Section{}, err
	}
	number, err := r.u8()
	if err != nil {
		return Section{}, err
	}
	length, err := r.u16()
	if err != nil {
		return Section{}, err
	}
	data, err := r.take(int(length))
	if err != nil {
		return Section{}, err
	}
	padded := make([]byte, length)
	copy(padded, data)

	pad := (4 - (length % 4)) & 3
	if _, err := r.take(int(pad)); err != nil {
		return Section{}, err
	}

	return Section{Type: typ, Number: number, Length: length, Data: padded}, nil
}

func parseSymbol(r *reader) (Symbol, error) {
	typByte, err := r.u8()
	if err != nil {
		return Symbol{}, err
	}
	typ, err := parseSymbolType(typByte)
	if err != nil {
		return Symbol{}, err
	}
	index, err := r.u8()
	if err != nil {
		return Symbol{}, err
	}
	length, err := r.u16()
	if err != nil {
		return Symbol{}, err
	}
	name, err := r.take(int(length))
	if err != nil {
		return Symbol{}, err
	}
	return Symbol{Type: typ, Index: index, Name: string(bytes.TrimRight(name, "\x00"))}, nil
}

// verify checks the structural invariants Parse must enforce beyond what
// per-field decoding already guarantees.
func (img *Image) verify() error {
	if int(img.SectionCount) != len(img.Sections) || len(img.Sections) > maxSections {
		return rcxerr.New(rcxerr.KindParse, "invalid number of sections")
	}
	seen := make(map[[2]uint8]bool, len(img.Sections))
	for _, s := range img.Sections {
		key := [2]uint8{uint8(s.Type), s.Number}
		if seen[key] {
			return rcxerr.New(rcxerr.KindParse, "nonunique section numbers")
		}
		seen[key] = true
	}
	if int(img.SymbolCount) != len(img.Symbols) {
		return rcxerr.New(rcxerr.KindParse, "invalid number of symbols")
	}
	return nil
}

// HexDumpAt renders bin as a 16-byte-wide hex dump with a marker line
// under the row containing pos, for diagnosing a parse failure.
func HexDumpAt(bin []byte, pos int) string {
	var b bytes.Buffer
	b.WriteString("     ")
	for n := 0; n < 16; n++ {
		fmt.Fprintf(&b, " %2x", n)
	}
	b.WriteByte('\n')

	for idx := 0; idx*hexdumpWrap < len(bin); idx++ {
		start := idx * hexdumpWrap
		end := start + hexdumpWrap
		if end > len(bin) {
			end = len(bin)
		}
		fmt.Fprintf(&b, "0x%02x:", start)
		for _, byt := range bin[start:end] {
			fmt.Fprintf(&b, " %02x", byt)
		}
		b.WriteByte('\n')
		if pos >= start && pos < end {
			b.WriteString("     ")
			for i := 0; i < pos-start; i++ {
				b.WriteString("   ")
			}
			b.WriteString("^<<\n")
		}
	}
	return b.String()
}
