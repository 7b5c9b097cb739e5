// Package opcodes is the schema-driven opcode catalogue (component C):
// typed request/response structs, their encoders and decoders, a sum-type
// instruction dispatcher for the disassembler, and per-opcode metadata.
//
// The catalogue itself (catalogue.go) is hand-written from schema.yaml;
// cmd/gen-opcodes reads the same schema and emits a doc-comment skeleton a
// maintainer reconciles catalogue.go against after a schema edit. This
// file holds the runtime support catalogue.go calls into, plus the
// interfaces that let the rest of the module (frame, rcx, disasm) talk to
// "an opcode" without switching on its concrete type.
package opcodes

import "github.com/bricks-rs/rcx/rcxerr"

// Request is satisfied by every generated request struct.
type Request interface {
	// RequestOpcode is the base opcode byte, without the alternate-form
	// bit. The link layer ORs in 0x08 itself.
	RequestOpcode() byte
	// ResponseOpcode reports the opcode expected on a reply, if this
	// request declares one.
	ResponseOpcode() (byte, bool)
	// EncodeParams flattens the request's parameters into payload bytes,
	// in declared order, multi-byte fields little-endian.
	EncodeParams() []byte
}

// BranchKind classifies how an instruction affects control flow during
// disassembly.
type BranchKind int

const (
	// NotBranch instructions fall through to the next instruction.
	NotBranch BranchKind = iota
	// ConditionalBranch instructions may fall through or jump; the
	// disassembler must explore both continuations.
	ConditionalBranch
	// UnconditionalBranch instructions always jump.
	UnconditionalBranch
)

// Instruction is satisfied by every generated request struct when decoded
// from in-program bytecode (the disassembler's view of the catalogue).
type Instruction interface {
	Request
	// Len is the number of bytes this instruction occupies, including its
	// opcode byte.
	Len() int
	// String renders the decoded instruction for a disassembly listing.
	String() string
	// Branch reports whether this instruction is a branch and, if so, its
	// kind and target address. pcAfter is the program counter immediately
	// after this instruction was decoded (i.e. offset+Len()).
	Branch(pcAfter int) (BranchKind, int)
}

// instructionDecoders is populated by catalogue.go's init().
var instructionDecoders = map[byte]func(section []byte, pc *int) (Instruction, error){}

// ParseInstruction decodes one instruction from section starting at *pc,
// advancing *pc past it. It fails with a KindInvalidOpcode error if
// section[*pc] has no catalogue entry with context.instruction set.
func ParseInstruction(section []byte, pc *int) (Instruction, error) {
	if *pc >= len(section) {
		return nil, rcxerr.New(rcxerr.KindInsufficientData, "")
	}
	b := section[*pc]
	dec, ok := instructionDecoders[b]
	if !ok {
		return nil, rcxerr.InvalidOpcode(b)
	}
	return dec(section, pc)
}

// --- little-endian flat-byte helpers shared by generated Encode/Decode ---

func putU8(buf []byte, v uint8) []byte  { return append(buf, v) }
func putI8(buf []byte, v int8) []byte   { return append(buf, byte(v)) }
func putU16(buf []byte, v uint16) []byte {
	return append(buf, byte(v), byte(v>>8))
}
func putI16(buf []byte, v int16) []byte { return putU16(buf, uint16(v)) }

func getU8(b []byte) uint8   { return b[0] }
func getI8(b []byte) int8    { return int8(b[0]) }
func getU16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }
func getI16(b []byte) int16  { return int16(getU16(b)) }

// --- bounds-checked in-program readers, used by instruction decoders ---

func readU8(section []byte, pc *int) (uint8, error) {
	if *pc+1 > len(section) {
		return 0, rcxerr.New(rcxerr.KindInsufficientData, "")
	}
	v := section[*pc]
	*pc++
	return v, nil
}

func readI8(section []byte, pc *int) (int8, error) {
	v, err := readU8(section, pc)
	return int8(v), err
}

func readU16(section []byte, pc *int) (uint16, error) {
	if *pc+2 > len(section) {
		return 0, rcxerr.New(rcxerr.KindInsufficientData, "")
	}
	v := getU16(section[*pc : *pc+2])
	*pc += 2
	return v, nil
}

func readI16(section []byte, pc *int) (int16, error) {
	v, err := readU16(section, pc)
	return int16(v), err
}

func readBytesN(section []byte, pc *int, n int) ([]byte, error) {
	if *pc+n > len(section) {
		return nil, rcxerr.New(rcxerr.KindInsufficientData, "")
	}
	v := make([]byte, n)
	copy(v, section[*pc:*pc+n])
	*pc += n
	return v, nil
}

// nearFarTarget implements the offset arithmetic shared by every branch
// family (see DESIGN.md, resolved open question 2). extension is 0 for
// near forms. pcOfOffset is the position of the offset byte itself:
// pcAfter-1 for near forms, pcAfter-2 for far forms (the extension byte
// after the offset byte has already been consumed by the time the caller
// knows pcAfter).
func nearFarTarget(offset, extension byte, pcOfOffset int) int {
	if offset&0x80 == 0 {
		return pcOfOffset + int(offset) + 128*int(extension)
	}
	return pcOfOffset + 128 - int(offset&0x7F) - 128*int(extension)
}
