// Package disasm implements the bytecode disassembler: a linear sweep of a
// Task or Subroutine section that follows branches, and a listing printer
// over a parsed image.
package disasm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bricks-rs/rcx/image"
	"github.com/bricks-rs/rcx/opcodes"
)

// Step is one instruction decoded during a Walk, recorded at the section
// offset it starts at. BranchKind/BranchTarget are captured at decode
// time, when pc correctly reflects the position right after the
// instruction's offset byte(s); Instr.Branch cannot be called again later
// with a meaningful pcAfter once the sweep has moved on.
type Step struct {
	Offset       int
	Instr        opcodes.Instruction
	BranchKind   opcodes.BranchKind
	BranchTarget int
}

// Walk sweeps section following branch targets, returning one Step per
// offset it reaches, ordered by offset. Offsets already seen are skipped,
// not re-decoded, matching the seen-map-plus-worklist scheme: a branch
// target that lands inside an already-decoded instruction never forks a
// second decode of the same bytes. log receives a warning for every
// offset whose bytes fail to decode; a nil log disables that reporting,
// the same way disasm_code_section's eprintln! was unconditional but
// callers here can choose to silence it.
func Walk(section []byte, log logrus.FieldLogger) []Step {
	seen := map[int]Step{}
	var worklist []int
	pc := 0

	for {
		// pc past the end (a branch landing exactly on len(section), or a
		// linear sweep running off the section) and an already-decoded
		// offset are both dead ends for *this* pc; either way, fall back
		// to whatever fallthrough continuation conditional branches left
		// on the worklist rather than stopping the whole sweep early.
		if pc >= len(section) {
			if len(worklist) == 0 {
				break
			}
			pc = worklist[len(worklist)-1]
			worklist = worklist[:len(worklist)-1]
			continue
		}
		if _, ok := seen[pc]; ok {
			if len(worklist) == 0 {
				break
			}
			pc = worklist[len(worklist)-1]
			worklist = worklist[:len(worklist)-1]
			continue
		}

		start := pc
		instr, err := opcodes.ParseInstruction(section, &pc)
		if err != nil {
			if log != nil {
				log.WithError(err).WithField("offset", fmt.Sprintf("0x%02x", start)).
					Warn("disasm: decode failed")
			}
			if len(worklist) == 0 {
				break
			}
			pc = worklist[len(worklist)-1]
			worklist = worklist[:len(worklist)-1]
			continue
		}

		kind, target := instr.Branch(pc)
		seen[start] = Step{Offset: start, Instr: instr, BranchKind: kind, BranchTarget: target}

		switch kind {
		case opcodes.UnconditionalBranch:
			pc = target
		case opcodes.ConditionalBranch:
			worklist = append(worklist, pc)
			pc = target
		case opcodes.NotBranch:
			// pc already advanced past the instruction by ParseInstruction.
		}
	}

	out := make([]Step, 0, len(seen))
	for _, d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// SectionFilter restricts Print to sections matching every constraint it
// enables. The zero value matches every section, which is what rcxctl's
// disasm command passes when neither --section nor --type was given.
type SectionFilter struct {
	Number    uint8
	HasNumber bool
	Type      image.SectionType
	HasType   bool
}

func (f SectionFilter) matches(s image.Section) bool {
	if f.HasNumber && s.Number != f.Number {
		return false
	}
	if f.HasType && s.Type != f.Type {
		return false
	}
	return true
}

// Print renders a disassembly listing of img, labeled with name (the
// source file path or similar), limited to the sections filter matches.
func Print(name string, img *image.Image, filter SectionFilter, log logrus.FieldLogger) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Disassembly of `%s`\n", name)
	printHeader(img, &b)
	printSymbolTable(img, &b)
	printSections(img, &b, filter, log)
	return b.String()
}

func printHeader(img *image.Image, b *strings.Builder) {
	fmt.Fprintf(b, "%s version %x targeting %s\n", img.Signature[:], img.Version, img.TargetType)
}

func printSymbolTable(img *image.Image, b *strings.Builder) {
	b.WriteString(".SYMBOLS:\n")
	for _, sym := range img.Symbols {
		fmt.Fprintf(b, "  %s %d %q\n", sym.Type, sym.Index, sym.Name)
	}
}

func printSections(img *image.Image, b *strings.Builder, filter SectionFilter, log logrus.FieldLogger) {
	for _, section := range img.Sections {
		if !filter.matches(section) {
			continue
		}
		printSection(section, img, b, log)
	}
}

func printSection(section image.Section, img *image.Image, b *strings.Builder, log logrus.FieldLogger) {
	var name string
	for _, sym := range img.Symbols {
		if section.Type == image.SectionTask && sym.Type == image.SymbolTask && sym.Index == section.Number {
			name = sym.Name
			break
		}
		if section.Type == image.SectionSubroutine && sym.Type == image.SymbolSub && sym.Index == section.Number {
			name = sym.Name
			break
		}
	}
	label := ""
	if name != "" {
		label = fmt.Sprintf("%q", name)
	}
	fmt.Fprintf(b, "\n.SECTION %s\n", label)

	if !section.Type.IsCode() {
		fmt.Fprintf(b, "  %x\n", section.Data)
		return
	}

	for _, d := range Walk(section.Data, log) {
		target := ""
		if d.BranchKind != opcodes.NotBranch {
			target = fmt.Sprintf(" => %02x", d.BranchTarget)
		}
		raw := encodeInstructionBytes(d.Instr)
		fmt.Fprintf(b, "%02x: %02x %s%s    %x\n",
			d.Offset, d.Instr.RequestOpcode(), d.Instr.String(), target, raw)
	}
}

// encodeInstructionBytes reconstructs the in-program byte sequence for an
// instruction for the listing's trailing hex column: opcode followed by
// its flattened parameters.
func encodeInstructionBytes(instr opcodes.Instruction) []byte {
	out := []byte{instr.RequestOpcode()}
	return append(out, instr.EncodeParams()...)
}
