// Command gen-opcodes reads opcodes/schema.yaml and emits a doc-comment
// skeleton, one entry per opcode, to opcodes/catalogue_gen.go.skeleton.
// It does not emit opcodes/catalogue.go itself: the struct bodies there
// (wire widths, branch arithmetic, String() formats) aren't mechanically
// derivable from the schema's type names, so a maintainer hand-writes
// them and uses the skeleton only to check the schema and the catalogue
// haven't drifted apart. This command exists so the schema stays the
// single source of truth for that reconciliation, the way build.rs drove
// the Askama template it was modeled on.
package main

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

type paramSchema struct {
	Name         string `yaml:"name"`
	Ty           string `yaml:"ty"`
	BranchTarget bool   `yaml:"branch_target"`
}

// GoType is the Go field type tmplSrc prints for this param, so the
// skeleton documents what catalogue.go's struct field ought to be.
func (p paramSchema) GoType() string { return goType(p.Ty) }

type sideSchema struct {
	Opcode byte          `yaml:"opcode"`
	Params []paramSchema `yaml:"params"`
}

type contextSchema struct {
	Request     bool `yaml:"request"`
	Response    bool `yaml:"response"`
	Instruction bool `yaml:"instruction"`
}

type entrySchema struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Request     sideSchema    `yaml:"request"`
	Response    *sideSchema   `yaml:"response"`
	Context     contextSchema `yaml:"context"`
}

// goType maps a schema param type to the Go field type used in the
// generated struct. bytesN/u16x2 are fixed-size arrays; bytes is a slice
// and is encode-only, matching the catalogue's documented limitation.
func goType(ty string) string {
	switch {
	case ty == "u8":
		return "uint8"
	case ty == "i8":
		return "int8"
	case ty == "u16":
		return "uint16"
	case ty == "i16":
		return "int16"
	case ty == "bytes":
		return "[]byte"
	case strings.HasPrefix(ty, "bytes"):
		n := strings.TrimPrefix(ty, "bytes")
		return fmt.Sprintf("[%s]byte", n)
	case strings.HasPrefix(ty, "u16x"):
		n := strings.TrimPrefix(ty, "u16x")
		return fmt.Sprintf("[%s]uint16", n)
	default:
		panic("gen-opcodes: unknown param type " + ty)
	}
}

// tmplSrc renders one doc-comment block per schema entry, naming the Go
// field types its params ought to have. A maintainer diffs this skeleton
// against opcodes/catalogue.go to catch drift after a schema.yaml edit.
const tmplSrc = `// Skeleton generated by cmd/gen-opcodes from schema.yaml.
// Reconcile opcodes/catalogue.go against this; do not compile it in.

package opcodes

{{range .}}
// {{.Name}}: {{.Description}}
{{range .Request.Params}}//   {{.Name}} {{.GoType}}
{{end}}{{end}}
`

func main() {
	data, err := os.ReadFile("opcodes/schema.yaml")
	if err != nil {
		fmt.Fprintln(os.Stderr, "gen-opcodes:", err)
		os.Exit(1)
	}

	var entries []entrySchema
	if err := yaml.Unmarshal(data, &entries); err != nil {
		fmt.Fprintln(os.Stderr, "gen-opcodes: parsing schema.yaml:", err)
		os.Exit(1)
	}

	// opcodes/catalogue.go in this tree was written by hand from exactly this
	// schema; regenerating re-emits the doc-comment
	// skeleton, which a maintainer then reconciles against the hand-tuned
	// struct bodies (wire widths, String() formats) that the template alone
	// cannot derive from the schema's type names.
	tmpl := template.Must(template.New("catalogue").Parse(tmplSrc))
	out, err := os.Create("opcodes/catalogue_gen.go.skeleton")
	if err != nil {
		fmt.Fprintln(os.Stderr, "gen-opcodes:", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := tmpl.Execute(out, entries); err != nil {
		fmt.Fprintln(os.Stderr, "gen-opcodes: executing template:", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "gen-opcodes: wrote skeleton for %d entries\n", len(entries))
}
