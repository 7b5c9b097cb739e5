// Package frame implements the wire-frame codec (component B): header
// bytes, complement-paired payload, and the trailing checksum pair.
package frame

import "github.com/bricks-rs/rcx/rcxerr"

// Header is the two-byte preamble of every host→brick frame.
var Header = [2]byte{0x55, 0xFF}

// isSkippable reports whether b is part of the inbound-frame preamble skip
// set {0x00, 0x55, 0xFF}.
func isSkippable(b byte) bool {
	return b == 0x00 || b == 0x55 || b == 0xFF
}

// Encode builds a complete outbound frame: 55 FF, opcode ~opcode, each
// payload byte paired with its complement, then checksum ~checksum, where
// checksum = (opcode + Σpayload) mod 256. opcode must already carry the
// alternate-form bit if applicable; Encode itself is stateless.
func Encode(opcode byte, payload []byte) []byte {
	out := make([]byte, 0, 4+2*(1+len(payload)))
	out = append(out, Header[0], Header[1])
	out = append(out, opcode, ^opcode)

	sum := opcode
	for _, b := range payload {
		out = append(out, b, ^b)
		sum += b
	}
	out = append(out, sum, ^sum)
	return out
}

// Decode parses an inbound frame out of buf, which may be prefixed by
// arbitrary preamble bytes drawn from {0x00, 0x55, 0xFF}. nParams is the
// number of logical payload bytes the caller expects to follow the opcode
// (known from the opcode's catalogue entry). Decode returns the opcode
// byte, the nParams payload bytes, and the number of bytes of buf consumed
// (from the start of buf, including any skipped preamble) so the caller
// can detect trailing garbage if it cares to.
//
// Every logical byte, including the opcode, is read as a complement pair
// (b, ~b); a pair failing that invariant is a checksum error. The running
// checksum accumulates the accepted b values starting from the opcode and
// must match the final pair.
func Decode(buf []byte, nParams int) (opcode byte, payload []byte, consumed int, err error) {
	i := 0
	for i < len(buf) && isSkippable(buf[i]) {
		i++
	}

	need := 1 + nParams + 1 // opcode + params + checksum, each a pair
	if len(buf)-i < need*2 {
		return 0, nil, 0, rcxerr.New(rcxerr.KindInsufficientData, "")
	}

	readPair := func() (byte, error) {
		b, c := buf[i], buf[i+1]
		i += 2
		if c != ^b {
			return 0, rcxerr.New(rcxerr.KindChecksum, "complement mismatch")
		}
		return b, nil
	}

	opcode, err = readPair()
	if err != nil {
		return 0, nil, 0, err
	}
	sum := opcode

	payload = make([]byte, nParams)
	for k := 0; k < nParams; k++ {
		b, perr := readPair()
		if perr != nil {
			return 0, nil, 0, perr
		}
		payload[k] = b
		sum += b
	}

	checksum, err := readPair()
	if err != nil {
		return 0, nil, 0, err
	}
	if checksum != sum {
		return 0, nil, 0, rcxerr.New(rcxerr.KindChecksum, "sum mismatch")
	}

	return opcode, payload, i, nil
}
