package frame_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bricks-rs/rcx/frame"
	"github.com/bricks-rs/rcx/rcxerr"
)

func TestEncodePlaySound(t *testing.T) {
	got := frame.Encode(0x51, []byte{0x02})
	want := []byte{0x55, 0xFF, 0x51, 0xAE, 0x02, 0xFD, 0x53, 0xAC}
	assert.Equal(t, want, got)
}

func TestDecodeGetBatteryPower(t *testing.T) {
	buf := []byte{0x55, 0xFF, 0x00, 0xCF, 0x30, 0x43, 0xBC, 0x1E, 0xE1, 0x30, 0xCF}
	opcode, payload, consumed, err := frame.Decode(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, byte(0xCF), opcode)
	assert.Equal(t, []byte{0x43, 0x1E}, payload)
	assert.Equal(t, len(buf), consumed)
}

func TestRoundTrip(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	buf := frame.Encode(0x12, payload)
	opcode, got, _, err := frame.Decode(buf, len(payload))
	require.NoError(t, err)
	assert.Equal(t, byte(0x12), opcode)
	assert.Equal(t, payload, got)
}

func TestDecodeFlippedPayloadByteIsChecksumError(t *testing.T) {
	payload := []byte{0x01, 0x02}
	buf := frame.Encode(0x12, payload)
	buf[4] ^= 0xFF // flip the first payload byte, leaving its complement as is
	_, _, _, err := frame.Decode(buf, len(payload))
	require.Error(t, err)
	assert.True(t, rcxerr.Is(err, rcxerr.KindChecksum))
}

func TestDecodeFlippedChecksumByteIsChecksumError(t *testing.T) {
	payload := []byte{0x01, 0x02}
	buf := frame.Encode(0x12, payload)
	buf[len(buf)-2] ^= 0x01
	buf[len(buf)-1] = ^buf[len(buf)-2]
	_, _, _, err := frame.Decode(buf, len(payload))
	require.Error(t, err)
	assert.True(t, rcxerr.Is(err, rcxerr.KindChecksum))
}

func TestDecodeInsufficientData(t *testing.T) {
	_, _, _, err := frame.Decode([]byte{0x55, 0xFF}, 2)
	require.Error(t, err)
	assert.True(t, rcxerr.Is(err, rcxerr.KindInsufficientData))
}

func TestDecodeSkipsLeadingPreamble(t *testing.T) {
	buf := frame.Encode(0x10, nil)
	withJunk := append([]byte{0x00, 0x55, 0xFF, 0x00}, buf...)
	opcode, _, _, err := frame.Decode(withJunk, 0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x10), opcode)
}
