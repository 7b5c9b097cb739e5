package opcodes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bricks-rs/rcx/opcodes"
)

func TestPlaySoundEncodeParams(t *testing.T) {
	req := opcodes.PlaySoundRequest{Sound: 2}
	assert.Equal(t, byte(0x51), req.RequestOpcode())
	assert.Equal(t, []byte{0x02}, req.EncodeParams())
}

func TestGetBatteryPowerResponseDecode(t *testing.T) {
	resp := opcodes.DecodeGetBatteryPowerResponse([]byte{0x43, 0x1E})
	assert.Equal(t, uint16(7747), resp.Millivolts)
}

func TestGetVersionsResponseString(t *testing.T) {
	resp := opcodes.GetVersionsResponse{
		Rom:      [2]uint16{768, 256},
		Firmware: [2]uint16{768, 515},
	}
	assert.Equal(t, "ROM: 3.1; FW: 3.302", resp.String())
}

func TestBranchAlwaysNearTargetPositive(t *testing.T) {
	section := make([]byte, 17)
	section[15] = 0xA0
	section[16] = 0x05
	pc := 15

	instr, err := opcodes.ParseInstruction(section, &pc)
	require.NoError(t, err)
	assert.Equal(t, 17, pc)

	kind, target := instr.Branch(pc)
	assert.Equal(t, opcodes.UnconditionalBranch, kind)
	assert.Equal(t, 0x15, target)
}

func TestBranchAlwaysNearTargetNegative(t *testing.T) {
	section := make([]byte, 17)
	section[15] = 0xA0
	section[16] = 0x85
	pc := 15

	instr, err := opcodes.ParseInstruction(section, &pc)
	require.NoError(t, err)

	kind, target := instr.Branch(pc)
	assert.Equal(t, opcodes.UnconditionalBranch, kind)
	assert.Equal(t, 0x8B, target)
}

func TestParseInstructionUnknownOpcode(t *testing.T) {
	section := []byte{0xFF}
	pc := 0
	_, err := opcodes.ParseInstruction(section, &pc)
	require.Error(t, err)
}

func TestSetMotorOnOffRoundTrip(t *testing.T) {
	section := []byte{0x21, 0x81}
	pc := 0
	instr, err := opcodes.ParseInstruction(section, &pc)
	require.NoError(t, err)
	req := instr.(opcodes.SetMotorOnOffRequest)
	assert.Equal(t, uint8(0x81), req.Code)
	assert.Equal(t, 2, pc)
	assert.Equal(t, section[1:], req.EncodeParams())
}
