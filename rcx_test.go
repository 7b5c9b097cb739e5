package rcx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bricks-rs/rcx"
	"github.com/bricks-rs/rcx/frame"
	"github.com/bricks-rs/rcx/rcxerr"
)

// fakeTransport is an in-memory transport.Transport that records every
// write and serves pre-seeded replies to Read.
type fakeTransport struct {
	writes  [][]byte
	replies [][]byte
}

func (f *fakeTransport) Write(b []byte) error {
	cp := append([]byte(nil), b...)
	f.writes = append(f.writes, cp)
	return nil
}

func (f *fakeTransport) Read(buf []byte, _ time.Time) (int, error) {
	if len(f.replies) == 0 {
		return 0, rcxerr.New(rcxerr.KindTimeout, "")
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	n := copy(buf, reply)
	return n, nil
}

func (f *fakeTransport) Close() error { return nil }

func TestAlternateBitTogglesAcrossSends(t *testing.T) {
	ft := &fakeTransport{
		replies: [][]byte{
			frame.Encode(0x18, nil),
			frame.Encode(0x10, nil),
			frame.Encode(0x18, nil),
		},
	}
	b := rcx.New(ft, nil)

	require.NoError(t, b.Alive())
	require.NoError(t, b.Alive())
	require.NoError(t, b.Alive())

	require.Len(t, ft.writes, 3)
	assert.Equal(t, byte(0x10), ft.writes[0][2])
	assert.Equal(t, byte(0x18), ft.writes[1][2])
	assert.Equal(t, byte(0x10), ft.writes[2][2])
}

func TestSetMotorPowerValidatesBeforeSend(t *testing.T) {
	ft := &fakeTransport{}
	b := rcx.New(ft, nil)

	err := b.SetMotorPower(rcx.MotorA, 9)
	require.Error(t, err)
	assert.True(t, rcxerr.Is(err, rcxerr.KindInvalidData))
	assert.Empty(t, ft.writes)
}

func TestGetBatteryPower(t *testing.T) {
	ft := &fakeTransport{
		replies: [][]byte{frame.Encode(0xCF, []byte{0x43, 0x1E})},
	}
	b := rcx.New(ft, nil)

	mv, err := b.GetBatteryPower()
	require.NoError(t, err)
	assert.Equal(t, uint16(7747), mv)
}

func TestUnlockFirmwareAcceptsExpectedAck(t *testing.T) {
	ft := &fakeTransport{
		replies: [][]byte{[]byte("Do you byte, when I knock?")},
	}
	b := rcx.New(ft, nil)

	require.NoError(t, b.UnlockFirmware(1, 2, 3))
}

func TestUnlockFirmwareRejectsWrongAck(t *testing.T) {
	ft := &fakeTransport{
		replies: [][]byte{[]byte("nope")},
	}
	b := rcx.New(ft, nil)

	err := b.UnlockFirmware(1, 2, 3)
	require.Error(t, err)
	assert.True(t, rcxerr.Is(err, rcxerr.KindBrickError))
}

func TestPacingEnforcesMinimumInterval(t *testing.T) {
	ft := &fakeTransport{
		replies: [][]byte{
			frame.Encode(0x18, nil),
			frame.Encode(0x10, nil),
		},
	}
	b := rcx.New(ft, nil)

	start := time.Now()
	require.NoError(t, b.Alive())
	require.NoError(t, b.Alive())
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 300*time.Millisecond)
}
