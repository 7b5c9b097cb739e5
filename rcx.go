// Package rcx is the host-side control library for the LEGO Mindstorms RCX
// brick: a Brick session wraps a transport.Transport with the alternate-bit
// toggling and transmit pacing the tower link needs, and exposes the command
// catalogue as typed Go methods. Failed sends and receives are returned to
// the caller as errors; frames are not retried.
package rcx

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bricks-rs/rcx/frame"
	"github.com/bricks-rs/rcx/opcodes"
	"github.com/bricks-rs/rcx/rcxerr"
	"github.com/bricks-rs/rcx/transport"
)

// minTxInterval is the minimum spacing enforced between successive sends;
// the brick's IR receiver needs this much silence to distinguish frames.
const minTxInterval = 300 * time.Millisecond

// recvDeadline bounds how long Brick waits for a reply before giving up.
const recvDeadline = 1 * time.Second

// recvBufSize is generous for the largest declared response payload plus
// frame overhead; TransferData's echoed checksum and GetVersions' eight
// payload bytes are both well under it.
const recvBufSize = 256

// Brick is a session against one tower device. It is not safe for
// concurrent use: the alternate bit and last-transmit clock are session
// state, matching the brick's own single-outstanding-request protocol.
type Brick struct {
	t             transport.Transport
	useAlternate  bool
	lastTxTime    time.Time
	haveLastTx    bool
	log           *logrus.Entry
}

// Open opens path as a tower character device and returns a ready Brick
// session. log is optional; a nil log defaults to logrus.StandardLogger().
func Open(path string, log *logrus.Logger) (*Brick, error) {
	t, err := transport.Open(path)
	if err != nil {
		return nil, err
	}
	return New(t, log), nil
}

// New wraps an already-open transport in a Brick session. log is optional;
// a nil log defaults to logrus.StandardLogger(), so callers that don't
// care about logging don't need to construct one.
func New(t transport.Transport, log *logrus.Logger) *Brick {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Brick{
		t:   t,
		log: log.WithField("component", "rcx"),
	}
}

// Close releases the underlying transport.
func (b *Brick) Close() error { return b.t.Close() }

// pace blocks, if necessary, until at least minTxInterval has elapsed since
// the previous send.
func (b *Brick) pace() {
	if !b.haveLastTx {
		return
	}
	for time.Since(b.lastTxTime) < minTxInterval {
		time.Sleep(5 * time.Millisecond)
	}
}

// send encodes and writes one request frame, toggling the alternate-form
// bit for next time.
func (b *Brick) send(req opcodes.Request) error {
	b.pace()

	opcode := req.RequestOpcode()
	if b.useAlternate {
		opcode |= 0x08
	}
	b.useAlternate = !b.useAlternate

	buf := frame.Encode(opcode, req.EncodeParams())
	b.log.WithField("opcode", opcode).Debug("tx frame")
	if err := b.t.Write(buf); err != nil {
		return err
	}
	b.lastTxTime = time.Now()
	b.haveLastTx = true
	return nil
}

// recv reads and decodes one reply frame expecting nParams payload bytes.
func (b *Brick) recv(nParams int) (payload []byte, err error) {
	buf := make([]byte, recvBufSize)
	n, err := b.t.Read(buf, time.Now().Add(recvDeadline))
	if err != nil {
		return nil, err
	}
	_, payload, _, err = frame.Decode(buf[:n], nParams)
	return payload, err
}

// sendRecv sends req and, if it declares a response opcode, waits for and
// decodes the reply payload. Requests with no declared response (SetMessage,
// the branch family) return a nil payload and nil error once the send
// succeeds.
func (b *Brick) sendRecv(req opcodes.Request, nResponseParams int) ([]byte, error) {
	if err := b.send(req); err != nil {
		return nil, err
	}
	if _, ok := req.ResponseOpcode(); !ok {
		return nil, nil
	}
	return b.recv(nResponseParams)
}

// Alive checks that the brick responds at all.
func (b *Brick) Alive() error {
	_, err := b.sendRecv(opcodes.AliveRequest{}, 0)
	return err
}

// GetBatteryPower reads the battery voltage in millivolts.
func (b *Brick) GetBatteryPower() (uint16, error) {
	payload, err := b.sendRecv(opcodes.GetBatteryPowerRequest{}, 2)
	if err != nil {
		return 0, err
	}
	return opcodes.DecodeGetBatteryPowerResponse(payload).Millivolts, nil
}

// GetVersions reads ROM and firmware version numbers.
func (b *Brick) GetVersions() (opcodes.GetVersionsResponse, error) {
	req := opcodes.GetVersionsRequest{Key: opcodes.GetVersionsKey}
	payload, err := b.sendRecv(req, 8)
	if err != nil {
		return opcodes.GetVersionsResponse{}, err
	}
	return opcodes.DecodeGetVersionsResponse(payload), nil
}

// GetMemoryMap reads the brick's free-memory summary.
func (b *Brick) GetMemoryMap() (uint16, error) {
	payload, err := b.sendRecv(opcodes.GetMemoryMapRequest{}, 2)
	if err != nil {
		return 0, err
	}
	return opcodes.DecodeGetMemoryMapResponse(payload).Available, nil
}

// GetValue reads a value by source and argument.
func (b *Brick) GetValue(source, argument uint8) (uint16, error) {
	req := opcodes.GetValueRequest{Source: source, Argument: argument}
	payload, err := b.sendRecv(req, 2)
	if err != nil {
		return 0, err
	}
	return opcodes.DecodeGetValueResponse(payload).Value, nil
}

// StopAllTasks stops every running task.
func (b *Brick) StopAllTasks() error {
	_, err := b.sendRecv(opcodes.StopAllTasksRequest{}, 0)
	return err
}

// StartTask starts a downloaded task. task must be in 0..=9.
func (b *Brick) StartTask(task uint8) error {
	if task > 9 {
		return rcxerr.New(rcxerr.KindInvalidData, "task index out of range")
	}
	_, err := b.sendRecv(opcodes.StartTaskRequest{Task: task}, 0)
	return err
}

// StopTask stops a single task. task must be in 0..=9.
func (b *Brick) StopTask(task uint8) error {
	if task > 9 {
		return rcxerr.New(rcxerr.KindInvalidData, "task index out of range")
	}
	_, err := b.sendRecv(opcodes.StopTaskRequest{Task: task}, 0)
	return err
}

// SetSensorType sets the hardware type of a sensor. sensor must be in 0..=2.
func (b *Brick) SetSensorType(sensor, typ uint8) error {
	if sensor > 2 {
		return rcxerr.New(rcxerr.KindInvalidData, "sensor index out of range")
	}
	_, err := b.sendRecv(opcodes.SetSensorTypeRequest{Sensor: sensor, Type: typ}, 0)
	return err
}

// SetSensorMode sets the slope and mode of a sensor. sensor must be in 0..=2.
func (b *Brick) SetSensorMode(sensor, code uint8) error {
	if sensor > 2 {
		return rcxerr.New(rcxerr.KindInvalidData, "sensor index out of range")
	}
	_, err := b.sendRecv(opcodes.SetSensorModeRequest{Sensor: sensor, Code: code}, 0)
	return err
}

// SetTransmitterRange selects short (0) or long (1) range transmission.
func (b *Brick) SetTransmitterRange(rng uint8) error {
	_, err := b.sendRecv(opcodes.SetTransmitterRangeRequest{Range: rng}, 0)
	return err
}

// SetTime sets the brick's clock. hours must be in 0..=23, minutes 0..=59.
func (b *Brick) SetTime(hours, minutes uint8) error {
	if hours > 23 {
		return rcxerr.New(rcxerr.KindInvalidData, "hours out of range")
	}
	if minutes > 59 {
		return rcxerr.New(rcxerr.KindInvalidData, "minutes out of range")
	}
	_, err := b.sendRecv(opcodes.SetTimeRequest{Hours: hours, Minutes: minutes}, 0)
	return err
}

// MotorSelection is a bitmask of motors A, B, C, OR-combinable.
type MotorSelection uint8

const (
	MotorA MotorSelection = 0x01
	MotorB MotorSelection = 0x02
	MotorC MotorSelection = 0x04
)

// MotorDirection selects forward or backward for SetMotorDirection.
type MotorDirection uint8

const (
	MotorForward  MotorDirection = 0x80
	MotorBackward MotorDirection = 0x00
)

// SetMotorDirection sets the direction of a motor selection.
func (b *Brick) SetMotorDirection(motors MotorSelection, dir MotorDirection) error {
	code := uint8(motors) | uint8(dir)
	_, err := b.sendRecv(opcodes.SetMotorDirectionRequest{Code: code}, 0)
	return err
}

// MotorPowerState selects on, off, or float for SetMotorOnOff.
type MotorPowerState uint8

const (
	MotorOn    MotorPowerState = 0x80
	MotorOff   MotorPowerState = 0x40
	MotorFloat MotorPowerState = 0x00
)

// SetMotorOnOff turns a motor selection on, off, or float.
func (b *Brick) SetMotorOnOff(motors MotorSelection, state MotorPowerState) error {
	code := uint8(motors) | uint8(state)
	_, err := b.sendRecv(opcodes.SetMotorOnOffRequest{Code: code}, 0)
	return err
}

// sourceImmediate is the GetValue/SetMotorPower source selector meaning
// "argument is an immediate literal value", as opposed to reading a
// variable or sensor.
const sourceImmediate uint8 = 0

// SetMotorPower sets the power level of a motor selection to an immediate
// value in 0..=7.
func (b *Brick) SetMotorPower(motors MotorSelection, power uint8) error {
	if power > 7 {
		return rcxerr.New(rcxerr.KindInvalidData, "motor power out of range")
	}
	req := opcodes.SetMotorPowerRequest{Motors: uint8(motors), Source: sourceImmediate, Argument: power}
	_, err := b.sendRecv(req, 0)
	return err
}

// SetMotorPowerFrom sets the power level of a motor selection from an
// arbitrary GetValue source/argument pair (e.g. reading a variable),
// bypassing the immediate-value range check SetMotorPower applies.
func (b *Brick) SetMotorPowerFrom(motors MotorSelection, source, argument uint8) error {
	req := opcodes.SetMotorPowerRequest{Motors: uint8(motors), Source: source, Argument: argument}
	_, err := b.sendRecv(req, 0)
	return err
}

// SetDisplay sets the LCD display source and argument.
func (b *Brick) SetDisplay(source, argument uint8) error {
	_, err := b.sendRecv(opcodes.SetDisplayRequest{Source: source, Argument: argument}, 0)
	return err
}

// SetMessage sets the inter-brick message buffer. There is no response to
// wait for.
func (b *Brick) SetMessage(message uint8) error {
	_, err := b.sendRecv(opcodes.SetMessageRequest{Message: message}, 0)
	return err
}

// PlayTone plays a tone at frequency for duration.
func (b *Brick) PlayTone(frequency int16, duration int8) error {
	_, err := b.sendRecv(opcodes.PlayToneRequest{Frequency: frequency, Duration: duration}, 0)
	return err
}

// PlaySound plays one of the built-in system sounds.
func (b *Brick) PlaySound(sound uint8) error {
	_, err := b.sendRecv(opcodes.PlaySoundRequest{Sound: sound}, 0)
	return err
}

// SetPowerDownDelay sets the idle time, in minutes, before the brick powers
// itself off.
func (b *Brick) SetPowerDownDelay(minutes uint8) error {
	_, err := b.sendRecv(opcodes.SetPowerDownDelayRequest{Minutes: minutes}, 0)
	return err
}

// SetProgramNumber selects the current program slot. program must be in
// 0..=4.
func (b *Brick) SetProgramNumber(program uint8) error {
	if program > 4 {
		return rcxerr.New(rcxerr.KindInvalidData, "program number out of range")
	}
	_, err := b.sendRecv(opcodes.SetProgramNumberRequest{Program: program}, 0)
	return err
}

// PowerOff powers the brick off immediately.
func (b *Brick) PowerOff() error {
	_, err := b.sendRecv(opcodes.PowerOffRequest{}, 0)
	return err
}

// StartFirmwareDownload begins a firmware image transfer.
func (b *Brick) StartFirmwareDownload(length, checksum uint16) error {
	req := opcodes.StartFirmwareDownloadRequest{Length: length, Checksum: checksum}
	_, err := b.sendRecv(req, 0)
	return err
}

// StartSubroutineDownload begins a subroutine image transfer. subroutine
// must be in 0..=7.
func (b *Brick) StartSubroutineDownload(subroutine uint8) error {
	if subroutine > 7 {
		return rcxerr.New(rcxerr.KindInvalidData, "subroutine index out of range")
	}
	_, err := b.sendRecv(opcodes.StartSubroutineDownloadRequest{Subroutine: subroutine}, 0)
	return err
}

// StartTaskDownload begins a task image transfer. task must be in 0..=9.
func (b *Brick) StartTaskDownload(task uint8) error {
	if task > 9 {
		return rcxerr.New(rcxerr.KindInvalidData, "task index out of range")
	}
	_, err := b.sendRecv(opcodes.StartTaskDownloadRequest{Task: task}, 0)
	return err
}

// TransferData transfers one chunk of a download in progress and returns
// the brick's echoed checksum.
func (b *Brick) TransferData(sequence uint8, data []byte) (uint8, error) {
	req := opcodes.TransferDataRequest{Sequence: sequence, Data: data}
	payload, err := b.sendRecv(req, 1)
	if err != nil {
		return 0, err
	}
	return opcodes.DecodeTransferDataResponse(payload).Checksum, nil
}

// UnlockFirmware unlocks firmware-download mode. The brick's reply payload
// must equal opcodes.UnlockFirmwareExpectedAck exactly; any other reply,
// including a short one, is reported as a KindBrickError.
func (b *Brick) UnlockFirmware(a, c2, c3 uint16) error {
	req := opcodes.UnlockFirmwareRequest{A: a, B: c2, C: c3}
	if err := b.send(req); err != nil {
		return err
	}
	buf := make([]byte, recvBufSize)
	n, err := b.t.Read(buf, time.Now().Add(recvDeadline))
	if err != nil {
		return err
	}
	got := buf[:n]
	want := opcodes.UnlockFirmwareExpectedAck
	if string(got) != string(want) {
		return rcxerr.New(rcxerr.KindBrickError, "unlock firmware: unexpected acknowledgement")
	}
	return nil
}
