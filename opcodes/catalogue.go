// catalogue.go is the opcode catalogue: one request struct (and response
// struct, where declared) per entry of schema.yaml, plus the instruction
// decoders registered in init(). It is hand-written, not generated —
// cmd/gen-opcodes reads the same schema.yaml and emits a doc-comment
// skeleton for a maintainer to reconcile this file against, but it does
// not produce this file's struct bodies, so there is no "DO NOT EDIT" to
// claim here.

package opcodes

import "fmt"

func init() {
	instructionDecoders[0x11] = decodeStopAllTasksInstruction
	instructionDecoders[0x12] = decodeGetValueInstruction
	instructionDecoders[0x13] = decodeSetSensorTypeInstruction
	instructionDecoders[0x14] = decodeSetSensorModeInstruction
	instructionDecoders[0x16] = decodeSetTransmitterRangeInstruction
	instructionDecoders[0x17] = decodeSetTimeInstruction
	instructionDecoders[0x20] = decodeStartTaskInstruction
	instructionDecoders[0x21] = decodeSetMotorOnOffInstruction
	instructionDecoders[0x22] = decodeStopTaskInstruction
	instructionDecoders[0x23] = decodePlayToneInstruction
	instructionDecoders[0x36] = decodeSetDisplayInstruction
	instructionDecoders[0x40] = decodeSetMotorPowerInstruction
	instructionDecoders[0x41] = decodeSetPowerDownDelayInstruction
	instructionDecoders[0x42] = decodeSetProgramNumberInstruction
	instructionDecoders[0x51] = decodePlaySoundInstruction
	instructionDecoders[0xE1] = decodeSetMotorDirectionInstruction
	instructionDecoders[0xA0] = decodeBranchAlwaysNearInstruction
	instructionDecoders[0xA1] = decodeBranchAlwaysFarInstruction
	instructionDecoders[0xA2] = decodeTestAndBranchNearInstruction
	instructionDecoders[0xA3] = decodeTestAndBranchFarInstruction
	instructionDecoders[0xA4] = decodeDecrementLoopCounterNearInstruction
	instructionDecoders[0xA5] = decodeDecrementLoopCounterFarInstruction
}

// --- Alive ---

type AliveRequest struct{}

func (r AliveRequest) RequestOpcode() byte            { return 0x10 }
func (r AliveRequest) ResponseOpcode() (byte, bool)   { return 0x18, true }
func (r AliveRequest) EncodeParams() []byte           { return nil }

type AliveResponse struct{}

func DecodeAliveResponse(payload []byte) AliveResponse { return AliveResponse{} }

// --- StopAllTasks ---

type StopAllTasksRequest struct{}

func (r StopAllTasksRequest) RequestOpcode() byte          { return 0x11 }
func (r StopAllTasksRequest) ResponseOpcode() (byte, bool) { return 0x19, true }
func (r StopAllTasksRequest) EncodeParams() []byte         { return nil }
func (r StopAllTasksRequest) Len() int                     { return 1 }
func (r StopAllTasksRequest) String() string                { return "STOPALLTASKS" }
func (r StopAllTasksRequest) Branch(int) (BranchKind, int)  { return NotBranch, 0 }

func decodeStopAllTasksInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	return StopAllTasksRequest{}, nil
}

type StopAllTasksResponse struct{}

func DecodeStopAllTasksResponse(payload []byte) StopAllTasksResponse { return StopAllTasksResponse{} }

// --- GetValue ---

type GetValueRequest struct {
	Source   uint8
	Argument uint8
}

func (r GetValueRequest) RequestOpcode() byte          { return 0x12 }
func (r GetValueRequest) ResponseOpcode() (byte, bool) { return 0x1A, true }
func (r GetValueRequest) EncodeParams() []byte {
	buf := putU8(nil, r.Source)
	return putU8(buf, r.Argument)
}
func (r GetValueRequest) Len() int { return 3 }
func (r GetValueRequest) String() string {
	return fmt.Sprintf("GETVALUE %d %d", r.Source, r.Argument)
}
func (r GetValueRequest) Branch(int) (BranchKind, int) { return NotBranch, 0 }

func decodeGetValueInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	source, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	argument, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return GetValueRequest{Source: source, Argument: argument}, nil
}

type GetValueResponse struct {
	Value uint16
}

func DecodeGetValueResponse(payload []byte) GetValueResponse {
	return GetValueResponse{Value: getU16(payload[0:2])}
}

// --- SetSensorType ---

type SetSensorTypeRequest struct {
	Sensor uint8
	Type   uint8
}

func (r SetSensorTypeRequest) RequestOpcode() byte          { return 0x13 }
func (r SetSensorTypeRequest) ResponseOpcode() (byte, bool) { return 0x1B, true }
func (r SetSensorTypeRequest) EncodeParams() []byte {
	buf := putU8(nil, r.Sensor)
	return putU8(buf, r.Type)
}
func (r SetSensorTypeRequest) Len() int { return 3 }
func (r SetSensorTypeRequest) String() string {
	return fmt.Sprintf("SETSENSORTYPE %d %d", r.Sensor, r.Type)
}
func (r SetSensorTypeRequest) Branch(int) (BranchKind, int) { return NotBranch, 0 }

func decodeSetSensorTypeInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	sensor, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	typ, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return SetSensorTypeRequest{Sensor: sensor, Type: typ}, nil
}

type SetSensorTypeResponse struct{}

func DecodeSetSensorTypeResponse(payload []byte) SetSensorTypeResponse { return SetSensorTypeResponse{} }

// --- SetSensorMode ---

type SetSensorModeRequest struct {
	Sensor uint8
	Code   uint8
}

func (r SetSensorModeRequest) RequestOpcode() byte          { return 0x14 }
func (r SetSensorModeRequest) ResponseOpcode() (byte, bool) { return 0x1C, true }
func (r SetSensorModeRequest) EncodeParams() []byte {
	buf := putU8(nil, r.Sensor)
	return putU8(buf, r.Code)
}
func (r SetSensorModeRequest) Len() int { return 3 }
func (r SetSensorModeRequest) String() string {
	return fmt.Sprintf("SETSENSORMODE %d %d", r.Sensor, r.Code)
}
func (r SetSensorModeRequest) Branch(int) (BranchKind, int) { return NotBranch, 0 }

func decodeSetSensorModeInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	sensor, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	code, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return SetSensorModeRequest{Sensor: sensor, Code: code}, nil
}

type SetSensorModeResponse struct{}

func DecodeSetSensorModeResponse(payload []byte) SetSensorModeResponse { return SetSensorModeResponse{} }

// --- GetVersions ---

// GetVersionsKey is the fixed literal request key. Its rationale is not
// documented anywhere in the source this was distilled from; see
// DESIGN.md open question 3.
var GetVersionsKey = [5]byte{1, 3, 5, 7, 11}

type GetVersionsRequest struct {
	Key [5]byte
}

func (r GetVersionsRequest) RequestOpcode() byte          { return 0x15 }
func (r GetVersionsRequest) ResponseOpcode() (byte, bool) { return 0x1D, true }
func (r GetVersionsRequest) EncodeParams() []byte {
	return append([]byte(nil), r.Key[:]...)
}

type GetVersionsResponse struct {
	Rom      [2]uint16
	Firmware [2]uint16
}

func DecodeGetVersionsResponse(payload []byte) GetVersionsResponse {
	return GetVersionsResponse{
		Rom:      [2]uint16{getU16(payload[0:2]), getU16(payload[2:4])},
		Firmware: [2]uint16{getU16(payload[4:6]), getU16(payload[6:8])},
	}
}

func swap16(v uint16) uint16 { return v<<8 | v>>8 }

// String renders version numbers the way the brick's own firmware-version
// convention is normally displayed: each field byte-swapped then printed
// as unpadded lowercase hex, major.minor.
func (r GetVersionsResponse) String() string {
	return fmt.Sprintf("ROM: %x.%x; FW: %x.%x",
		swap16(r.Rom[0]), swap16(r.Rom[1]), swap16(r.Firmware[0]), swap16(r.Firmware[1]))
}

// --- SetTransmitterRange ---

type SetTransmitterRangeRequest struct {
	Range uint8
}

func (r SetTransmitterRangeRequest) RequestOpcode() byte          { return 0x16 }
func (r SetTransmitterRangeRequest) ResponseOpcode() (byte, bool) { return 0x1E, true }
func (r SetTransmitterRangeRequest) EncodeParams() []byte         { return putU8(nil, r.Range) }
func (r SetTransmitterRangeRequest) Len() int                     { return 2 }
func (r SetTransmitterRangeRequest) String() string {
	return fmt.Sprintf("SETTXRANGE %d", r.Range)
}
func (r SetTransmitterRangeRequest) Branch(int) (BranchKind, int) { return NotBranch, 0 }

func decodeSetTransmitterRangeInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	rng, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return SetTransmitterRangeRequest{Range: rng}, nil
}

type SetTransmitterRangeResponse struct{}

func DecodeSetTransmitterRangeResponse(payload []byte) SetTransmitterRangeResponse {
	return SetTransmitterRangeResponse{}
}

// --- SetTime ---

type SetTimeRequest struct {
	Hours   uint8
	Minutes uint8
}

func (r SetTimeRequest) RequestOpcode() byte          { return 0x17 }
func (r SetTimeRequest) ResponseOpcode() (byte, bool) { return 0x1F, true }
func (r SetTimeRequest) EncodeParams() []byte {
	buf := putU8(nil, r.Hours)
	return putU8(buf, r.Minutes)
}
func (r SetTimeRequest) Len() int { return 3 }
func (r SetTimeRequest) String() string {
	return fmt.Sprintf("SETTIME %d:%02d", r.Hours, r.Minutes)
}
func (r SetTimeRequest) Branch(int) (BranchKind, int) { return NotBranch, 0 }

func decodeSetTimeInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	hours, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	minutes, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return SetTimeRequest{Hours: hours, Minutes: minutes}, nil
}

type SetTimeResponse struct{}

func DecodeSetTimeResponse(payload []byte) SetTimeResponse { return SetTimeResponse{} }

// --- StartTask ---

type StartTaskRequest struct {
	Task uint8
}

func (r StartTaskRequest) RequestOpcode() byte          { return 0x20 }
func (r StartTaskRequest) ResponseOpcode() (byte, bool) { return 0x28, true }
func (r StartTaskRequest) EncodeParams() []byte         { return putU8(nil, r.Task) }
func (r StartTaskRequest) Len() int                     { return 2 }
func (r StartTaskRequest) String() string               { return fmt.Sprintf("STARTTASK %d", r.Task) }
func (r StartTaskRequest) Branch(int) (BranchKind, int)  { return NotBranch, 0 }

func decodeStartTaskInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	task, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return StartTaskRequest{Task: task}, nil
}

type StartTaskResponse struct{}

func DecodeStartTaskResponse(payload []byte) StartTaskResponse { return StartTaskResponse{} }

// --- SetMotorOnOff ---

type SetMotorOnOffRequest struct {
	Code uint8
}

func (r SetMotorOnOffRequest) RequestOpcode() byte          { return 0x21 }
func (r SetMotorOnOffRequest) ResponseOpcode() (byte, bool) { return 0x29, true }
func (r SetMotorOnOffRequest) EncodeParams() []byte         { return putU8(nil, r.Code) }
func (r SetMotorOnOffRequest) Len() int                     { return 2 }
func (r SetMotorOnOffRequest) String() string {
	return fmt.Sprintf("SETMOTORONOFF 0x%02X", r.Code)
}
func (r SetMotorOnOffRequest) Branch(int) (BranchKind, int) { return NotBranch, 0 }

func decodeSetMotorOnOffInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	code, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return SetMotorOnOffRequest{Code: code}, nil
}

type SetMotorOnOffResponse struct{}

func DecodeSetMotorOnOffResponse(payload []byte) SetMotorOnOffResponse { return SetMotorOnOffResponse{} }

// --- StopTask ---

type StopTaskRequest struct {
	Task uint8
}

func (r StopTaskRequest) RequestOpcode() byte          { return 0x22 }
func (r StopTaskRequest) ResponseOpcode() (byte, bool) { return 0x2A, true }
func (r StopTaskRequest) EncodeParams() []byte         { return putU8(nil, r.Task) }
func (r StopTaskRequest) Len() int                     { return 2 }
func (r StopTaskRequest) String() string               { return fmt.Sprintf("STOPTASK %d", r.Task) }
func (r StopTaskRequest) Branch(int) (BranchKind, int)  { return NotBranch, 0 }

func decodeStopTaskInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	task, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return StopTaskRequest{Task: task}, nil
}

type StopTaskResponse struct{}

func DecodeStopTaskResponse(payload []byte) StopTaskResponse { return StopTaskResponse{} }

// --- PlayTone ---

type PlayToneRequest struct {
	Frequency int16
	Duration  int8
}

func (r PlayToneRequest) RequestOpcode() byte          { return 0x23 }
func (r PlayToneRequest) ResponseOpcode() (byte, bool) { return 0x2B, true }
func (r PlayToneRequest) EncodeParams() []byte {
	buf := putI16(nil, r.Frequency)
	return putI8(buf, r.Duration)
}
func (r PlayToneRequest) Len() int { return 4 }
func (r PlayToneRequest) String() string {
	return fmt.Sprintf("PLAYTONE %d %d", r.Frequency, r.Duration)
}
func (r PlayToneRequest) Branch(int) (BranchKind, int) { return NotBranch, 0 }

func decodePlayToneInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	freq, err := readI16(section, pc)
	if err != nil {
		return nil, err
	}
	dur, err := readI8(section, pc)
	if err != nil {
		return nil, err
	}
	return PlayToneRequest{Frequency: freq, Duration: dur}, nil
}

type PlayToneResponse struct{}

func DecodePlayToneResponse(payload []byte) PlayToneResponse { return PlayToneResponse{} }

// --- GetMemoryMap ---

type GetMemoryMapRequest struct{}

func (r GetMemoryMapRequest) RequestOpcode() byte          { return 0x32 }
func (r GetMemoryMapRequest) ResponseOpcode() (byte, bool) { return 0x3A, true }
func (r GetMemoryMapRequest) EncodeParams() []byte         { return nil }

type GetMemoryMapResponse struct {
	Available uint16
}

func DecodeGetMemoryMapResponse(payload []byte) GetMemoryMapResponse {
	return GetMemoryMapResponse{Available: getU16(payload[0:2])}
}

// --- SetDisplay ---

type SetDisplayRequest struct {
	Source   uint8
	Argument uint8
}

func (r SetDisplayRequest) RequestOpcode() byte          { return 0x36 }
func (r SetDisplayRequest) ResponseOpcode() (byte, bool) { return 0x3E, true }
func (r SetDisplayRequest) EncodeParams() []byte {
	buf := putU8(nil, r.Source)
	return putU8(buf, r.Argument)
}
func (r SetDisplayRequest) Len() int { return 3 }
func (r SetDisplayRequest) String() string {
	return fmt.Sprintf("SETDISPLAY %d %d", r.Source, r.Argument)
}
func (r SetDisplayRequest) Branch(int) (BranchKind, int) { return NotBranch, 0 }

func decodeSetDisplayInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	source, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	argument, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return SetDisplayRequest{Source: source, Argument: argument}, nil
}

type SetDisplayResponse struct{}

func DecodeSetDisplayResponse(payload []byte) SetDisplayResponse { return SetDisplayResponse{} }

// --- SetMessage (send-only, no response) ---

type SetMessageRequest struct {
	Message uint8
}

func (r SetMessageRequest) RequestOpcode() byte          { return 0x3C }
func (r SetMessageRequest) ResponseOpcode() (byte, bool) { return 0, false }
func (r SetMessageRequest) EncodeParams() []byte         { return putU8(nil, r.Message) }

// --- SetMotorPower ---

type SetMotorPowerRequest struct {
	Motors   uint8
	Source   uint8
	Argument uint8
}

func (r SetMotorPowerRequest) RequestOpcode() byte          { return 0x40 }
func (r SetMotorPowerRequest) ResponseOpcode() (byte, bool) { return 0x48, true }
func (r SetMotorPowerRequest) EncodeParams() []byte {
	buf := putU8(nil, r.Motors)
	buf = putU8(buf, r.Source)
	return putU8(buf, r.Argument)
}
func (r SetMotorPowerRequest) Len() int { return 4 }
func (r SetMotorPowerRequest) String() string {
	return fmt.Sprintf("SETMOTORPOWER 0x%02X %d %d", r.Motors, r.Source, r.Argument)
}
func (r SetMotorPowerRequest) Branch(int) (BranchKind, int) { return NotBranch, 0 }

func decodeSetMotorPowerInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	motors, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	source, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	argument, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return SetMotorPowerRequest{Motors: motors, Source: source, Argument: argument}, nil
}

type SetMotorPowerResponse struct{}

func DecodeSetMotorPowerResponse(payload []byte) SetMotorPowerResponse { return SetMotorPowerResponse{} }

// --- SetPowerDownDelay ---

type SetPowerDownDelayRequest struct {
	Minutes uint8
}

func (r SetPowerDownDelayRequest) RequestOpcode() byte          { return 0x41 }
func (r SetPowerDownDelayRequest) ResponseOpcode() (byte, bool) { return 0x49, true }
func (r SetPowerDownDelayRequest) EncodeParams() []byte         { return putU8(nil, r.Minutes) }
func (r SetPowerDownDelayRequest) Len() int                     { return 2 }
func (r SetPowerDownDelayRequest) String() string {
	return fmt.Sprintf("SETPOWERDOWNDELAY %d", r.Minutes)
}
func (r SetPowerDownDelayRequest) Branch(int) (BranchKind, int) { return NotBranch, 0 }

func decodeSetPowerDownDelayInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	minutes, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return SetPowerDownDelayRequest{Minutes: minutes}, nil
}

type SetPowerDownDelayResponse struct{}

func DecodeSetPowerDownDelayResponse(payload []byte) SetPowerDownDelayResponse {
	return SetPowerDownDelayResponse{}
}

// --- SetProgramNumber ---

type SetProgramNumberRequest struct {
	Program uint8
}

func (r SetProgramNumberRequest) RequestOpcode() byte          { return 0x42 }
func (r SetProgramNumberRequest) ResponseOpcode() (byte, bool) { return 0x4A, true }
func (r SetProgramNumberRequest) EncodeParams() []byte         { return putU8(nil, r.Program) }
func (r SetProgramNumberRequest) Len() int                     { return 2 }
func (r SetProgramNumberRequest) String() string {
	return fmt.Sprintf("SETPROGRAMNUMBER %d", r.Program)
}
func (r SetProgramNumberRequest) Branch(int) (BranchKind, int) { return NotBranch, 0 }

func decodeSetProgramNumberInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	program, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return SetProgramNumberRequest{Program: program}, nil
}

type SetProgramNumberResponse struct{}

func DecodeSetProgramNumberResponse(payload []byte) SetProgramNumberResponse {
	return SetProgramNumberResponse{}
}

// --- PlaySound ---

type PlaySoundRequest struct {
	Sound uint8
}

func (r PlaySoundRequest) RequestOpcode() byte          { return 0x51 }
func (r PlaySoundRequest) ResponseOpcode() (byte, bool) { return 0x59, true }
func (r PlaySoundRequest) EncodeParams() []byte         { return putU8(nil, r.Sound) }
func (r PlaySoundRequest) Len() int                     { return 2 }
func (r PlaySoundRequest) String() string               { return fmt.Sprintf("PLAYSOUND %d", r.Sound) }
func (r PlaySoundRequest) Branch(int) (BranchKind, int)  { return NotBranch, 0 }

func decodePlaySoundInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	sound, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return PlaySoundRequest{Sound: sound}, nil
}

type PlaySoundResponse struct{}

func DecodePlaySoundResponse(payload []byte) PlaySoundResponse { return PlaySoundResponse{} }

// --- PowerOff ---

type PowerOffRequest struct{}

func (r PowerOffRequest) RequestOpcode() byte          { return 0x60 }
func (r PowerOffRequest) ResponseOpcode() (byte, bool) { return 0x68, true }
func (r PowerOffRequest) EncodeParams() []byte         { return nil }

type PowerOffResponse struct{}

func DecodePowerOffResponse(payload []byte) PowerOffResponse { return PowerOffResponse{} }

// --- StartFirmwareDownload ---

type StartFirmwareDownloadRequest struct {
	Length   uint16
	Checksum uint16
}

func (r StartFirmwareDownloadRequest) RequestOpcode() byte          { return 0x70 }
func (r StartFirmwareDownloadRequest) ResponseOpcode() (byte, bool) { return 0x78, true }
func (r StartFirmwareDownloadRequest) EncodeParams() []byte {
	buf := putU16(nil, r.Length)
	return putU16(buf, r.Checksum)
}

type StartFirmwareDownloadResponse struct{}

func DecodeStartFirmwareDownloadResponse(payload []byte) StartFirmwareDownloadResponse {
	return StartFirmwareDownloadResponse{}
}

// --- StartSubroutineDownload ---

type StartSubroutineDownloadRequest struct {
	Subroutine uint8
}

func (r StartSubroutineDownloadRequest) RequestOpcode() byte          { return 0x71 }
func (r StartSubroutineDownloadRequest) ResponseOpcode() (byte, bool) { return 0x79, true }
func (r StartSubroutineDownloadRequest) EncodeParams() []byte         { return putU8(nil, r.Subroutine) }

type StartSubroutineDownloadResponse struct{}

func DecodeStartSubroutineDownloadResponse(payload []byte) StartSubroutineDownloadResponse {
	return StartSubroutineDownloadResponse{}
}

// --- StartTaskDownload ---

type StartTaskDownloadRequest struct {
	Task uint8
}

func (r StartTaskDownloadRequest) RequestOpcode() byte          { return 0x72 }
func (r StartTaskDownloadRequest) ResponseOpcode() (byte, bool) { return 0x7A, true }
func (r StartTaskDownloadRequest) EncodeParams() []byte         { return putU8(nil, r.Task) }

type StartTaskDownloadResponse struct{}

func DecodeStartTaskDownloadResponse(payload []byte) StartTaskDownloadResponse {
	return StartTaskDownloadResponse{}
}

// --- TransferData ---

type TransferDataRequest struct {
	Sequence uint8
	Data     []byte
}

func (r TransferDataRequest) RequestOpcode() byte          { return 0x73 }
func (r TransferDataRequest) ResponseOpcode() (byte, bool) { return 0x7B, true }
func (r TransferDataRequest) EncodeParams() []byte {
	buf := putU8(nil, r.Sequence)
	return append(buf, r.Data...)
}

type TransferDataResponse struct {
	Checksum uint8
}

func DecodeTransferDataResponse(payload []byte) TransferDataResponse {
	return TransferDataResponse{Checksum: getU8(payload[0:1])}
}

// --- UnlockFirmware (response checked by the link layer, not decoded here) ---

// UnlockFirmwareExpectedAck is the literal byte string the brick must echo
// back for the firmware unlock to be considered successful.
var UnlockFirmwareExpectedAck = []byte("Do you byte, when I knock?")

type UnlockFirmwareRequest struct {
	A uint16
	B uint16
	C uint16
}

func (r UnlockFirmwareRequest) RequestOpcode() byte          { return 0x75 }
func (r UnlockFirmwareRequest) ResponseOpcode() (byte, bool) { return 0, false }
func (r UnlockFirmwareRequest) EncodeParams() []byte {
	buf := putU16(nil, r.A)
	buf = putU16(buf, r.B)
	return putU16(buf, r.C)
}

// --- GetBatteryPower ---

type GetBatteryPowerRequest struct{}

func (r GetBatteryPowerRequest) RequestOpcode() byte          { return 0xC7 }
func (r GetBatteryPowerRequest) ResponseOpcode() (byte, bool) { return 0xCF, true }
func (r GetBatteryPowerRequest) EncodeParams() []byte         { return nil }

type GetBatteryPowerResponse struct {
	Millivolts uint16
}

func DecodeGetBatteryPowerResponse(payload []byte) GetBatteryPowerResponse {
	return GetBatteryPowerResponse{Millivolts: getU16(payload[0:2])}
}

// --- SetMotorDirection ---

type SetMotorDirectionRequest struct {
	Code uint8
}

func (r SetMotorDirectionRequest) RequestOpcode() byte          { return 0xE1 }
func (r SetMotorDirectionRequest) ResponseOpcode() (byte, bool) { return 0xE9, true }
func (r SetMotorDirectionRequest) EncodeParams() []byte         { return putU8(nil, r.Code) }
func (r SetMotorDirectionRequest) Len() int                     { return 2 }
func (r SetMotorDirectionRequest) String() string {
	return fmt.Sprintf("SETMOTORDIRECTION 0x%02X", r.Code)
}
func (r SetMotorDirectionRequest) Branch(int) (BranchKind, int) { return NotBranch, 0 }

func decodeSetMotorDirectionInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	code, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return SetMotorDirectionRequest{Code: code}, nil
}

type SetMotorDirectionResponse struct{}

func DecodeSetMotorDirectionResponse(payload []byte) SetMotorDirectionResponse {
	return SetMotorDirectionResponse{}
}

// --- Branch family: BranchAlwaysNear ---

type BranchAlwaysNearRequest struct {
	Offset uint8
}

func (r BranchAlwaysNearRequest) RequestOpcode() byte          { return 0xA0 }
func (r BranchAlwaysNearRequest) ResponseOpcode() (byte, bool) { return 0, false }
func (r BranchAlwaysNearRequest) EncodeParams() []byte         { return putU8(nil, r.Offset) }
func (r BranchAlwaysNearRequest) Len() int                     { return 2 }
// String renders the mnemonic only; the branch target depends on this
// instruction's position in its section, which the disassembler appends
// separately once it knows the instruction's offset.
func (r BranchAlwaysNearRequest) String() string { return "BRANCH" }
func (r BranchAlwaysNearRequest) Branch(pcAfter int) (BranchKind, int) {
	pcOfOffset := pcAfter - 1
	return UnconditionalBranch, nearFarTarget(r.Offset, 0, pcOfOffset)
}

func decodeBranchAlwaysNearInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	offset, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return BranchAlwaysNearRequest{Offset: offset}, nil
}

// --- Branch family: BranchAlwaysFar ---

type BranchAlwaysFarRequest struct {
	Offset    uint8
	Extension uint8
}

func (r BranchAlwaysFarRequest) RequestOpcode() byte          { return 0xA1 }
func (r BranchAlwaysFarRequest) ResponseOpcode() (byte, bool) { return 0, false }
func (r BranchAlwaysFarRequest) EncodeParams() []byte {
	buf := putU8(nil, r.Offset)
	return putU8(buf, r.Extension)
}
func (r BranchAlwaysFarRequest) Len() int { return 3 }
func (r BranchAlwaysFarRequest) String() string { return "BRANCH.FAR" }
func (r BranchAlwaysFarRequest) Branch(pcAfter int) (BranchKind, int) {
	// pcAfter is positioned after both offset and extension; the offset
	// byte sits one position earlier than the extension byte.
	pcOfOffset := pcAfter - 2
	return UnconditionalBranch, nearFarTarget(r.Offset, r.Extension, pcOfOffset)
}

func decodeBranchAlwaysFarInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	offset, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	extension, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return BranchAlwaysFarRequest{Offset: offset, Extension: extension}, nil
}

// --- Branch family: TestAndBranchNear ---

type TestAndBranchNearRequest struct {
	Offset uint8
}

func (r TestAndBranchNearRequest) RequestOpcode() byte          { return 0xA2 }
func (r TestAndBranchNearRequest) ResponseOpcode() (byte, bool) { return 0, false }
func (r TestAndBranchNearRequest) EncodeParams() []byte         { return putU8(nil, r.Offset) }
func (r TestAndBranchNearRequest) Len() int                     { return 2 }
func (r TestAndBranchNearRequest) String() string { return "TSTBRANCH" }
func (r TestAndBranchNearRequest) Branch(pcAfter int) (BranchKind, int) {
	pcOfOffset := pcAfter - 1
	return ConditionalBranch, nearFarTarget(r.Offset, 0, pcOfOffset)
}

func decodeTestAndBranchNearInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	offset, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return TestAndBranchNearRequest{Offset: offset}, nil
}

// --- Branch family: TestAndBranchFar ---

type TestAndBranchFarRequest struct {
	Offset    uint8
	Extension uint8
}

func (r TestAndBranchFarRequest) RequestOpcode() byte          { return 0xA3 }
func (r TestAndBranchFarRequest) ResponseOpcode() (byte, bool) { return 0, false }
func (r TestAndBranchFarRequest) EncodeParams() []byte {
	buf := putU8(nil, r.Offset)
	return putU8(buf, r.Extension)
}
func (r TestAndBranchFarRequest) Len() int { return 3 }
func (r TestAndBranchFarRequest) String() string { return "TSTBRANCH.FAR" }
func (r TestAndBranchFarRequest) Branch(pcAfter int) (BranchKind, int) {
	pcOfOffset := pcAfter - 2
	return ConditionalBranch, nearFarTarget(r.Offset, r.Extension, pcOfOffset)
}

func decodeTestAndBranchFarInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	offset, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	extension, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return TestAndBranchFarRequest{Offset: offset, Extension: extension}, nil
}

// --- Branch family: DecrementLoopCounterNear ---
//
// Unimplemented (todo!()) in the source this was distilled from. Treated
// here as conditional with the same offset arithmetic as
// TestAndBranchNear; see DESIGN.md open question 1.

type DecrementLoopCounterNearRequest struct {
	Offset uint8
}

func (r DecrementLoopCounterNearRequest) RequestOpcode() byte          { return 0xA4 }
func (r DecrementLoopCounterNearRequest) ResponseOpcode() (byte, bool) { return 0, false }
func (r DecrementLoopCounterNearRequest) EncodeParams() []byte         { return putU8(nil, r.Offset) }
func (r DecrementLoopCounterNearRequest) Len() int                     { return 2 }
func (r DecrementLoopCounterNearRequest) String() string { return "DECLOOP" }
func (r DecrementLoopCounterNearRequest) Branch(pcAfter int) (BranchKind, int) {
	pcOfOffset := pcAfter - 1
	return ConditionalBranch, nearFarTarget(r.Offset, 0, pcOfOffset)
}

func decodeDecrementLoopCounterNearInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	offset, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return DecrementLoopCounterNearRequest{Offset: offset}, nil
}

// --- Branch family: DecrementLoopCounterFar ---
//
// Same caveat as DecrementLoopCounterNear; see DESIGN.md open question 1.

type DecrementLoopCounterFarRequest struct {
	Offset    uint8
	Extension uint8
}

func (r DecrementLoopCounterFarRequest) RequestOpcode() byte          { return 0xA5 }
func (r DecrementLoopCounterFarRequest) ResponseOpcode() (byte, bool) { return 0, false }
func (r DecrementLoopCounterFarRequest) EncodeParams() []byte {
	buf := putU8(nil, r.Offset)
	return putU8(buf, r.Extension)
}
func (r DecrementLoopCounterFarRequest) Len() int { return 3 }
func (r DecrementLoopCounterFarRequest) String() string { return "DECLOOP.FAR" }
func (r DecrementLoopCounterFarRequest) Branch(pcAfter int) (BranchKind, int) {
	pcOfOffset := pcAfter - 2
	return ConditionalBranch, nearFarTarget(r.Offset, r.Extension, pcOfOffset)
}

func decodeDecrementLoopCounterFarInstruction(section []byte, pc *int) (Instruction, error) {
	*pc++
	offset, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	extension, err := readU8(section, pc)
	if err != nil {
		return nil, err
	}
	return DecrementLoopCounterFarRequest{Offset: offset, Extension: extension}, nil
}
