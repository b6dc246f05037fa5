package ws

import (
	"encoding/json"

	"brickforge.ai/internal/brick"
	"brickforge.ai/internal/config"
	"brickforge.ai/internal/model"
)

const ProtocolVersion = "1.0"

// Message types.
const (
	TypeHello    = "HELLO"
	TypeWelcome  = "WELCOME"
	TypeGenerate = "GENERATE"
	TypeResult   = "RESULT"
	TypeError    = "ERROR"
)

// baseMsg routes unknown JSON messages by type.
type baseMsg struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
}

func decodeBase(b []byte) (baseMsg, error) {
	var m baseMsg
	err := json.Unmarshal(b, &m)
	return m, err
}

type helloMsg struct {
	Type       string `json:"type"`
	ClientName string `json:"client_name,omitempty"`
}

type welcomeMsg struct {
	Type            string        `json:"type"`
	ProtocolVersion string        `json:"protocol_version"`
	Palette         []model.Color `json:"palette"`
	Limits          config.Limits `json:"limits"`
}

type generateMsg struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	MirrorX   bool            `json:"mirror_x,omitempty"`
	MirrorZ   bool            `json:"mirror_z,omitempty"`
	Model     json.RawMessage `json:"model"`
}

type voxelPayload struct {
	Dims     [3]int `json:"dims"` // width, depth, height
	Encoding string `json:"encoding"`
	Data     string `json:"data"`
}

type resultMsg struct {
	Type       string        `json:"type"`
	RequestID  string        `json:"request_id,omitempty"`
	RunID      string        `json:"run_id"`
	Kind       string        `json:"kind"`
	Fallback   bool          `json:"fallback,omitempty"`
	VoxelCount int           `json:"voxel_count"`
	BrickCount int           `json:"brick_count"`
	DurationMs int64         `json:"duration_ms"`
	Bricks     []brick.Brick `json:"bricks"`
	Voxels     voxelPayload  `json:"voxels"`
}

type errorMsg struct {
	Type      string             `json:"type"`
	RequestID string             `json:"request_id,omitempty"`
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	Fields    []model.FieldError `json:"fields,omitempty"`
}
