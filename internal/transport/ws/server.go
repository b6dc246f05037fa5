// Package ws exposes the generation pipeline over a websocket endpoint.
package ws

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"brickforge.ai/internal/archive"
	"brickforge.ai/internal/config"
	"brickforge.ai/internal/encoding"
	"brickforge.ai/internal/model"
	"brickforge.ai/internal/pipeline"
	"brickforge.ai/internal/runlog"
)

type Server struct {
	limits config.Limits
	store  *archive.Store // optional
	runs   *runlog.Logger // optional
	log    *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(limits config.Limits, store *archive.Store, runs *runlog.Logger, logger *log.Logger) *Server {
	return &Server{
		limits: limits,
		store:  store,
		runs:   runs,
		log:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			reply := s.handle(raw)
			_ = conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
			if err := conn.WriteJSON(reply); err != nil {
				return
			}
		}
	}
}

func (s *Server) handle(raw []byte) any {
	base, err := decodeBase(raw)
	if err != nil {
		return errorReply("", model.ErrProtoBadRequest, "invalid JSON", nil)
	}
	switch base.Type {
	case TypeHello:
		var hello helloMsg
		if err := json.Unmarshal(raw, &hello); err == nil && hello.ClientName != "" {
			s.log.Printf("hello from %s", hello.ClientName)
		}
		return welcomeMsg{
			Type:            TypeWelcome,
			ProtocolVersion: ProtocolVersion,
			Palette:         model.Palette,
			Limits:          s.limits,
		}
	case TypeGenerate:
		var msg generateMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			return errorReply(base.RequestID, model.ErrProtoBadRequest, "invalid GENERATE message", nil)
		}
		return s.generate(msg)
	default:
		return errorReply(base.RequestID, model.ErrProtoBadRequest, "unknown message type "+base.Type, nil)
	}
}

func (s *Server) generate(msg generateMsg) any {
	if len(msg.Model) == 0 {
		return errorReply(msg.RequestID, model.ErrBadModel, "model document required", nil)
	}

	p, err := model.Parse(msg.Model)
	if err != nil {
		return validationReply(msg.RequestID, err)
	}
	if verr := s.limits.Check(p); verr != nil {
		return validationReply(msg.RequestID, verr)
	}

	runID := uuid.NewString()
	digest := sha256.Sum256(msg.Model)
	start := time.Now()

	res := pipeline.Generate(p, pipeline.Options{MirrorX: msg.MirrorX, MirrorZ: msg.MirrorZ}, s.trace(runID))
	elapsed := time.Since(start)

	bb := pipeline.BoundingBox(p)
	reply := resultMsg{
		Type:       TypeResult,
		RequestID:  msg.RequestID,
		RunID:      runID,
		Kind:       res.Kind,
		Fallback:   res.FellBack,
		VoxelCount: len(res.Voxels),
		BrickCount: len(res.Bricks),
		DurationMs: elapsed.Milliseconds(),
		Bricks:     res.Bricks,
		Voxels: voxelPayload{
			Dims:     [3]int{bb.Width, bb.Depth, bb.Height},
			Encoding: "RLE",
			Data:     encoding.EncodeVolume(res.Voxels, bb.Width, bb.Depth, bb.Height),
		},
	}

	s.record(runID, hex.EncodeToString(digest[:]), res, elapsed)
	return reply
}

func (s *Server) record(runID, digest string, res pipeline.Result, elapsed time.Duration) {
	now := time.Now().UTC()
	if s.store != nil {
		s.store.Record(archive.Run{
			ID:          runID,
			CreatedAt:   now,
			Kind:        res.Kind,
			InputDigest: digest,
			Voxels:      len(res.Voxels),
			Bricks:      len(res.Bricks),
			Fallback:    res.FellBack,
			DurationMs:  elapsed.Milliseconds(),
		})
	}
	if s.runs != nil {
		if err := s.runs.Write(runlog.Entry{
			RunID:       runID,
			At:          now,
			Kind:        res.Kind,
			InputDigest: digest,
			VoxelCount:  len(res.Voxels),
			BrickCount:  len(res.Bricks),
			Fallback:    res.FellBack,
			DurationMs:  elapsed.Milliseconds(),
		}); err != nil {
			s.log.Printf("runlog write: %v", err)
		}
	}
}

func (s *Server) trace(runID string) *pipeline.Trace {
	return &pipeline.Trace{
		Fallback: func(kind string) {
			s.log.Printf("run %s: %s top view too sparse, fell back to two-view carve", runID, kind)
		},
		Floating: func(removed int) {
			if removed > 0 {
				s.log.Printf("run %s: removed %d floating bricks", runID, removed)
			}
		},
	}
}

func errorReply(reqID, code, message string, fields []model.FieldError) errorMsg {
	return errorMsg{Type: TypeError, RequestID: reqID, Code: code, Message: message, Fields: fields}
}

func validationReply(reqID string, err error) errorMsg {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return errorReply(reqID, model.ErrBadModel, verr.Error(), verr.Fields)
	}
	return errorReply(reqID, model.ErrBadModel, err.Error(), nil)
}
