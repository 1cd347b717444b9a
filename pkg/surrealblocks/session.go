package surrealblocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/surrealdb/surrealblocks/pkg/blocks"
	"github.com/surrealdb/surrealblocks/pkg/editor"
	"github.com/surrealdb/surrealblocks/pkg/exchange"
	"github.com/surrealdb/surrealblocks/pkg/models"
)

// Session operations.
const (
	OpAdd     = "add"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpMove    = "move"
	OpRetype  = "retype"
	OpSelect  = "select"
	OpFocus   = "focus"
	OpReplace = "replace"
	OpSave    = "save"
)

const (
	sessionReadLimit = maxImportSize
	sessionIdle      = 10 * time.Minute
	sessionWriteWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// SessionMessage is one client request on a live editing session.
type SessionMessage struct {
	Op        string           `json:"op"`
	Type      models.BlockType `json:"type,omitempty"`
	AfterID   string           `json:"afterId,omitempty"`
	BlockID   string           `json:"blockId,omitempty"`
	Update    blocks.Update    `json:"update"`
	Direction string           `json:"direction,omitempty"`
	ChapterID string           `json:"chapterId,omitempty"`
	PageID    string           `json:"pageId,omitempty"`
	Document  *models.Document `json:"document,omitempty"`
}

// UnmarshalJSON decodes the message. The document of a replace is decoded
// like an import, so its identifier may be any value.
func (m *SessionMessage) UnmarshalJSON(data []byte) error {
	type plain SessionMessage
	var aux struct {
		plain
		Document json.RawMessage `json:"document,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = SessionMessage(aux.plain)
	m.Document = nil
	if len(aux.Document) > 0 && string(aux.Document) != "null" {
		doc, err := exchange.Decode(aux.Document)
		if err != nil {
			return err
		}
		m.Document = doc
	}
	return nil
}

// SessionReply is the state sent after the session opens and after every
// message. Error is set when the message was rejected; the state is still
// the current one.
type SessionReply struct {
	Document *models.Document `json:"document"`
	HTML     string           `json:"html"`
	Selected *models.Block    `json:"selected,omitempty"`
	Saved    bool             `json:"saved,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// handleLive upgrades to a websocket editing session on one document. The
// connection's goroutine owns the editor, so messages apply strictly in
// order. Only the save operation writes to the store.
func (a *App) handleLive(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.loadDocument(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.log.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(sessionReadLimit)

	log := a.log.With().Str("component", "session").Str("document_id", doc.ID.String()).Logger()
	s := &session{
		app:    a,
		editor: editor.New(a.registry, doc, editor.WithLogger(log)),
		id:     doc.ID,
		log:    log,
	}
	log.Info().Msg("Live session opened")
	s.serve(r.Context(), conn)
	log.Info().Msg("Live session closed")
}

type session struct {
	app    *App
	editor *editor.Editor
	id     models.DocumentID
	log    zerolog.Logger
}

func (s *session) serve(ctx context.Context, conn *websocket.Conn) {
	if err := s.send(conn, s.reply(nil)); err != nil {
		return
	}
	for {
		_ = conn.SetReadDeadline(time.Now().Add(sessionIdle))
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn().Err(err).Msg("Live session read failed")
			}
			return
		}

		// A message that does not decode is rejected; the session goes on
		// with its state untouched.
		var msg SessionMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.log.Warn().Err(err).Msg("Malformed session message")
			if err := s.send(conn, s.reply(fmt.Errorf("invalid message: %w", err))); err != nil {
				return
			}
			continue
		}

		reply := s.reply(s.apply(ctx, msg))
		if msg.Op == OpSave && reply.Error == "" {
			reply.Saved = true
		}
		if err := s.send(conn, reply); err != nil {
			s.log.Warn().Err(err).Msg("Live session write failed")
			return
		}
	}
}

func (s *session) send(conn *websocket.Conn, reply SessionReply) error {
	_ = conn.SetWriteDeadline(time.Now().Add(sessionWriteWait))
	return conn.WriteJSON(reply)
}

// apply runs one message against the editor.
func (s *session) apply(ctx context.Context, msg SessionMessage) error {
	ed := s.editor
	switch msg.Op {
	case OpAdd:
		if _, ok := ed.AddBlock(msg.Type, msg.AfterID); !ok {
			return fmt.Errorf("%w: %q", blocks.ErrUnknownBlockType, msg.Type)
		}
		return nil
	case OpUpdate:
		return ed.UpdateBlock(msg.BlockID, msg.Update)
	case OpDelete:
		if !ed.DeleteBlock(msg.BlockID) {
			return fmt.Errorf("%w: %s", editor.ErrBlockNotFound, msg.BlockID)
		}
		return nil
	case OpMove:
		dir, err := editor.ParseDirection(msg.Direction)
		if err != nil {
			return err
		}
		ed.MoveBlock(msg.BlockID, dir)
		return nil
	case OpRetype:
		return ed.RetypeBlock(msg.BlockID, msg.Type)
	case OpSelect:
		if msg.BlockID == "" {
			ed.ClearSelection()
			return nil
		}
		return ed.Select(msg.BlockID)
	case OpFocus:
		if msg.ChapterID == "" && msg.PageID == "" {
			ed.FocusDocument()
			return nil
		}
		return ed.Focus(msg.ChapterID, msg.PageID)
	case OpReplace:
		if msg.Document == nil {
			return errors.New("replace requires a document")
		}
		doc := msg.Document
		doc.ID = s.id
		ed.ReplaceDocument(doc)
		return nil
	case OpSave:
		if err := s.app.store.SaveDocument(ctx, ed.Document()); err != nil {
			s.log.Error().Err(err).Msg("Failed to save document")
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown operation %q", msg.Op)
	}
}

func (s *session) reply(err error) SessionReply {
	doc := s.editor.Document()
	reply := SessionReply{Document: doc}
	if err != nil {
		reply.Error = err.Error()
	}
	html, rerr := s.app.renderer.RenderDocument(doc)
	if rerr != nil {
		s.log.Error().Err(rerr).Msg("Failed to render document")
	}
	reply.HTML = string(html)
	if b, ok := s.editor.Selected(); ok {
		reply.Selected = &b
	}
	return reply
}
