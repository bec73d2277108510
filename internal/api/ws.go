package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/weldyapp/weldy/internal/engine"
	"github.com/weldyapp/weldy/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	SessionID string        `json:"session_id"` // empty starts a new session
	Action    engine.Action `json:"action"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type      string         `json:"type"` // "screen" or "error"
	SessionID string         `json:"session_id"`
	Screen    *engine.Screen `json:"screen,omitempty"`
	Error     string         `json:"error,omitempty"`
}

func (a *API) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				a.logger.Warn("websocket read", zap.Error(err))
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			a.sendError(conn, "", "invalid message format")
			continue
		}
		a.handleMessage(conn, r, req)
	}
}

func (a *API) handleMessage(conn *websocket.Conn, r *http.Request, req wsRequest) {
	ctx := r.Context()

	id := req.SessionID
	if id == "" {
		created, err := a.store.Create(ctx, a.engine.NewSession())
		if err != nil {
			a.sendError(conn, "", err.Error())
			return
		}
		id = created.Session.ID
	}

	// An empty action just renders the current screen.
	var rec session.Record
	var err error
	if req.Action.Type == "" {
		rec, err = a.store.Get(ctx, id)
	} else {
		rec, err = a.store.Modify(ctx, id, func(s engine.Session) (engine.Session, error) {
			return a.engine.Dispatch(s, req.Action)
		})
	}
	if err != nil {
		a.sendError(conn, id, err.Error())
		return
	}

	scr := a.engine.Screen(rec.Session)
	a.sendResponse(conn, wsResponse{Type: "screen", SessionID: rec.Session.ID, Screen: &scr})
}

func (a *API) sendError(conn *websocket.Conn, sessionID, msg string) {
	a.sendResponse(conn, wsResponse{Type: "error", SessionID: sessionID, Error: msg})
}

func (a *API) sendResponse(conn *websocket.Conn, resp wsResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		a.logger.Error("websocket marshal", zap.Error(err))
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		a.logger.Warn("websocket write", zap.Error(err))
	}
}
