package player

import (
	"github.com/gorilla/websocket"

	"github.com/tubebridge/server/pkg/iframe"
	"github.com/tubebridge/server/pkg/wsrouter"
)

func (s *service) sendToConn(conn *websocket.Conn, msg *wsrouter.Output) {
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Warn("failed to write message", "error", err)
		s.connRepo.RemoveByConn(conn)
		conn.Close()
	}
}

func (s *service) broadcastState(st State) {
	msg := wsrouter.Output{Type: "STATE_UPDATED", Payload: st}
	for _, conn := range s.connRepo.GetApps(st.PlayerID) {
		s.sendToConn(conn, &msg)
	}
}

// eval ships commands to the view. While no view has attached and reported
// readiness the JavaScript is queued and flushed on the next READY.
func (s *service) eval(st State, cmds ...iframe.Command) {
	if !st.Ready {
		for _, cmd := range cmds {
			s.connRepo.EnqueueJS(st.PlayerID, cmd.JS())
		}
		return
	}

	conn, err := s.connRepo.GetView(st.PlayerID)
	if err != nil {
		for _, cmd := range cmds {
			s.connRepo.EnqueueJS(st.PlayerID, cmd.JS())
		}
		return
	}

	for _, cmd := range cmds {
		s.sendToConn(conn, &wsrouter.Output{Type: "EVAL", Payload: map[string]string{"js": cmd.JS()}})
	}
}
