// Package inmemory tracks the live websocket connections of each player
// session: at most one view (the embedded wrapper page) and any number of
// app observers, plus the JavaScript queued while no view is attached.
package inmemory

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/tubebridge/server/internal/repository/connection"
)

type connInfo struct {
	playerID string
	isView   bool
}

type repo struct {
	mu        sync.RWMutex
	conns     map[*websocket.Conn]connInfo
	views     map[string]*websocket.Conn
	apps      map[string]map[*websocket.Conn]struct{}
	pendingJS map[string][]string
}

func NewRepo() *repo {
	return &repo{
		conns:     make(map[*websocket.Conn]connInfo),
		views:     make(map[string]*websocket.Conn),
		apps:      make(map[string]map[*websocket.Conn]struct{}),
		pendingJS: make(map[string][]string),
	}
}

func (r *repo) AddView(conn *websocket.Conn, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[conn]; ok {
		return connection.ErrAlreadyExists
	}
	if _, ok := r.views[playerID]; ok {
		return connection.ErrAlreadyExists
	}

	r.conns[conn] = connInfo{playerID: playerID, isView: true}
	r.views[playerID] = conn

	return nil
}

func (r *repo) AddApp(conn *websocket.Conn, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[conn]; ok {
		return connection.ErrAlreadyExists
	}

	r.conns[conn] = connInfo{playerID: playerID}
	if r.apps[playerID] == nil {
		r.apps[playerID] = make(map[*websocket.Conn]struct{})
	}
	r.apps[playerID][conn] = struct{}{}

	return nil
}

// RemoveByConn forgets conn and reports which player it belonged to and
// whether it was the view.
func (r *repo) RemoveByConn(conn *websocket.Conn) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, ok := r.conns[conn]
	if !ok {
		return "", false, connection.ErrNotFound
	}

	delete(r.conns, conn)
	if info.isView {
		delete(r.views, info.playerID)
	} else {
		delete(r.apps[info.playerID], conn)
		if len(r.apps[info.playerID]) == 0 {
			delete(r.apps, info.playerID)
		}
	}

	return info.playerID, info.isView, nil
}

func (r *repo) GetView(playerID string) (*websocket.Conn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.views[playerID]
	if !ok {
		return nil, connection.ErrNotFound
	}

	return conn, nil
}

func (r *repo) GetApps(playerID string) []*websocket.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]*websocket.Conn, 0, len(r.apps[playerID]))
	for conn := range r.apps[playerID] {
		conns = append(conns, conn)
	}

	return conns
}

func (r *repo) GetPlayerID(conn *websocket.Conn) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.conns[conn]
	if !ok {
		return "", connection.ErrNotFound
	}

	return info.playerID, nil
}

func (r *repo) EnqueueJS(playerID string, js string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pendingJS[playerID] = append(r.pendingJS[playerID], js)
}

// DrainJS returns and clears the queued JavaScript for playerID in FIFO
// order.
func (r *repo) DrainJS(playerID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	queued := r.pendingJS[playerID]
	delete(r.pendingJS, playerID)

	return queued
}
