// Package local is the in-process reference room service. It implements
// the full signaling surface the view-model layer consumes, so the module
// runs and tests end to end without the production SDK.
package local

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
)

// Service-defined failure codes. Opaque integers on the wire; only zero is
// special to callers.
const (
	codeRoomNotFound   = 10001
	codeNotInRoom      = 10002
	codeNotPermitted   = 10003
	codeSeatOutOfRange = 10004
	codeSeatTaken      = 10005
	codeSeatLocked     = 10006
	codeTargetMissing  = 10007
	codeInviteUnknown  = 10008
)

// Hub owns every live room and hands out per-user client handles.
type Hub struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*room
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[domain.RoomID]*room)}
}

// Connect binds a user identity to the hub and returns its service handle.
func (h *Hub) Connect(profile domain.UserProfile) *Client {
	c := &Client{
		hub:     h,
		profile: profile,
		events:  make(chan core.Event, 64),
		quit:    make(chan struct{}),
	}
	go c.deliver()
	log.Info().Str("module", "service.local").Str("user", string(profile.ID)).Msg("client connected")
	return c
}

func (h *Hub) getRoom(id domain.RoomID) *room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[id]
}

// createRoom allocates a room or reports that the id is taken.
func (h *Hub) createRoom(owner *Client, id domain.RoomID, params domain.RoomParams) (*room, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[id]; ok {
		return nil, core.CodeRoomExists
	}
	r := newRoom(id, owner.snapshotProfile(), params)
	h.rooms[id] = r
	log.Info().Str("module", "service.local").Str("room", string(id)).Str("owner", string(owner.snapshotProfile().ID)).Msg("room created")
	return r, core.CodeOK
}

func (h *Hub) dropRoom(id domain.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, id)
	log.Info().Str("module", "service.local").Str("room", string(id)).Msg("room dropped")
}

// List snapshots the directory.
func (h *Hub) List() []domain.RoomInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]domain.RoomInfo, 0, len(h.rooms))
	for _, r := range h.rooms {
		out = append(out, r.infoSnapshot())
	}
	return out
}
