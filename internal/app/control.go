// Package app holds the view-model layer: the entry control that wires
// identity and the service handle into view-models, and the room state
// machine itself.
package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
)

// ServiceFactory builds a fresh room service handle. Injected so the
// view-model layer stays testable against fakes.
type ServiceFactory func() core.RoomService

// EntryControl is the dependency container for the voice-room module.
// It carries the read-only identity parameters and owns the single
// long-lived service handle all minted view-models share.
type EntryControl struct {
	appID int64
	self  domain.UserProfile

	factory ServiceFactory

	mu  sync.Mutex
	svc core.RoomService
}

func NewEntryControl(appID int64, self domain.UserProfile, factory ServiceFactory) *EntryControl {
	return &EntryControl{appID: appID, self: self, factory: factory}
}

func (c *EntryControl) AppID() int64 { return c.appID }

func (c *EntryControl) UserID() domain.UserID { return c.self.ID }

func (c *EntryControl) SelfProfile() domain.UserProfile { return c.self }

// Service returns the shared handle, creating it on first access.
func (c *EntryControl) Service() core.RoomService {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.svc == nil {
		c.svc = c.factory()
		log.Info().Str("module", "app.control").Str("user", string(c.self.ID)).Msg("created service handle")
	}
	return c.svc
}

// Shutdown destroys the cached handle. The next Service call re-creates it.
func (c *EntryControl) Shutdown() {
	c.mu.Lock()
	svc := c.svc
	c.svc = nil
	c.mu.Unlock()
	if svc == nil {
		return
	}
	svc.SetListener(nil)
	switch closer := svc.(type) {
	case interface{ Close() }:
		closer.Close()
	case interface{ Close() error }:
		_ = closer.Close()
	}
	log.Info().Str("module", "app.control").Str("user", string(c.self.ID)).Msg("service handle destroyed")
}

// NewRoomViewModel mints the view-model for entering or hosting a room.
func (c *EntryControl) NewRoomViewModel(info domain.RoomInfo, vt core.ViewType) *RoomViewModel {
	return newRoomViewModel(c, info, vt)
}

// NewCreateRoomViewModel mints the view-model backing the room creation form.
func (c *EntryControl) NewCreateRoomViewModel() *CreateRoomViewModel {
	return &CreateRoomViewModel{deps: c}
}

// NewRoomListViewModel mints the view-model backing the room directory.
func (c *EntryControl) NewRoomListViewModel() *RoomListViewModel {
	return &RoomListViewModel{deps: c}
}
