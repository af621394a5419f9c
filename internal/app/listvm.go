package app

import (
	"github.com/rs/zerolog/log"

	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
)

// RoomListViewModel backs the room directory page. The directory is an
// optional service capability; without it the list stays empty.
type RoomListViewModel struct {
	deps *EntryControl
}

// Refresh fetches the directory and delivers it to render. An error
// degrades to an empty list plus a log line.
func (vm *RoomListViewModel) Refresh(render func(rooms []domain.RoomInfo)) {
	dir, ok := vm.deps.Service().(core.RoomDirectory)
	if !ok {
		render(nil)
		return
	}
	dir.ListRooms(func(code int, msg string, rooms []domain.RoomInfo) {
		if code != core.CodeOK {
			log.Warn().Str("module", "app.listvm").Int("code", code).Str("msg", msg).Msg("room list fetch failed")
			render(nil)
			return
		}
		render(rooms)
	})
}
