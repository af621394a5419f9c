package signal

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/openvoice/voiceroom/internal/adapters/wire"
	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
	"github.com/openvoice/voiceroom/internal/service/local"
)

const writeDeadline = 5 * time.Second

// session couples one socket with one hub client.
type session struct {
	conn       *wsConn
	client     *local.Client
	pingPeriod time.Duration
}

// pongWait leaves one missed ping of slack before the read side gives up.
func (s *session) pongWait() time.Duration {
	return s.pingPeriod + s.pingPeriod/2
}

func (s *session) writePump() {
	ticker := time.NewTicker(s.pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case data, ok := <-s.conn.send:
			if !ok {
				return
			}
			if err := s.conn.conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
				log.Error().Err(err).Str("module", "adapters.signal").Msg("writePump set deadline")
				return
			}
			if err := s.conn.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "adapters.signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := s.conn.conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
				return
			}
			if err := s.conn.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *session) readPump() {
	defer func() {
		log.Info().Str("module", "adapters.signal").Msg("readPump closing")
		s.client.Close()
		s.conn.close()
	}()
	_ = s.conn.conn.SetReadDeadline(time.Now().Add(s.pongWait()))
	s.conn.conn.SetPongHandler(func(string) error {
		return s.conn.conn.SetReadDeadline(time.Now().Add(s.pongWait()))
	})
	for {
		_, data, err := s.conn.conn.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Str("module", "adapters.signal").Msg("readPump read error")
			return
		}
		_ = s.conn.conn.SetReadDeadline(time.Now().Add(s.pongWait()))
		s.handleOp(data)
	}
}

// onEvent serializes a hub event onto the socket.
func (s *session) onEvent(ev core.Event) {
	env, err := wire.EncodeEvent(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.signal").Msg("encode event")
		return
	}
	s.sendEnvelope(env)
}

func (s *session) sendEnvelope(env wire.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.signal").Msg("marshal envelope")
		return
	}
	if err := s.conn.trySend(data); err != nil {
		log.Warn().Err(err).Str("module", "adapters.signal").Msg("send dropped")
	}
}

// ack builds the result callback for one op.
func (s *session) ack(seq uint64) core.Callback {
	return func(code int, msg string) {
		s.sendEnvelope(wire.Envelope{Kind: wire.KindAck, Seq: seq, Code: code, Msg: msg})
	}
}

func (s *session) ackData(seq uint64, code int, msg string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.signal").Msg("marshal ack payload")
		return
	}
	s.sendEnvelope(wire.Envelope{Kind: wire.KindAck, Seq: seq, Code: code, Msg: msg, Data: data})
}

func (s *session) handleOp(data []byte) {
	var env wire.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "adapters.signal").Msg("bad json")
		return
	}
	if env.Kind != wire.KindOp {
		log.Warn().Str("module", "adapters.signal").Str("kind", env.Kind).Msg("unexpected envelope")
		return
	}

	switch env.Op {
	case wire.OpCreateRoom:
		var p wire.CreateRoomOp
		if !s.decode(env, &p) {
			return
		}
		s.client.CreateRoom(p.RoomID, p.Params, s.ack(env.Seq))
	case wire.OpEnterRoom:
		var p wire.EnterRoomOp
		if !s.decode(env, &p) {
			return
		}
		s.client.EnterRoom(p.RoomID, s.ack(env.Seq))
	case wire.OpDestroyRoom:
		s.client.DestroyRoom(s.ack(env.Seq))
	case wire.OpExitRoom:
		s.client.ExitRoom(s.ack(env.Seq))
	case wire.OpEnterSeat:
		var p wire.SeatOp
		if !s.decode(env, &p) {
			return
		}
		s.client.EnterSeat(p.Index, s.ack(env.Seq))
	case wire.OpLeaveSeat:
		s.client.LeaveSeat(s.ack(env.Seq))
	case wire.OpPickSeat:
		var p wire.SeatOp
		if !s.decode(env, &p) {
			return
		}
		s.client.PickSeat(p.Index, p.User, s.ack(env.Seq))
	case wire.OpKickSeat:
		var p wire.SeatOp
		if !s.decode(env, &p) {
			return
		}
		s.client.KickSeat(p.Index, s.ack(env.Seq))
	case wire.OpMuteSeat:
		var p wire.SeatOp
		if !s.decode(env, &p) {
			return
		}
		s.client.MuteSeat(p.Index, p.Flag, s.ack(env.Seq))
	case wire.OpLockSeat:
		var p wire.SeatOp
		if !s.decode(env, &p) {
			return
		}
		s.client.LockSeat(p.Index, p.Flag, s.ack(env.Seq))
	case wire.OpMuteLocal:
		var p wire.FlagOp
		if !s.decode(env, &p) {
			return
		}
		s.client.MuteLocalAudio(p.Flag)
	case wire.OpMuteRemote:
		var p wire.FlagOp
		if !s.decode(env, &p) {
			return
		}
		s.client.MuteAllRemoteAudio(p.Flag)
	case wire.OpQuality:
		var p wire.QualityOp
		if !s.decode(env, &p) {
			return
		}
		s.client.SetAudioQuality(p.Quality)
	case wire.OpProfile:
		var p wire.ProfileOp
		if !s.decode(env, &p) {
			return
		}
		s.client.SetSelfProfile(p.Name, p.AvatarURL, s.ack(env.Seq))
	case wire.OpFetchUsers:
		var p wire.FetchUsersOp
		if !s.decode(env, &p) {
			return
		}
		s.client.FetchUsers(p.IDs, func(code int, msg string, users []domain.UserProfile) {
			s.ackData(env.Seq, code, msg, wire.UsersAck{Users: users})
		})
	case wire.OpMessage:
		var p wire.MessageOp
		if !s.decode(env, &p) {
			return
		}
		s.client.SendMessage(p.Text, s.ack(env.Seq))
	case wire.OpInvite:
		var p wire.InviteOp
		if !s.decode(env, &p) {
			return
		}
		s.client.SendInvitationWithID(p.InviteID, p.Cmd, p.Target, p.Payload, s.ack(env.Seq))
	case wire.OpAccept:
		var p wire.InviteOp
		if !s.decode(env, &p) {
			return
		}
		s.client.AcceptInvitation(p.InviteID, s.ack(env.Seq))
	case wire.OpReject:
		var p wire.InviteOp
		if !s.decode(env, &p) {
			return
		}
		s.client.RejectInvitation(p.InviteID, s.ack(env.Seq))
	case wire.OpVolume:
		var p wire.VolumeOp
		if !s.decode(env, &p) {
			return
		}
		s.client.SubmitVolume(p.Level)
	case wire.OpListRooms:
		s.client.ListRooms(func(code int, msg string, rooms []domain.RoomInfo) {
			s.ackData(env.Seq, code, msg, wire.RoomsAck{Rooms: rooms})
		})
	default:
		log.Warn().Str("module", "adapters.signal").Str("op", env.Op).Msg("unknown op")
	}
}

func (s *session) decode(env wire.Envelope, v any) bool {
	if len(env.Data) == 0 {
		return true
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		log.Error().Err(err).Str("module", "adapters.signal").Str("op", env.Op).Msg("bad op payload")
		return false
	}
	return true
}
