// Package wsclient implements the room service over a dialed WebSocket.
// Every operation is sent as one op envelope; the matching ack is
// correlated back through its sequence number.
package wsclient

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/openvoice/voiceroom/internal/adapters/wire"
	"github.com/openvoice/voiceroom/internal/core"
	"github.com/openvoice/voiceroom/internal/domain"
)

const (
	sendBuffer    = 64
	writeDeadline = 5 * time.Second
	codeTransport = -1
)

// Conn is a core.RoomService whose calls travel over a signaling socket.
type Conn struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	seq  atomic.Uint64

	mu       sync.Mutex
	pending  map[uint64]func(wire.Envelope)
	listener func(core.Event)
	closed   bool
}

var _ core.RoomService = (*Conn)(nil)
var _ core.RoomDirectory = (*Conn)(nil)

// Dial connects to the signaling endpoint and identifies as the given
// profile. The returned Conn is ready for SetListener and operations.
func Dial(endpoint string, self domain.UserProfile) (*Conn, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("uid", string(self.ID))
	q.Set("name", self.Name)
	q.Set("avatar", self.AvatarURL)
	u.RawQuery = q.Encode()

	ws, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial signal: %w", err)
	}

	c := &Conn{
		conn:    ws,
		send:    make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
		pending: make(map[uint64]func(wire.Envelope)),
	}
	go c.writePump()
	go c.readPump()
	return c, nil
}

func (c *Conn) SetListener(fn func(core.Event)) {
	c.mu.Lock()
	c.listener = fn
	c.mu.Unlock()
}

// Close tears the socket down and fails every in-flight op.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	pending := c.pending
	c.pending = make(map[uint64]func(wire.Envelope))
	close(c.done)
	c.mu.Unlock()

	for _, fn := range pending {
		fn(wire.Envelope{Code: codeTransport, Msg: "connection closed"})
	}
	return c.conn.Close()
}

func (c *Conn) writePump() {
	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
				log.Error().Err(err).Str("module", "adapters.wsclient").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "adapters.wsclient").Msg("writePump write error")
				return
			}
		}
	}
}

func (c *Conn) readPump() {
	defer c.Close()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Str("module", "adapters.wsclient").Msg("readPump read error")
			return
		}
		c.handle(data)
	}
}

func (c *Conn) handle(data []byte) {
	var env wire.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "adapters.wsclient").Msg("bad json")
		return
	}
	switch env.Kind {
	case wire.KindAck:
		c.mu.Lock()
		fn := c.pending[env.Seq]
		delete(c.pending, env.Seq)
		c.mu.Unlock()
		if fn != nil {
			fn(env)
		}
	case wire.KindEvent:
		ev, err := wire.DecodeEvent(env)
		if err != nil {
			log.Warn().Err(err).Str("module", "adapters.wsclient").Msg("decode event")
			return
		}
		c.mu.Lock()
		fn := c.listener
		c.mu.Unlock()
		if fn != nil {
			fn(ev)
		}
	default:
		log.Warn().Str("module", "adapters.wsclient").Str("kind", env.Kind).Msg("unexpected envelope")
	}
}

// sendOp frames one operation. When onAck is nil the op is fire and forget.
func (c *Conn) sendOp(op string, payload any, onAck func(wire.Envelope)) {
	env := wire.Envelope{Kind: wire.KindOp, Op: op}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.wsclient").Str("op", op).Msg("marshal op")
			if onAck != nil {
				onAck(wire.Envelope{Code: codeTransport, Msg: err.Error()})
			}
			return
		}
		env.Data = data
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		if onAck != nil {
			onAck(wire.Envelope{Code: codeTransport, Msg: "connection closed"})
		}
		return
	}
	if onAck != nil {
		env.Seq = c.seq.Add(1)
		c.pending[env.Seq] = onAck
	}
	c.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.wsclient").Str("op", op).Msg("marshal envelope")
		return
	}
	select {
	case c.send <- data:
	case <-c.done:
		c.mu.Lock()
		_, mine := c.pending[env.Seq]
		delete(c.pending, env.Seq)
		c.mu.Unlock()
		if mine && onAck != nil {
			onAck(wire.Envelope{Code: codeTransport, Msg: "connection closed"})
		}
	default:
		log.Warn().Str("module", "adapters.wsclient").Str("op", op).Msg("send buffer full, op dropped")
		c.mu.Lock()
		delete(c.pending, env.Seq)
		c.mu.Unlock()
		if onAck != nil {
			onAck(wire.Envelope{Code: codeTransport, Msg: "send buffer full"})
		}
	}
}

func ackAdapter(cb core.Callback) func(wire.Envelope) {
	if cb == nil {
		return nil
	}
	return func(env wire.Envelope) { cb(env.Code, env.Msg) }
}

func (c *Conn) CreateRoom(id domain.RoomID, params domain.RoomParams, cb core.Callback) {
	c.sendOp(wire.OpCreateRoom, wire.CreateRoomOp{RoomID: id, Params: params}, ackAdapter(cb))
}

func (c *Conn) EnterRoom(id domain.RoomID, cb core.Callback) {
	c.sendOp(wire.OpEnterRoom, wire.EnterRoomOp{RoomID: id}, ackAdapter(cb))
}

func (c *Conn) DestroyRoom(cb core.Callback) {
	c.sendOp(wire.OpDestroyRoom, nil, ackAdapter(cb))
}

func (c *Conn) ExitRoom(cb core.Callback) {
	c.sendOp(wire.OpExitRoom, nil, ackAdapter(cb))
}

func (c *Conn) EnterSeat(index int, cb core.Callback) {
	c.sendOp(wire.OpEnterSeat, wire.SeatOp{Index: index}, ackAdapter(cb))
}

func (c *Conn) LeaveSeat(cb core.Callback) {
	c.sendOp(wire.OpLeaveSeat, nil, ackAdapter(cb))
}

func (c *Conn) PickSeat(index int, user domain.UserID, cb core.Callback) {
	c.sendOp(wire.OpPickSeat, wire.SeatOp{Index: index, User: user}, ackAdapter(cb))
}

func (c *Conn) KickSeat(index int, cb core.Callback) {
	c.sendOp(wire.OpKickSeat, wire.SeatOp{Index: index}, ackAdapter(cb))
}

func (c *Conn) MuteSeat(index int, muted bool, cb core.Callback) {
	c.sendOp(wire.OpMuteSeat, wire.SeatOp{Index: index, Flag: muted}, ackAdapter(cb))
}

func (c *Conn) LockSeat(index int, locked bool, cb core.Callback) {
	c.sendOp(wire.OpLockSeat, wire.SeatOp{Index: index, Flag: locked}, ackAdapter(cb))
}

func (c *Conn) MuteLocalAudio(muted bool) {
	c.sendOp(wire.OpMuteLocal, wire.FlagOp{Flag: muted}, nil)
}

func (c *Conn) MuteAllRemoteAudio(muted bool) {
	c.sendOp(wire.OpMuteRemote, wire.FlagOp{Flag: muted}, nil)
}

func (c *Conn) SetAudioQuality(q domain.AudioQuality) {
	c.sendOp(wire.OpQuality, wire.QualityOp{Quality: q}, nil)
}

func (c *Conn) SetSelfProfile(name, avatarURL string, cb core.Callback) {
	c.sendOp(wire.OpProfile, wire.ProfileOp{Name: name, AvatarURL: avatarURL}, ackAdapter(cb))
}

func (c *Conn) FetchUsers(ids []domain.UserID, cb core.UsersCallback) {
	c.sendOp(wire.OpFetchUsers, wire.FetchUsersOp{IDs: ids}, func(env wire.Envelope) {
		if cb == nil {
			return
		}
		var p wire.UsersAck
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &p); err != nil {
				cb(codeTransport, err.Error(), nil)
				return
			}
		}
		cb(env.Code, env.Msg, p.Users)
	})
}

func (c *Conn) SendMessage(text string, cb core.Callback) {
	c.sendOp(wire.OpMessage, wire.MessageOp{Text: text}, ackAdapter(cb))
}

// SendInvitation mints the invitation id locally so the caller can key
// its bookkeeping before the server ever sees the op.
func (c *Conn) SendInvitation(cmd core.InviteCommand, target domain.UserID, payload string, cb core.Callback) core.InvitationID {
	id := core.InvitationID(uuid.NewString())
	c.sendOp(wire.OpInvite, wire.InviteOp{InviteID: id, Cmd: cmd, Target: target, Payload: payload}, ackAdapter(cb))
	return id
}

func (c *Conn) AcceptInvitation(id core.InvitationID, cb core.Callback) {
	c.sendOp(wire.OpAccept, wire.InviteOp{InviteID: id}, ackAdapter(cb))
}

func (c *Conn) RejectInvitation(id core.InvitationID, cb core.Callback) {
	c.sendOp(wire.OpReject, wire.InviteOp{InviteID: id}, ackAdapter(cb))
}

// SubmitVolume reports the local capture level to the room.
func (c *Conn) SubmitVolume(level int) {
	c.sendOp(wire.OpVolume, wire.VolumeOp{Level: level}, nil)
}

func (c *Conn) ListRooms(cb func(code int, msg string, rooms []domain.RoomInfo)) {
	c.sendOp(wire.OpListRooms, nil, func(env wire.Envelope) {
		if cb == nil {
			return
		}
		var p wire.RoomsAck
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &p); err != nil {
				cb(codeTransport, err.Error(), nil)
				return
			}
		}
		cb(env.Code, env.Msg, p.Rooms)
	})
}
