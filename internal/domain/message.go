package domain

// MessageKind distinguishes chat-log entries tied to the approval flow.
type MessageKind int

const (
	MessageNormal MessageKind = iota
	MessageAwaitingApproval
	MessageApproved
)

// Message is one entry of the append-only room chat log.
// InviteID links approval entries to their pending invitation.
type Message struct {
	UserID   UserID      `json:"user_id"`
	UserName string      `json:"user_name"`
	Content  string      `json:"content"`
	InviteID string      `json:"invite_id,omitempty"`
	Kind     MessageKind `json:"kind"`
}
