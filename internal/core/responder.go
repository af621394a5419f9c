package core

// ViewType selects the role-specific control surface.
type ViewType int

const (
	ViewAudience ViewType = iota
	ViewAnchor
)

// ViewResponder is the passive output surface the view-model drives.
// Implementations render; they never mutate room state directly.
//
// The view-model holds a non-owning reference to its responder and treats a
// nil responder as a no-op sink, so a responder may disappear at any point.
type ViewResponder interface {
	ShowToast(message string)
	PopBack()
	SwitchView(t ViewType)
	SetRoomTitle(title string)

	RefreshSeats()
	RefreshAudience()
	RefreshChat()

	OnSeatMute(muted bool)

	ShowAlert(title, message string, ok func(), cancel func())
	// ShowActionSheet presents labeled choices; pick receives the chosen index.
	ShowActionSheet(titles []string, pick func(index int))

	ShowMessageInput(show bool)
	ShowAudienceList(show bool)

	ShowAudioEffectPanel()
	StopBackgroundMusic()
	RestoreAudioSettings()
}

// NopResponder discards every notification. Stands in when no view is
// attached.
type NopResponder struct{}

func (NopResponder) ShowToast(string)                              {}
func (NopResponder) PopBack()                                      {}
func (NopResponder) SwitchView(ViewType)                           {}
func (NopResponder) SetRoomTitle(string)                           {}
func (NopResponder) RefreshSeats()                                 {}
func (NopResponder) RefreshAudience()                              {}
func (NopResponder) RefreshChat()                                  {}
func (NopResponder) OnSeatMute(bool)                               {}
func (NopResponder) ShowAlert(_, _ string, _ func(), _ func())     {}
func (NopResponder) ShowActionSheet(_ []string, _ func(index int)) {}
func (NopResponder) ShowMessageInput(bool)                         {}
func (NopResponder) ShowAudienceList(bool)                         {}
func (NopResponder) ShowAudioEffectPanel()                         {}
func (NopResponder) StopBackgroundMusic()                          {}
func (NopResponder) RestoreAudioSettings()                         {}

var _ ViewResponder = NopResponder{}
