package service

import (
	"github.com/BarkinBalci/landing-behavior-service/internal/dto"
)

// BehaviorServicer defines the interface for session behavior operations
type BehaviorServicer interface {
	StartSession() (*dto.StartSessionResponse, error)
	EndSession(sessionID string) error
	TrackEvent(sessionID string, req *dto.TrackEventRequest) error
	ReportScroll(sessionID string, req *dto.ScrollSignalRequest) error
	ReportTime(sessionID string, req *dto.TimeSignalRequest) error
	OpenModal(sessionID, modalID string) error
	CloseModal(sessionID, modalID string) error
	CloseAllModals(sessionID string) error
	SubmitForm(sessionID, formID string, req *dto.SubmitFormRequest) (*dto.SubmitFormResponse, error)
	ToggleChat(sessionID string) (*dto.ChatStateResponse, error)
	SendChatMessage(sessionID string, req *dto.ChatMessageRequest) (*dto.ChatStateResponse, error)
	NavigateCarousel(sessionID, direction string) (*dto.CarouselStateResponse, error)
	CounterSeen(sessionID string, req *dto.CounterSignalRequest) error
	Countdown(sessionID string) (*dto.CountdownResponse, error)
	SessionState(sessionID string) (*dto.SessionStateResponse, error)
}
