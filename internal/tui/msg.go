package tui

import (
	"github.com/runoshun/timeflow/internal/domain"
	"github.com/runoshun/timeflow/internal/usecase"
)

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgLoaded carries a fresh view of the timer, goal and tags.
// Fields are ordered to minimize memory padding.
type MsgLoaded struct {
	Notice string // Optional message from the action that triggered the load
	Tags   []domain.Tag
	Status usecase.ShowStatusOutput
	Goal   domain.GoalView
}

func (MsgLoaded) sealed() {}

// MsgTick is sent by the refresh timer. Ticks from an older generation are dropped.
type MsgTick struct {
	Gen int
}

func (MsgTick) sealed() {}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// Ensure all message types implement Msg.
var (
	_ Msg = MsgLoaded{}
	_ Msg = MsgTick{}
	_ Msg = MsgError{}
)
