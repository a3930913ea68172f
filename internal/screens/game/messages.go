package game

import "github.com/abhisek/lessonarcade/internal/session"

// stateMsg carries a session snapshot pushed by the subscription.
type stateMsg session.State

// subscriptionClosedMsg is sent once the subscription channel closes.
type subscriptionClosedMsg struct{}
