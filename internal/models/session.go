package models

import (
	"sync"
	"time"
)

type TurnRole string

const (
	RoleUser  TurnRole = "user"
	RoleModel TurnRole = "model"
)

// Turn is a single message in a session's transcript.
type Turn struct {
	Role TurnRole `json:"role"`
	Text string   `json:"text"`
}

// TurnKind distinguishes genuine candidate text from synthetic system events.
// The legacy wire sentinels are translated into these at the handler boundary.
type TurnKind int

const (
	KindCandidateText TurnKind = iota
	KindSilenceDetected
	KindTimeExpired
)

// Reserved wire sentinels recognized by POST /chat. Exact-match only.
const (
	SentinelSilence = "SILENCE_DETECTED"
	SentinelTimeUp  = "TIME_UP_SIGNAL"
)

type TurnMessage struct {
	Kind        TurnKind
	Text        string
	SecondsLeft int
}

func CandidateText(text string, secondsLeft int) TurnMessage {
	return TurnMessage{Kind: KindCandidateText, Text: text, SecondsLeft: secondsLeft}
}

func SilenceDetected() TurnMessage {
	return TurnMessage{Kind: KindSilenceDetected}
}

func TimeExpired() TurnMessage {
	return TurnMessage{Kind: KindTimeExpired}
}

// Session holds one candidate's interview transcript. All mutation goes through
// the methods below; the orchestrator holds the session lock for the whole of a
// turn so concurrent calls on the same session cannot interleave appends.
type Session struct {
	ID             string
	CandidateName  string
	JobRole        string
	CreatedAt      time.Time
	LastActivityAt time.Time

	mu      sync.Mutex
	history []Turn
	closed  bool
}

func NewSession(id, name, jobRole string, seed []Turn) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:             id,
		CandidateName:  name,
		JobRole:        jobRole,
		CreatedAt:      now,
		LastActivityAt: now,
	}
	s.history = append(s.history, seed...)
	return s
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// History returns a snapshot of the transcript. Callers must hold the lock.
func (s *Session) History() []Turn {
	snapshot := make([]Turn, len(s.history))
	copy(snapshot, s.history)
	return snapshot
}

// Append records one outgoing/reply pair. Callers must hold the lock.
func (s *Session) Append(outgoing, reply Turn) {
	s.history = append(s.history, outgoing, reply)
	s.LastActivityAt = time.Now().UTC()
}

// Exchanges counts the user/model pairs recorded by successful turn calls,
// excluding the persona seed pair and the kickoff exchange.
func (s *Session) Exchanges() int {
	n := (len(s.history) - 4) / 2
	if n < 0 {
		return 0
	}
	return n
}

func (s *Session) Close()       { s.closed = true }
func (s *Session) Closed() bool { return s.closed }

func (s *Session) IdleSince(now time.Time) time.Duration {
	return now.Sub(s.LastActivityAt)
}
