// Package voice simulates the spoken question-and-answer exchange: listening
// lasts a fixed delay, after which a scripted question and reply are added
// to the transcript.
package voice

import (
	"time"

	"aastha/internal/locale"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResponseDelay is how long the assistant "listens" before answering.
const ResponseDelay = 3 * time.Second

// Role is the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry.
type Message struct {
	ID   string
	Role Role
	Text string
	Time time.Time
}

// Script is the canned exchange played after each listening period.
type Script struct {
	Question locale.Text
	Answer   locale.Text
}

// YellowRust is the only exchange the assistant knows.
var YellowRust = Script{
	Question: locale.Text{
		EN: "How do I treat yellow rust in wheat?",
		PA: "ਕਣਕ ਵਿੱਚ ਪੀਲੀ ਕੰਗੀ ਦਾ ਇਲਾਜ ਕਿਵੇਂ ਕਰਾਂ?",
	},
	Answer: locale.Text{
		EN: "For yellow rust treatment, spray fungicide containing **Propiconazole** early morning. " +
			"Remove infected leaves and ensure good field drainage. Monitor your crop daily for 2 weeks.",
		PA: "ਪੀਲੀ ਕੰਗੀ ਦੇ ਇਲਾਜ ਲਈ, ਸਵੇਰੇ **ਪ੍ਰੋਪੀਕੋਨਾਜ਼ੋਲ** ਵਾਲਾ ਫੰਗੀਸਾਈਡ ਸਪਰੇ ਕਰੋ। " +
			"ਸੰਕਰਮਿਤ ਪੱਤੇ ਹਟਾਓ ਅਤੇ ਖੇਤ ਦੀ ਚੰਗੀ ਨਿਕਾਸੀ ਯਕੀਨੀ ਬਣਾਓ। 2 ਹਫ਼ਤਿਆਂ ਤੱਕ ਰੋਜ਼ਾਨਾ ਆਪਣੀ ਫ਼ਸਲ ਦੀ ਨਿਗਰਾਨੀ ਕਰੋ।",
	},
}

// State is the listening state.
type State int

const (
	StateIdle State = iota
	StateListening
)

func (s State) String() string {
	if s == StateListening {
		return "listening"
	}
	return "idle"
}

// Ticket identifies one listening period. A completion carrying an old
// ticket is ignored.
type Ticket uint64

// Assistant holds the transcript for one voice screen. It is driven from the
// UI loop and is not safe for concurrent use.
type Assistant struct {
	id     string
	script Script
	lang   locale.Locale
	logger *zap.Logger
	now    func() time.Time

	state      State
	ticket     Ticket
	closed     bool
	transcript []Message
}

// NewAssistant returns an idle assistant with an empty transcript.
func NewAssistant(script Script, lang locale.Locale, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Assistant{
		id:     id,
		script: script,
		lang:   lang,
		logger: logger.Named("voice").With(zap.String("assistant", id)),
		now:    time.Now,
	}
}

// ID distinguishes this assistant from the ones created for earlier visits
// to the voice screen.
func (a *Assistant) ID() string { return a.id }

// State returns the listening state.
func (a *Assistant) State() State { return a.state }

// Listening reports whether a listening period is running.
func (a *Assistant) Listening() bool { return a.state == StateListening }

// StartListening enters Listening and returns the ticket the caller must hand
// back to Complete after ResponseDelay. It returns false if already
// listening or closed.
func (a *Assistant) StartListening() (Ticket, bool) {
	if a.closed || a.state == StateListening {
		return 0, false
	}
	a.ticket++
	a.state = StateListening
	a.logger.Debug("listening", zap.Uint64("ticket", uint64(a.ticket)))
	return a.ticket, true
}

// StopListening returns to Idle without touching the transcript. Any pending
// completion becomes stale.
func (a *Assistant) StopListening() {
	if a.state != StateListening {
		return
	}
	a.ticket++
	a.state = StateIdle
	a.logger.Debug("listening stopped")
}

// Complete finishes the listening period identified by t, appending the
// scripted question and answer. It reports whether anything was appended.
func (a *Assistant) Complete(t Ticket) bool {
	if a.closed || a.state != StateListening || t != a.ticket {
		a.logger.Debug("ignored stale response", zap.Uint64("ticket", uint64(t)))
		return false
	}
	now := a.now()
	a.transcript = append(a.transcript,
		Message{ID: uuid.NewString(), Role: RoleUser, Text: a.script.Question.In(a.lang), Time: now},
		Message{ID: uuid.NewString(), Role: RoleAssistant, Text: a.script.Answer.In(a.lang), Time: now},
	)
	a.state = StateIdle
	a.logger.Info("scripted exchange added", zap.Int("transcript_len", len(a.transcript)))
	return true
}

// Close stops listening and ignores every later completion.
func (a *Assistant) Close() {
	a.StopListening()
	a.closed = true
}

// Transcript returns a copy of the messages in insertion order.
func (a *Assistant) Transcript() []Message {
	out := make([]Message, len(a.transcript))
	copy(out, a.transcript)
	return out
}

// Len returns the number of transcript messages.
func (a *Assistant) Len() int { return len(a.transcript) }
