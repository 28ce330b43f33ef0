package voice

import (
	"testing"
	"time"

	"aastha/internal/locale"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssistant(lang locale.Locale) *Assistant {
	a := NewAssistant(YellowRust, lang, nil)
	fixed := time.Date(2025, 7, 20, 9, 30, 0, 0, time.UTC)
	a.now = func() time.Time { return fixed }
	return a
}

func TestResponseDelay(t *testing.T) {
	assert.Equal(t, 3*time.Second, ResponseDelay)
}

func TestStartListeningIsImmediate(t *testing.T) {
	a := newTestAssistant(locale.English)
	assert.Equal(t, StateIdle, a.State())

	_, ok := a.StartListening()
	require.True(t, ok)
	assert.Equal(t, StateListening, a.State())
	assert.True(t, a.Listening())
	assert.Zero(t, a.Len())
}

func TestCompleteAppendsExchange(t *testing.T) {
	a := newTestAssistant(locale.English)
	ticket, _ := a.StartListening()

	require.True(t, a.Complete(ticket))
	assert.Equal(t, StateIdle, a.State())

	want := []Message{
		{Role: RoleUser, Text: "How do I treat yellow rust in wheat?", Time: a.now()},
		{Role: RoleAssistant, Text: YellowRust.Answer.EN, Time: a.now()},
	}
	if diff := cmp.Diff(want, a.Transcript(), cmpopts.IgnoreFields(Message{}, "ID")); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestTranscriptGrowsByTwoPerExchange(t *testing.T) {
	a := newTestAssistant(locale.Punjabi)
	for i := 1; i <= 3; i++ {
		ticket, ok := a.StartListening()
		require.True(t, ok)
		require.True(t, a.Complete(ticket))
		assert.Equal(t, 2*i, a.Len())
	}

	msgs := a.Transcript()
	assert.Equal(t, YellowRust.Question.PA, msgs[0].Text)
	assert.Equal(t, YellowRust.Answer.PA, msgs[1].Text)

	ids := map[string]bool{}
	for _, m := range msgs {
		assert.NotEmpty(t, m.ID)
		assert.False(t, ids[m.ID], "duplicate id %s", m.ID)
		ids[m.ID] = true
	}
}

func TestStopBeforeDelayLeavesTranscriptUnchanged(t *testing.T) {
	a := newTestAssistant(locale.English)
	ticket, _ := a.StartListening()

	a.StopListening()
	assert.Equal(t, StateIdle, a.State())

	assert.False(t, a.Complete(ticket))
	assert.Zero(t, a.Len())
	assert.Equal(t, StateIdle, a.State())
}

func TestStopIsIdempotent(t *testing.T) {
	a := newTestAssistant(locale.English)
	a.StopListening()
	a.StopListening()
	assert.Equal(t, StateIdle, a.State())

	ticket, _ := a.StartListening()
	a.StopListening()
	a.StopListening()
	assert.False(t, a.Complete(ticket))
}

func TestRestartInvalidatesOldTicket(t *testing.T) {
	a := newTestAssistant(locale.English)
	old, _ := a.StartListening()
	a.StopListening()
	cur, ok := a.StartListening()
	require.True(t, ok)

	assert.False(t, a.Complete(old))
	assert.True(t, a.Listening())
	assert.True(t, a.Complete(cur))
	assert.Equal(t, 2, a.Len())
}

func TestStartWhileListening(t *testing.T) {
	a := newTestAssistant(locale.English)
	first, _ := a.StartListening()
	_, ok := a.StartListening()
	assert.False(t, ok)
	assert.True(t, a.Complete(first))
}

func TestCloseIgnoresLateCompletion(t *testing.T) {
	a := newTestAssistant(locale.English)
	ticket, _ := a.StartListening()
	a.Close()

	assert.False(t, a.Complete(ticket))
	_, ok := a.StartListening()
	assert.False(t, ok)
	assert.Zero(t, a.Len())
}

func TestTranscriptIsCopy(t *testing.T) {
	a := newTestAssistant(locale.English)
	ticket, _ := a.StartListening()
	a.Complete(ticket)

	msgs := a.Transcript()
	msgs[0].Text = "changed"
	assert.Equal(t, YellowRust.Question.EN, a.Transcript()[0].Text)
}
