package forward

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dshills/swipeshell/internal/input"
)

type fixedSurface struct {
	bounds  input.Rect
	mounted bool
}

func (s fixedSurface) Bounds() (input.Rect, bool) {
	return s.bounds, s.mounted
}

type failingChannel struct{}

func (failingChannel) Post([]byte) error { return errors.New("broken pipe") }

func TestEncode(t *testing.T) {
	data, err := Encode(Message{EventType: "click", Point: input.Pt(12, 34.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"gesture-event","eventType":"click","x":12,"y":34.5}`, string(data))
}

func TestDecode(t *testing.T) {
	m, err := Decode([]byte(`{"type":"gesture-event","eventType":"click","x":-3,"y":7.25}`))
	require.NoError(t, err)
	assert.Equal(t, Message{EventType: "click", Point: input.Pt(-3, 7.25)}, m)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"not json", `{"type":`, ErrInvalidMessage},
		{"wrong type", `{"type":"resize","eventType":"click","x":1,"y":2}`, ErrWrongType},
		{"missing type", `{"eventType":"click","x":1,"y":2}`, ErrWrongType},
		{"missing event type", `{"type":"gesture-event","x":1,"y":2}`, ErrInvalidMessage},
		{"string coordinate", `{"type":"gesture-event","eventType":"click","x":"1","y":2}`, ErrInvalidMessage},
		{"missing y", `{"type":"gesture-event","eventType":"click","x":1}`, ErrInvalidMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestForwardTranslatesToLocal(t *testing.T) {
	ch := NewChanChannel(4)
	surface := fixedSurface{
		bounds:  input.Rect{Min: input.Pt(100, 40), Width: 300, Height: 200},
		mounted: true,
	}
	New(surface, ch, nil).Forward("click", input.Pt(150, 90))

	require.Len(t, ch.Messages(), 1)
	m, err := Decode(<-ch.Messages())
	require.NoError(t, err)
	assert.Equal(t, "click", m.EventType)
	assert.Equal(t, input.Pt(50, 50), m.Point)
}

func TestForwardOutsideBoundsStillPosts(t *testing.T) {
	ch := NewChanChannel(4)
	surface := fixedSurface{bounds: input.Rect{Min: input.Pt(100, 100), Width: 10, Height: 10}, mounted: true}
	New(surface, ch, nil).Forward("click", input.Pt(20, 30))

	m, err := Decode(<-ch.Messages())
	require.NoError(t, err)
	assert.Equal(t, input.Pt(-80, -70), m.Point)
}

func TestForwardDrops(t *testing.T) {
	full := NewChanChannel(1)
	require.NoError(t, full.Post([]byte(`{}`)))

	closed := NewChanChannel(1)
	closed.Close()

	mounted := fixedSurface{bounds: input.Rect{Width: 10, Height: 10}, mounted: true}

	tests := []struct {
		name    string
		surface Surface
		channel Channel
		message string
	}{
		{"unmounted", fixedSurface{}, NewChanChannel(1), "forward dropped: surface not mounted"},
		{"nil surface", nil, NewChanChannel(1), "forward dropped: no surface"},
		{"full channel", mounted, full, "forward dropped"},
		{"closed channel", mounted, closed, "forward dropped"},
		{"failing channel", mounted, failingChannel{}, "forward dropped"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			f := New(tt.surface, tt.channel, zap.New(core))

			assert.NotPanics(t, func() { f.Forward("click", input.Pt(1, 1)) })

			entries := logs.FilterMessage(tt.message).All()
			require.Len(t, entries, 1)
			assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
			assert.Zero(t, logs.FilterMessage("forwarded").Len())
		})
	}
}

func TestChanChannel(t *testing.T) {
	ch := NewChanChannel(2)
	require.NoError(t, ch.Post([]byte("a")))
	require.NoError(t, ch.Post([]byte("b")))
	assert.ErrorIs(t, ch.Post([]byte("c")), ErrChannelFull)

	assert.Equal(t, "a", string(<-ch.Messages()))
	require.NoError(t, ch.Post([]byte("c")))

	ch.Close()
	ch.Close()
	assert.ErrorIs(t, ch.Post([]byte("d")), ErrChannelClosed)

	var rest []string
	for m := range ch.Messages() {
		rest = append(rest, string(m))
	}
	assert.Equal(t, []string{"b", "c"}, rest)
}

func TestLocal(t *testing.T) {
	got := Local(input.Pt(10, 10), input.Rect{Min: input.Pt(2.5, -5)})
	assert.Equal(t, input.Pt(7.5, 15), got)
}
