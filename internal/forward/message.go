package forward

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/swipeshell/internal/input"
)

// MessageType is the type tag carried by every forwarded message.
const MessageType = "gesture-event"

// Message decoding errors.
var (
	ErrInvalidMessage = errors.New("forward: invalid message")
	ErrWrongType      = errors.New("forward: not a gesture event")
)

// Message is a pointer event in child-local coordinates.
type Message struct {
	EventType string
	Point     input.Point
}

// Encode returns the wire form of m.
func Encode(m Message) ([]byte, error) {
	buf := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err != nil {
			return
		}
		buf, err = sjson.SetBytes(buf, path, v)
	}
	set("type", MessageType)
	set("eventType", m.EventType)
	set("x", m.Point.X)
	set("y", m.Point.Y)
	if err != nil {
		return nil, fmt.Errorf("encode gesture event: %w", err)
	}
	return buf, nil
}

// Decode parses a message produced by Encode.
func Decode(data []byte) (Message, error) {
	if !gjson.ValidBytes(data) {
		return Message{}, ErrInvalidMessage
	}
	fields := gjson.GetManyBytes(data, "type", "eventType", "x", "y")
	if fields[0].String() != MessageType {
		return Message{}, fmt.Errorf("%w: %q", ErrWrongType, fields[0].String())
	}
	if !fields[1].Exists() || fields[2].Type != gjson.Number || fields[3].Type != gjson.Number {
		return Message{}, fmt.Errorf("%w: missing field", ErrInvalidMessage)
	}
	return Message{
		EventType: fields[1].String(),
		Point:     input.Pt(fields[2].Float(), fields[3].Float()),
	}, nil
}
