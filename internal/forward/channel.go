package forward

import (
	"errors"
	"sync"
)

// Channel errors.
var (
	ErrChannelFull   = errors.New("forward: channel full")
	ErrChannelClosed = errors.New("forward: channel closed")
)

// Channel carries encoded messages to the child surface.
type Channel interface {
	Post(data []byte) error
}

// ChanChannel is an in-process Channel backed by a buffered Go channel.
// Post never blocks.
type ChanChannel struct {
	mu     sync.RWMutex
	ch     chan []byte
	closed bool
}

// NewChanChannel creates a channel buffering up to size messages.
func NewChanChannel(size int) *ChanChannel {
	if size <= 0 {
		size = 16
	}
	return &ChanChannel{ch: make(chan []byte, size)}
}

// Post enqueues data or reports why it could not.
func (c *ChanChannel) Post(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrChannelClosed
	}
	select {
	case c.ch <- data:
		return nil
	default:
		return ErrChannelFull
	}
}

// Messages returns the receive side.
func (c *ChanChannel) Messages() <-chan []byte {
	return c.ch
}

// Close closes the channel. Further posts fail with ErrChannelClosed.
func (c *ChanChannel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.ch)
	}
}
