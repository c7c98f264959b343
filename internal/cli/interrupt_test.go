package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInterruptHandlerDefaultsWriter(t *testing.T) {
	h := NewInterruptHandler(nil)
	assert.NotNil(t, h.writer)
	assert.False(t, h.WasInterrupted())
}

func TestInterruptCancelsContext(t *testing.T) {
	var out bytes.Buffer
	h := NewInterruptHandler(&out)

	ctx, stop := h.HandleInterrupts(context.Background(), "server")
	defer stop()

	select {
	case <-ctx.Done():
		t.Fatal("context cancelled before interrupt")
	default:
	}

	h.interrupt()
	h.interrupt()

	<-ctx.Done()
	assert.True(t, h.WasInterrupted())
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("Interrupted")))
	assert.Contains(t, out.String(), "stopping server")
}

func TestStopWithoutInterrupt(t *testing.T) {
	h := NewInterruptHandler(&bytes.Buffer{})
	ctx, stop := h.HandleInterrupts(context.Background(), "")
	stop()

	<-ctx.Done()
	assert.False(t, h.WasInterrupted())
}
