package history_test

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/fridaylabs/friday-go/core"
	"github.com/fridaylabs/friday-go/history"
)

func newBuffer(capacity int) *history.Buffer {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return history.NewBuffer(capacity, log)
}

func exchange(role core.Role, content string) core.Exchange {
	return core.Exchange{Role: role, Content: content, Timestamp: time.Now()}
}

func TestAppendAndWindow(t *testing.T) {
	b := newBuffer(4)

	b.Append(exchange(core.RoleUser, "hello"))
	b.Append(exchange(core.RoleAssistant, "hi there"))

	window := b.Window(4)
	assert.Len(t, window, 2)
	assert.Equal(t, "hello", window[0].Content)
	assert.Equal(t, "hi there", window[1].Content)
}

func TestFIFOEviction(t *testing.T) {
	b := newBuffer(3)

	for i := 0; i < 7; i++ {
		b.Append(exchange(core.RoleUser, fmt.Sprintf("msg-%d", i)))
	}

	assert.Equal(t, 3, b.Len())

	window := b.Window(3)
	assert.Equal(t, "msg-4", window[0].Content)
	assert.Equal(t, "msg-5", window[1].Content)
	assert.Equal(t, "msg-6", window[2].Content)
}

func TestInvalidExchangesDropped(t *testing.T) {
	b := newBuffer(4)

	b.Append(core.Exchange{Role: "narrator", Content: "meanwhile"})
	b.Append(core.Exchange{Role: core.RoleUser, Content: ""})
	b.Append(exchange(core.RoleUser, "valid"))

	assert.Equal(t, 1, b.Len())
	assert.Equal(t, "valid", b.Window(4)[0].Content)
}

func TestWindowSmallerThanContents(t *testing.T) {
	b := newBuffer(8)
	for i := 0; i < 5; i++ {
		b.Append(exchange(core.RoleUser, fmt.Sprintf("msg-%d", i)))
	}

	window := b.Window(2)
	assert.Len(t, window, 2)
	assert.Equal(t, "msg-3", window[0].Content)
	assert.Equal(t, "msg-4", window[1].Content)
}

func TestDefaultCapacity(t *testing.T) {
	b := newBuffer(0)
	for i := 0; i < 20; i++ {
		b.Append(exchange(core.RoleAssistant, fmt.Sprintf("msg-%d", i)))
	}
	assert.Equal(t, history.DefaultCapacity, b.Len())
}
