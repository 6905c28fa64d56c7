//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"image/color"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHost(t *testing.T, in string) (*Host, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	h := NewHost(HostConfig{
		VolumeDir: t.TempDir(),
		HostIn:    strings.NewReader(in),
		HostOut:   &out,
		Logger:    NullLogger(),
	})
	return h, &out
}

func TestFramebufferPublishesOnDisplay(t *testing.T) {
	h, _ := newTestHost(t, "")
	d := h.Display()
	w, ht := d.Size()
	require.Equal(t, int16(128), w)
	require.Equal(t, int16(64), ht)

	d.SetPixel(3, 2, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	d.SetPixel(-1, 500, color.RGBA{R: 255})
	frame := h.Frame(nil)
	assert.False(t, frame[2*128+3], "not visible before Display")

	require.NoError(t, d.Display())
	frame = h.Frame(frame)
	assert.True(t, frame[2*128+3])
	assert.EqualValues(t, 1, h.Frames())

	d.ClearBuffer()
	require.NoError(t, d.Display())
	frame = h.Frame(frame)
	assert.False(t, frame[2*128+3])
}

func TestStreamSerialIsNonBlocking(t *testing.T) {
	h, out := newTestHost(t, "AB")
	link := h.HostLink()

	var got []byte
	require.Eventually(t, func() bool {
		for {
			b, err := link.ReadByte()
			if err != nil {
				return len(got) == 2
			}
			got = append(got, b)
		}
	}, time.Second, time.Millisecond)
	assert.Equal(t, "AB", string(got))

	_, err := link.ReadByte()
	assert.ErrorIs(t, err, ErrNoData)
	assert.Zero(t, link.Buffered())

	require.NoError(t, link.WriteByte('z'))
	assert.Equal(t, "z", out.String())

	bs, ok := link.(BaudSetter)
	require.True(t, ok)
	bs.SetBaudRate(300)
}

func TestDeviceLinkDefaultsToNull(t *testing.T) {
	h, _ := newTestHost(t, "")
	_, err := h.DeviceLink().ReadByte()
	assert.ErrorIs(t, err, ErrNoData)
	assert.NoError(t, h.DeviceLink().WriteByte('x'))
}

func TestHostButtonsAreActiveLow(t *testing.T) {
	h, _ := newTestHost(t, "")
	pins := h.Buttons()
	for _, p := range pins {
		require.NoError(t, p.Configure(GPIOModeInput, GPIOPullUp))
	}
	h.SetButton(ButtonConfirm, true)
	level, err := pins[ButtonConfirm].Read()
	require.NoError(t, err)
	assert.False(t, level)
	assert.Equal(t, "PLAY", pins[ButtonConfirm].Name())
}

func TestRenderHalfBlocks(t *testing.T) {
	px := []bool{
		true, false, true, false,
		true, true, false, false,
	}
	assert.Equal(t, "█▄▀ ", renderHalfBlocks(px, 4, 2))
}

func TestButtonForRune(t *testing.T) {
	i, ok := ButtonForRune('m')
	assert.True(t, ok)
	assert.Equal(t, ButtonMenu, i)
	_, ok = ButtonForRune('?')
	assert.False(t, ok)
}

type pinWatcher struct {
	mu   sync.Mutex
	seen map[int]bool
}

func TestRunHeadlessReplaysScript(t *testing.T) {
	h, _ := newTestHost(t, "")
	pins := h.Buttons()
	for _, p := range pins {
		require.NoError(t, p.Configure(GPIOModeInput, GPIOPullUp))
	}

	w := &pinWatcher{seen: map[int]bool{}}
	run := func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			for i, p := range pins {
				if level, _ := p.Read(); !level {
					w.mu.Lock()
					w.seen[i] = true
					w.mu.Unlock()
				}
			}
			time.Sleep(time.Millisecond)
		}
	}

	err := RunHeadless(context.Background(), h, run, HeadlessConfig{
		Duration:    400 * time.Millisecond,
		Keys:        "mj",
		KeyInterval: 50 * time.Millisecond,
		Hold:        20 * time.Millisecond,
	})
	require.NoError(t, err)

	w.mu.Lock()
	defer w.mu.Unlock()
	assert.True(t, w.seen[ButtonMenu])
	assert.True(t, w.seen[ButtonNext])
	assert.False(t, w.seen[ButtonCancel])
}

func TestRunHeadlessRejectsLongHold(t *testing.T) {
	h, _ := newTestHost(t, "")
	err := RunHeadless(context.Background(), h, func(context.Context) error { return nil },
		HeadlessConfig{KeyInterval: time.Millisecond, Hold: time.Second})
	assert.Error(t, err)
}
