package transfer

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"ttypanel/panel/fonts/font5x8"
	"ttypanel/panel/term"
	"ttypanel/panel/volume"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name  string
	draws []int
}

func (r *recorder) Draw(name string, pct int) error {
	r.name = name
	r.draws = append(r.draws, pct)
	return nil
}

type sleeps struct {
	char, line int
}

func tape(n int) []byte {
	var b bytes.Buffer
	for b.Len() < n {
		b.WriteString("10 PRINT \"HELLO\"\r\n")
	}
	return b.Bytes()[:n]
}

func newSender(t *testing.T, files fstest.MapFS, out *bytes.Buffer, p Progress, opts ...Option) (*Sender, *sleeps) {
	t.Helper()
	sl := &sleeps{}
	sleep := func(d time.Duration) {
		switch d {
		case DefaultCharDelay:
			sl.char++
		case DefaultLineDelay:
			sl.line++
		default:
			t.Fatalf("unexpected delay %v", d)
		}
	}
	opts = append([]Option{WithSleep(sleep)}, opts...)
	return New(volume.NewFS(files), out, p, opts...), sl
}

func TestSendStreamsWholeFileWithPacing(t *testing.T) {
	data := tape(1000)
	var out bytes.Buffer
	rec := &recorder{}
	s, sl := newSender(t, fstest.MapFS{"PROG.BAS": {Data: data}}, &out, rec)

	res, err := s.Send("/", "PROG.BAS")
	require.NoError(t, err)
	assert.Equal(t, data, out.Bytes())
	assert.EqualValues(t, 1000, res.Bytes)
	assert.EqualValues(t, 1000, res.Total)

	ends := bytes.Count(data, []byte("\n")) + bytes.Count(data, []byte("\r"))
	assert.Equal(t, ends, sl.line)
	assert.Equal(t, 1000-ends, sl.char)

	require.NotEmpty(t, rec.draws)
	assert.Equal(t, "PROG.BAS", rec.name)
	assert.Equal(t, 100, rec.draws[len(rec.draws)-1])
	assert.LessOrEqual(t, len(rec.draws), 101)
	assert.Equal(t, len(rec.draws), res.Draws)
	for i := 1; i < len(rec.draws); i++ {
		assert.Greater(t, rec.draws[i], rec.draws[i-1], "draws only on change")
	}
}

func TestSendLongLinesAreChunked(t *testing.T) {
	data := []byte(strings.Repeat("X", 500))
	var out bytes.Buffer
	rec := &recorder{}
	s, sl := newSender(t, fstest.MapFS{"RAW": {Data: data}}, &out, rec, WithChunkSize(100))

	res, err := s.Send("/", "RAW")
	require.NoError(t, err)
	assert.EqualValues(t, 500, res.Bytes)
	assert.Equal(t, 500, sl.char)
	assert.Equal(t, []int{20, 40, 60, 80, 100}, rec.draws)
}

func TestSendEmptyFileDrawsOnce(t *testing.T) {
	var out bytes.Buffer
	rec := &recorder{}
	s, _ := newSender(t, fstest.MapFS{"EMPTY": {Data: nil}}, &out, rec)

	res, err := s.Send("/", "EMPTY")
	require.NoError(t, err)
	assert.Zero(t, res.Bytes)
	assert.Equal(t, []int{100}, rec.draws)
	assert.Zero(t, out.Len())
}

func TestSendOpenFailureWritesNothing(t *testing.T) {
	var out bytes.Buffer
	rec := &recorder{}
	s, _ := newSender(t, fstest.MapFS{}, &out, rec)

	_, err := s.Send("/", "GONE.TXT")
	require.ErrorIs(t, err, ErrOpen)
	assert.Equal(t, volume.CodeNoFile, volume.Code(err))
	assert.Zero(t, out.Len())
	assert.Empty(t, rec.draws)
}

type brokenWriter struct{ n int }

func (w *brokenWriter) WriteByte(byte) error {
	if w.n == 0 {
		return errors.New("uart overrun")
	}
	w.n--
	return nil
}

func TestSendStopsOnWriteError(t *testing.T) {
	files := fstest.MapFS{"A": {Data: []byte("abcdef")}}
	s := New(volume.NewFS(files), &brokenWriter{n: 3}, nil, WithSleep(func(time.Duration) {}))
	res, err := s.Send("/", "A")
	require.Error(t, err)
	assert.EqualValues(t, 3, res.Bytes)
}

func TestSetDelays(t *testing.T) {
	var got []time.Duration
	files := fstest.MapFS{"A": {Data: []byte("a\n")}}
	var out bytes.Buffer
	s := New(volume.NewFS(files), &out, nil, WithSleep(func(d time.Duration) { got = append(got, d) }))
	s.SetDelays(time.Millisecond, 2*time.Millisecond)
	_, err := s.Send("/", "A")
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, got)
}

type fakeDisplay struct{ frames int }

func (d *fakeDisplay) Size() (int16, int16)              { return 128, 64 }
func (d *fakeDisplay) SetPixel(int16, int16, color.RGBA) {}
func (d *fakeDisplay) ClearBuffer()                      {}

func (d *fakeDisplay) Display() error {
	d.frames++
	return nil
}

func TestScreenProgress(t *testing.T) {
	d := &fakeDisplay{}
	surf, err := term.New(d, font5x8.Font)
	require.NoError(t, err)

	p := ScreenProgress{Surface: surf}
	require.NoError(t, p.Draw("PROG.BAS", 50))
	assert.Equal(t, 1, d.frames)
	assert.Equal(t, "SENDING", surf.Line(0))
	assert.Equal(t, "PROG.BAS", surf.Line(1))
	assert.Equal(t, " 50%", surf.Line(2))

	cols, _ := surf.Size()
	inverse := 0
	for col := 0; col < cols; col++ {
		if surf.Cell(col, 3).Attr == term.AttrInverse {
			inverse++
		}
	}
	assert.Equal(t, 50*cols/100, inverse)
}
