package browser

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"ttypanel/panel/buttons"
	"ttypanel/panel/menu"
	"ttypanel/panel/volume"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScreen struct {
	buf    strings.Builder
	frames []string
}

func (s *fakeScreen) Clear()                              { s.buf.Reset() }
func (s *fakeScreen) WriteString(str string) (int, error) { return s.buf.WriteString(str) }
func (s *fakeScreen) Size() (int, int)                    { return 21, 8 }

func (s *fakeScreen) Flush() error {
	s.frames = append(s.frames, s.buf.String())
	return nil
}

type script []buttons.Events

func (s *script) Poll() buttons.Events {
	if len(*s) == 0 {
		var ev buttons.Events
		ev[buttons.Cancel] = buttons.Pressed
		return ev
	}
	ev := (*s)[0]
	*s = (*s)[1:]
	return ev
}

func keys(ids ...buttons.ID) *script {
	s := script{}
	for _, id := range ids {
		var ev buttons.Events
		ev[id] = buttons.Pressed
		s = append(s, ev)
	}
	return &s
}

func testVolume() volume.Volume {
	return volume.NewFS(fstest.MapFS{
		"A.TXT":      {Data: []byte("0123456789")},
		"b.txt":      {Data: []byte("b")},
		"SUB/C.TXT":  {Data: []byte("c")},
		".TRASH/X":   {Data: []byte("x")},
		"NOTES.BAS":  {Data: []byte("10 END\n")},
		"SUB/D/E.BA": {Data: []byte("e")},
	})
}

func labels(l *menu.List) []string {
	out := make([]string, 0, l.Len())
	for _, it := range l.Items {
		out = append(out, it.Label)
	}
	return out
}

func newBrowser(t *testing.T, s *script, opts ...Option) (*Browser, *fakeScreen) {
	t.Helper()
	screen := &fakeScreen{}
	b, err := New(testVolume(), menu.NewEngine(screen, s), opts...)
	require.NoError(t, err)
	return b, screen
}

func TestEnterRootHasNoParentEntry(t *testing.T) {
	b, _ := newBrowser(t, keys())
	l, err := b.Enter("/")
	require.NoError(t, err)
	assert.Equal(t, []string{"A.TXT", "b.txt", "NOTES.BAS", "SUB"}, labels(l))

	sub := l.Items[3]
	assert.True(t, sub.Dir)
	assert.Equal(t, menu.Descend, sub.Action.Kind)
	assert.Equal(t, "/SUB", sub.Action.Path)

	file := l.Items[0]
	assert.False(t, file.Dir)
	assert.Equal(t, menu.OpenFile, file.Action.Kind)
	assert.Equal(t, "/A.TXT", file.Action.Path)
}

func TestEnterSubdirPutsParentFirst(t *testing.T) {
	b, _ := newBrowser(t, keys())
	l, err := b.Enter("/SUB")
	require.NoError(t, err)
	assert.Equal(t, []string{"..", "C.TXT", "D"}, labels(l))
	assert.Equal(t, menu.DescendTo("/"), l.Items[0].Action)
	assert.Equal(t, "/SUB", b.Path())

	l, err = b.Enter("/SUB/D")
	require.NoError(t, err)
	assert.Equal(t, menu.DescendTo("/SUB"), l.Items[0].Action)
}

func TestCapacityTruncates(t *testing.T) {
	b, _ := newBrowser(t, keys(), WithCapacity(2))
	l, err := b.Enter("/SUB")
	require.NoError(t, err)
	assert.Equal(t, []string{"..", "C.TXT"}, labels(l))
}

func TestFilterKeepsDirectories(t *testing.T) {
	b, _ := newBrowser(t, keys(), WithFilter("*.txt"))
	l, err := b.Enter("/")
	require.NoError(t, err)
	assert.Equal(t, []string{"A.TXT", "b.txt", "SUB"}, labels(l))

	_, err = New(testVolume(), nil, WithFilter("[unterminated"))
	assert.Error(t, err)
}

func TestBrowseDescendAndReturn(t *testing.T) {
	// Into SUB, back out through "..", then pick b.txt.
	s := keys(
		buttons.Next, buttons.Next, buttons.Next, buttons.Confirm,
		buttons.Confirm,
		buttons.Next, buttons.Confirm,
	)
	b, screen := newBrowser(t, s)

	sel, err := b.Browse("/")
	require.NoError(t, err)
	assert.Equal(t, Selection{Dir: "/", Name: "b.txt"}, sel)
	assert.Equal(t, "/b.txt", sel.Path())
	assert.Equal(t, "/", b.Path())

	require.NotEmpty(t, screen.frames)
	assert.Contains(t, screen.frames[0], "> A.TXT")
	assert.Contains(t, screen.frames[0], "  SUB/")
}

func TestBrowseCancel(t *testing.T) {
	b, _ := newBrowser(t, keys(buttons.Next, buttons.Cancel))
	_, err := b.Browse("/SUB")
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestBrowseEnumerationErrorShowsCode(t *testing.T) {
	b, screen := newBrowser(t, keys(buttons.Confirm))
	_, err := b.Browse("/MISSING")
	require.Error(t, err)
	assert.Equal(t, volume.CodeNoPath, volume.Code(err))
	assert.Equal(t, fmt.Sprintf("DIR ERR %d\n/MISSING", volume.CodeNoPath), screen.frames[len(screen.frames)-1])
}
