package menu

import (
	"fmt"
	"strings"
	"testing"

	"ttypanel/panel/buttons"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScreen struct {
	cols, rows int
	buf        strings.Builder
	frames     [][]string
}

func (s *fakeScreen) Clear() { s.buf.Reset() }

func (s *fakeScreen) WriteString(str string) (int, error) { return s.buf.WriteString(str) }

func (s *fakeScreen) Flush() error {
	s.frames = append(s.frames, strings.Split(s.buf.String(), "\n"))
	return nil
}

func (s *fakeScreen) Size() (int, int) { return s.cols, s.rows }

func (s *fakeScreen) last() []string { return s.frames[len(s.frames)-1] }

// script replays one event set per poll, then cancels forever.
type script struct {
	steps []buttons.Events
	polls int
}

func press(id buttons.ID) buttons.Events {
	var ev buttons.Events
	ev[id] = buttons.Pressed
	return ev
}

func repeat(id buttons.ID) buttons.Events {
	var ev buttons.Events
	ev[id] = buttons.Repeat
	return ev
}

func (s *script) add(ev ...buttons.Events) *script {
	s.steps = append(s.steps, ev...)
	return s
}

func (s *script) times(n int, ev buttons.Events) *script {
	for i := 0; i < n; i++ {
		s.steps = append(s.steps, buttons.Events{}, ev)
	}
	return s
}

func (s *script) Poll() buttons.Events {
	s.polls++
	if len(s.steps) == 0 {
		return press(buttons.Cancel)
	}
	ev := s.steps[0]
	s.steps = s.steps[1:]
	return ev
}

func numbered(n int) *List {
	l := NewList(n)
	for i := 0; i < n; i++ {
		l.Add(Item{Label: fmt.Sprintf("ITEM%d", i), Action: LeafAction()})
	}
	return l
}

func TestListCapacityTruncatesSilently(t *testing.T) {
	l := NewList(2)
	assert.True(t, l.Add(Item{Label: "A"}))
	assert.True(t, l.Add(Item{Label: "B"}))
	assert.False(t, l.Add(Item{Label: "C"}))
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 2, l.Cap())

	l.Selected = 1
	l.Reset()
	assert.Zero(t, l.Len())
	assert.Zero(t, l.Selected)
	assert.Equal(t, 2, l.Cap())
}

func TestSelectConfirmReturnsIndex(t *testing.T) {
	screen := &fakeScreen{cols: 21, rows: 4}
	p := (&script{}).times(2, press(buttons.Next)).add(press(buttons.Confirm))
	e := NewEngine(screen, p)

	l := numbered(3)
	assert.Equal(t, 2, e.Select(l))
	assert.Equal(t, []string{"  ITEM0", "  ITEM1", "> ITEM2"}, screen.last())
}

func TestSelectCancel(t *testing.T) {
	screen := &fakeScreen{cols: 21, rows: 4}
	e := NewEngine(screen, (&script{}).add(press(buttons.Next), press(buttons.Cancel)))
	assert.Equal(t, -1, e.Select(numbered(3)))
}

func TestConfirmRepeatDoesNotSelect(t *testing.T) {
	screen := &fakeScreen{cols: 21, rows: 4}
	p := (&script{}).add(repeat(buttons.Confirm), repeat(buttons.Confirm), press(buttons.Cancel))
	e := NewEngine(screen, p)
	assert.Equal(t, -1, e.Select(numbered(2)))
}

func TestShortListNeverScrolls(t *testing.T) {
	screen := &fakeScreen{cols: 21, rows: 4}
	p := (&script{}).
		times(10, repeat(buttons.Next)).
		times(10, repeat(buttons.Prev)).
		times(2, press(buttons.Next))
	e := NewEngine(screen, p)
	l := numbered(4)
	e.Select(l)
	assert.Zero(t, l.Top)
	assert.Equal(t, 2, l.Selected)
}

func TestLongListAdvancesTopByOne(t *testing.T) {
	screen := &fakeScreen{cols: 21, rows: 3}
	l := numbered(10)
	for step := 1; step <= 9; step++ {
		l.Selected, l.Top = 0, 0
		p := (&script{}).times(step, press(buttons.Next))
		NewEngine(screen, p).Select(l)

		wantTop := max(0, step-2)
		assert.Equal(t, step, l.Selected, "step %d", step)
		assert.Equal(t, wantTop, l.Top, "step %d", step)
		assert.True(t, l.Top <= l.Selected && l.Selected < l.Top+3)
	}
	assert.Equal(t, []string{"  ITEM7", "  ITEM8", "> ITEM9"}, screen.last())

	// Past the end nothing moves.
	p := (&script{}).times(3, press(buttons.Next))
	NewEngine(screen, p).Select(l)
	assert.Equal(t, 9, l.Selected)
	assert.Equal(t, 7, l.Top)

	// Walking back up pulls the top along.
	p = (&script{}).times(9, repeat(buttons.Prev))
	NewEngine(screen, p).Select(l)
	assert.Zero(t, l.Selected)
	assert.Zero(t, l.Top)
}

func TestRenderMarksDirectoriesAndTruncates(t *testing.T) {
	screen := &fakeScreen{cols: 10, rows: 4}
	l := NewList(4)
	l.Add(Item{Label: "..", Action: DescendTo("/"), Dir: true})
	l.Add(Item{Label: "VERYLONGNAME.TXT", Action: OpenPath("/VERYLONGNAME.TXT")})
	l.Add(Item{Label: "PROGRAMS", Action: DescendTo("/PROGRAMS"), Dir: true})

	NewEngine(screen, &script{}).Select(l)
	require.NotEmpty(t, screen.frames)
	assert.Equal(t, []string{"> ../", "  VERYLONG", "  PROGRAM/"}, screen.frames[0])
	for _, line := range screen.frames[0] {
		assert.LessOrEqual(t, len(line), 10)
	}
}

func TestEmptyList(t *testing.T) {
	screen := &fakeScreen{cols: 21, rows: 4}
	p := (&script{}).add(press(buttons.Next), press(buttons.Confirm))
	e := NewEngine(screen, p)
	assert.Equal(t, -1, e.Select(NewList(4)))
}

func TestIdleRunsEveryIteration(t *testing.T) {
	screen := &fakeScreen{cols: 21, rows: 4}
	p := (&script{}).add(buttons.Events{}, buttons.Events{}, press(buttons.Confirm))
	idles := 0
	e := NewEngine(screen, p, WithIdle(func() { idles++ }))
	e.Select(numbered(1))
	assert.Equal(t, p.polls, idles)
}

func TestAlertWaitsForButton(t *testing.T) {
	screen := &fakeScreen{cols: 21, rows: 4}
	p := (&script{}).add(press(buttons.Next), press(buttons.Confirm))
	e := NewEngine(screen, p, WithMarkers("*", "\\"))
	assert.Equal(t, buttons.Confirm, e.Alert("DIR ERR 5", "PRESS PLAY"))
	assert.Equal(t, []string{"DIR ERR 5", "PRESS PLAY"}, screen.last())
	assert.Equal(t, 2, p.polls)
}
