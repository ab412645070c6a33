package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	assert.True(t, f.Empty())

	f.Push(ActionDrop)
	f.PushColumn(3)

	assert.True(t, f.Has(ActionDrop))
	assert.True(t, f.Has(ActionColumn))
	assert.False(t, f.Has(ActionLeft))
	assert.Equal(t, 2, f.Len())

	c := f.Clone()
	f.Clear()

	assert.True(t, f.Empty())
	assert.Equal(t, []Input{{Action: ActionDrop, Column: -1}, {Action: ActionColumn, Column: 3}}, c.Inputs)
}

func TestInputFrameKeepsArrivalOrder(t *testing.T) {
	var f InputFrame

	// Two column choices and two drops arrive before the next tick.
	f.PushColumn(0)
	f.PushColumn(1)
	f.Push(ActionDrop)
	f.Push(ActionDrop)

	assert.Equal(t, []Input{
		{Action: ActionColumn, Column: 0},
		{Action: ActionColumn, Column: 1},
		{Action: ActionDrop, Column: -1},
		{Action: ActionDrop, Column: -1},
	}, f.Inputs)
}

func TestInputFrameCloneIsIndependent(t *testing.T) {
	var f InputFrame
	f.Push(ActionLeft)

	c := f.Clone()
	f.Clear()
	f.Push(ActionRight)

	assert.Equal(t, []Input{{Action: ActionLeft, Column: -1}}, c.Inputs)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "Column", ActionColumn.String())
	assert.Equal(t, "Quit", ActionQuit.String())
	assert.Equal(t, "Unknown", Action(99).String())
}

func TestParseColor(t *testing.T) {
	c, ok := ParseColor("bright_yellow")
	assert.True(t, ok)
	assert.Equal(t, ColorBrightYellow, c)

	_, ok = ParseColor("chartreuse")
	assert.False(t, ok)
}
