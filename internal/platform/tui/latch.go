package tui

import "time"

// latchFor is how long a key press counts as held. Terminals send no key
// release events, so holding a key relies on auto-repeat refreshing the latch.
const latchFor = 150 * time.Millisecond

// inputLatch turns discrete key presses into continuous movement and fire state.
type inputLatch struct {
	moveX, moveY   int
	xUntil, yUntil time.Time
	heldUntil      time.Time
	mouseHeld      bool
}

func (l *inputLatch) press(ev KeyEvent, now time.Time) {
	if ev.MoveX != 0 {
		l.moveX, l.xUntil = ev.MoveX, now.Add(latchFor)
	}
	if ev.MoveY != 0 {
		l.moveY, l.yUntil = ev.MoveY, now.Add(latchFor)
	}
	if ev.Held {
		l.heldUntil = now.Add(latchFor)
	}
}

// sample returns the movement axes and held flag in effect at now.
func (l *inputLatch) sample(now time.Time) (mx, my int, held bool) {
	if now.Before(l.xUntil) {
		mx = l.moveX
	}
	if now.Before(l.yUntil) {
		my = l.moveY
	}
	held = l.mouseHeld || now.Before(l.heldUntil)
	return mx, my, held
}

func (l *inputLatch) reset() {
	*l = inputLatch{}
}
