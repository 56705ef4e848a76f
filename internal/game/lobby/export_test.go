package lobby

// StepNow runs one simulation tick on the owning goroutine, letting tests
// drive the loop deterministically instead of waiting on the ticker.
func (l *Lobby) StepNow() {
	l.do(func() { l.step() })
}
