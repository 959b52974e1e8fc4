package economy

// Timer fires an effect every Interval seconds. It fires at most once per
// tick; time beyond the interval is discarded when it fires.
type Timer struct {
	Interval float64 // Seconds between fires; <= 0 disables the timer
	Amount   float64 // Payload per fire
	acc      float64
}

// Enabled reports whether the timer can fire.
func (t *Timer) Enabled() bool {
	return t.Interval > 0
}

// Advance adds dt and reports whether the timer fired.
func (t *Timer) Advance(dt float64) bool {
	if !t.Enabled() {
		return false
	}
	t.acc += dt
	if t.acc < t.Interval {
		return false
	}
	t.acc = 0
	return true
}

// Progress returns how far the timer is towards its next fire, in [0, 1].
func (t *Timer) Progress() float64 {
	if !t.Enabled() {
		return 0
	}
	return min(1, t.acc/t.Interval)
}
