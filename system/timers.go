package system

// timers decrements the delay and sound timer every divider steps. Each
// timer has its own step counter, which only runs while the timer is
// non-zero, so a freshly written timer always lasts value*divider steps.
type timers struct {
	divider    int
	delayCount int
	soundCount int
}

// tick advances both timers by one step and returns their new values.
func (t *timers) tick(delay, sound uint8) (uint8, uint8) {
	return t.decay(delay, &t.delayCount), t.decay(sound, &t.soundCount)
}

func (t *timers) decay(timer uint8, counter *int) uint8 {
	if timer == 0 {
		*counter = 0
		return 0
	}
	*counter++
	if *counter < t.divider {
		return timer
	}
	*counter = 0
	return timer - 1
}
