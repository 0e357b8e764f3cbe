package core

// Critical is a held critical section. While it is held no interrupt handler
// and no other thread can touch data guarded by a critical section.
//
//	cs := EnterCritical()
//	... touch shared state ...
//	cs.Exit()
//
// Critical sections must not nest.
type Critical struct {
	state State
}

// EnterCritical suppresses preemption until Exit is called.
func EnterCritical() Critical {
	return Critical{state: disableInterrupts()}
}

// Exit ends the critical section.
func (c Critical) Exit() {
	restoreInterrupts(c.state)
}
