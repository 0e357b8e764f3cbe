//go:build rp2350

package main

const timerBase = 0x400B0000 // TIMER0
