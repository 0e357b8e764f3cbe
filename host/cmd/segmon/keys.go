package main

import (
	"fmt"
	"os"

	tty "github.com/mattn/go-tty"
)

// watchKeys reads single keypresses from the controlling terminal:
// s prints the summary, c clears it, q quits.
func watchKeys(t *tally, quit func()) {
	term, err := tty.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "keys disabled: %v\n", err)
		return
	}
	defer term.Close()

	for {
		r, err := term.ReadRune()
		if err != nil {
			return
		}
		switch r {
		case 's':
			fmt.Print(t.summary())
		case 'c':
			t.reset()
			fmt.Println("-- counters cleared --")
		case 'q':
			quit()
			return
		}
	}
}
