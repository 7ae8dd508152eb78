//go:build !unix

package main

import "golang.org/x/term"

func terminalSize(fd int) (width, height int, ok bool) {
	w, h, err := term.GetSize(fd)
	if err != nil || w == 0 || h == 0 {
		return 0, 0, false
	}
	return w, h, true
}
