package phys2d

import (
	"io"
	"log"
	"os"
)

var logger = log.New(os.Stderr, "phys2d: ", log.LstdFlags)

// SetLogger replaces the package logger. Passing nil silences warnings.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logger = l
}
