// SPDX-License-Identifier: GPL-2.0-or-later

package conlog

import (
	"fmt"
	"log/slog"
	"strings"
)

var (
	p         = slogPrintf
	developer = func() bool { return false }
)

func slogPrintf(format string, v ...interface{}) {
	msg := strings.TrimRight(fmt.Sprintf(format, v...), "\n")
	slog.Info(msg)
}

// SetPrintf replaces the console printer. nil restores the slog printer.
func SetPrintf(f func(string, ...interface{})) {
	if f == nil {
		f = slogPrintf
	}
	p = f
}

// SetDeveloper sets the check which enables DPrintf output.
func SetDeveloper(f func() bool) {
	developer = f
}

func Printf(format string, v ...interface{}) {
	p(format, v...)
}

// DPrintf only prints in developer mode.
func DPrintf(format string, v ...interface{}) {
	if developer() {
		p(format, v...)
	}
}
