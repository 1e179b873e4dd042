// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"fmt"
	"strconv"
)

var (
	developer bool
	stats     bool

	trace = boolInt{false, 1}

	frames int

	execFile string
	level    string
)

type boolInt struct {
	set bool
	num int
}

func (b *boolInt) IsBoolFlag() bool {
	// We can not support both "-flag" and "-flag 10"
	// This allows "-flag", and "-flag=10"
	// and also "-flag=true" and "-flag=false"
	// but not "-flag 10"
	return true
}

func (b *boolInt) Set(s string) error {
	v, err := strconv.ParseInt(s, 0, strconv.IntSize)
	if err != nil {
		v, err := strconv.ParseBool(s)
		b.set = v
		return err
	}
	b.set = true
	b.num = int(v)
	return nil
}

func (b *boolInt) String() string {
	return fmt.Sprintf("Set: %v, Num: %v", b.set, b.num)
}

func init() {
	flag.BoolVar(&developer, "developer", false, "enable developer messages")
	flag.BoolVar(&stats, "stats", false, "print the build and simulation statistics as json")

	flag.Var(&trace, "trace", "log the body every frame, optional frame interval")

	flag.IntVar(&frames, "frames", 120, "number of simulated frames")

	flag.StringVar(&execFile, "exec", "", "config script to run before building")
	flag.StringVar(&level, "level", "demo", "level to build")
}

func Developer() bool {
	return developer
}

func Stats() bool {
	return stats
}

func Trace() bool {
	return trace.set
}

// TraceInterval is the number of frames between two trace lines.
func TraceInterval() int {
	if trace.num < 1 {
		return 1
	}
	return trace.num
}

func Frames() int {
	return frames
}

func Exec() string {
	return execFile
}

func Level() string {
	return level
}
