// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tmackgit/GameDev-sub001/conlog"
)

// Exec runs a config script. Each line is one command:
//
//	<cvar> [value]      show or set a variable
//	set <cvar> <value>  set a variable, creating it if needed
//	toggle <cvar>
//	inc <cvar> [amount]
//	reset <cvar>
//	resetall
//	cvarlist
//
// Text after // is ignored, values may be quoted.
func Exec(r io.Reader) error {
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		args := tokenize(s.Text())
		if len(args) == 0 {
			continue
		}
		if err := execute(args); err != nil {
			return errors.Wrapf(err, "line %d", line)
		}
	}
	return s.Err()
}

func tokenize(l string) []string {
	var args []string
	var cur strings.Builder
	inToken, quoted := false, false
	for i := 0; i < len(l); i++ {
		c := l[i]
		switch {
		case quoted:
			if c == '"' {
				quoted = false
				continue
			}
			cur.WriteByte(c)
		case c == '"':
			quoted, inToken = true, true
		case c == '/' && i+1 < len(l) && l[i+1] == '/':
			i = len(l)
		case c == ' ' || c == '\t' || c == '\r':
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteByte(c)
			inToken = true
		}
	}
	if inToken {
		args = append(args, cur.String())
	}
	return args
}

func lookup(name string) (*Cvar, error) {
	cv, ok := Get(name)
	if !ok {
		return nil, errors.Errorf("variable %s not found", name)
	}
	return cv, nil
}

func execute(args []string) error {
	switch args[0] {
	case "set":
		if len(args) < 3 {
			return errors.New("set <cvar> <value>")
		}
		if cv, ok := Get(args[1]); ok {
			cv.SetByString(args[2])
		} else {
			cv := create(args[1], args[2])
			cv.user = true
		}
		return nil
	case "toggle":
		if len(args) != 2 {
			return errors.New("toggle <cvar>")
		}
		cv, err := lookup(args[1])
		if err != nil {
			return err
		}
		cv.Toggle()
		return nil
	case "inc":
		if len(args) < 2 || len(args) > 3 {
			return errors.New("inc <cvar> [amount]")
		}
		cv, err := lookup(args[1])
		if err != nil {
			return err
		}
		amount := float32(1)
		if len(args) == 3 {
			f, err := strconv.ParseFloat(args[2], 32)
			if err != nil {
				return errors.Wrapf(err, "inc %s", args[1])
			}
			amount = float32(f)
		}
		cv.SetValue(cv.Value() + amount)
		return nil
	case "reset":
		if len(args) != 2 {
			return errors.New("reset <cvar>")
		}
		cv, err := lookup(args[1])
		if err != nil {
			return err
		}
		cv.Reset()
		return nil
	case "resetall":
		for _, cv := range All() {
			cv.Reset()
		}
		return nil
	case "cvarlist":
		list()
		return nil
	}
	cv, ok := Get(args[0])
	if !ok {
		return errors.Errorf("unknown command %q", args[0])
	}
	if len(args) == 1 {
		conlog.Printf("\"%s\" is \"%s\"\n", cv.Name(), cv.String())
		return nil
	}
	cv.SetByString(args[1])
	return nil
}

func list() {
	cvars := All()
	for _, v := range cvars {
		a := " "
		if v.Archive() {
			a = "*"
		}
		s := " "
		if v.Notify() {
			s = "s"
		}
		conlog.Printf("%s%s %s \"%s\"\n", a, s, v.Name(), v.String())
	}
	conlog.Printf("%v cvars\n", len(cvars))
}
