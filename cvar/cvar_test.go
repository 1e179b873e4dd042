// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"strings"
	"testing"
)

func TestRegister(t *testing.T) {
	cv := MustRegister("test_register", "1.5", ARCHIVE)
	if cv.Value() != 1.5 || cv.String() != "1.5" || !cv.Archive() {
		t.Errorf("Register = %v/%q/%v", cv.Value(), cv.String(), cv.Archive())
	}
	if _, err := Register("test_register", "2", NONE); err == nil {
		t.Errorf("Register twice succeeded")
	}
	if got, ok := Get("test_register"); !ok || got != cv {
		t.Errorf("Get(test_register) = %v,%v", got, ok)
	}
	if got, err := GetByID(cv.ID()); err != nil || got != cv {
		t.Errorf("GetByID(%d) = %v,%v", cv.ID(), got, err)
	}
	if _, err := GetByID(-1); err == nil {
		t.Errorf("GetByID(-1) succeeded")
	}
}

func TestSetValue(t *testing.T) {
	cv := MustRegister("test_setvalue", "0", NONE)
	called := 0
	cv.SetCallback(func(*Cvar) { called++ })
	cv.SetValue(3)
	if cv.String() != "3" {
		t.Errorf("SetValue(3) = %q, want %q", cv.String(), "3")
	}
	cv.SetValue(0.25)
	if cv.String() != "0.25" {
		t.Errorf("SetValue(0.25) = %q, want %q", cv.String(), "0.25")
	}
	cv.Toggle()
	if cv.String() != "1" || !cv.Bool() {
		t.Errorf("Toggle = %q", cv.String())
	}
	cv.Reset()
	if cv.Bool() {
		t.Errorf("Reset = %q, want 0", cv.String())
	}
	if called != 4 {
		t.Errorf("callback called %d times, want 4", called)
	}
}

func TestROM(t *testing.T) {
	cv := MustRegister("test_rom", "7", ROM)
	cv.SetByString("8")
	if cv.Value() != 7 {
		t.Errorf("ROM cvar changed to %v", cv.Value())
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   // comment", nil},
		{"sv_gravity 400", []string{"sv_gravity", "400"}},
		{"set name \"two words\" // c", []string{"set", "name", "two words"}},
		{"\tinc  x\t2\r", []string{"inc", "x", "2"}},
		{"a \"\"", []string{"a", ""}},
	}
	for _, tc := range tests {
		got := tokenize(tc.in)
		if strings.Join(got, "|") != strings.Join(tc.want, "|") || len(got) != len(tc.want) {
			t.Errorf("tokenize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExec(t *testing.T) {
	a := MustRegister("test_exec_a", "1", NONE)
	b := MustRegister("test_exec_b", "0", NONE)
	c := MustRegister("test_exec_c", "5", NONE)
	script := `// tuning
test_exec_a 2.5
toggle test_exec_b
inc test_exec_c 3
set test_exec_new "hello"
`
	if err := Exec(strings.NewReader(script)); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if a.Value() != 2.5 {
		t.Errorf("test_exec_a = %v, want 2.5", a.Value())
	}
	if !b.Bool() {
		t.Errorf("test_exec_b = %v, want 1", b.String())
	}
	if c.Value() != 8 {
		t.Errorf("test_exec_c = %v, want 8", c.Value())
	}
	n, ok := Get("test_exec_new")
	if !ok || n.String() != "hello" || !n.UserDefined() {
		t.Errorf("test_exec_new = %v,%v", n, ok)
	}
	if err := Exec(strings.NewReader("reset test_exec_c\n")); err != nil || c.Value() != 5 {
		t.Errorf("reset = %v,%v", c.Value(), err)
	}
}

func TestExecErrors(t *testing.T) {
	for _, s := range []string{
		"no_such_cvar 1",
		"toggle",
		"inc no_such_cvar",
		"set onlyname",
	} {
		if err := Exec(strings.NewReader(s)); err == nil {
			t.Errorf("Exec(%q) succeeded", s)
		}
	}
}
