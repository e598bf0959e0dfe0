package project

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		id   string
		want Project
	}{
		{"P2780", P2780},
		{"X2780-backup", P2780},
		{"P2945", P2945},
		{"P1234", Unknown},
		{"", Unknown},
	}
	for _, c := range cases {
		if got := Detect(c.id); got != c.want {
			t.Errorf("Detect(%q) = %v, want %v", c.id, got, c.want)
		}
	}
}

func TestCodes(t *testing.T) {
	checks := []struct {
		proj Project
		code string
		want string
	}{
		{P2780, "(a)", "A"},
		{P2780, "(d)", "D"},
		{P2945, "(a)", "0030"},
		{P2945, "(e)", "2317"},
		{P2945, "(b)+(c)", "1640/1713"},
		{P2945, "(e)+(a)", "2317/0030"},
	}
	for _, c := range checks {
		got, ok := c.proj.Codes()[c.code]
		if !ok {
			t.Fatalf("%v missing code %q", c.proj, c.code)
		}
		if got != c.want {
			t.Errorf("%v[%q] = %q, want %q", c.proj, c.code, got, c.want)
		}
	}
	if Unknown.Codes() != nil {
		t.Errorf("Unknown.Codes() should be nil")
	}
}

func TestString(t *testing.T) {
	if P2780.String() != "P2780" || P2945.String() != "P2945" || Unknown.String() != "unknown" {
		t.Errorf("unexpected String values: %v %v %v", P2780, P2945, Unknown)
	}
}
