package slug

import "testing"

func TestMake(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World!", "hello-world"},
		{"Design & Creativity", "design-creativity"},
		{"Café  au lait", "cafe-au-lait"},
		{"  --Go_Lang--  ", "go_lang"},
		{"Über-Cool -- Stuff", "uber-cool-stuff"},
		{"Health & Lifestyle", "health-lifestyle"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			if got := Make(tc.in); got != tc.want {
				t.Fatalf("Make(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	if !Valid("intro-to-go") {
		t.Fatalf("expected intro-to-go to be valid")
	}
	if Valid("Intro To Go") || Valid("") {
		t.Fatalf("expected invalid slugs to be rejected")
	}
}
