package qti

import "testing"

func TestSanitize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"<p>Capital of &nbsp;France?</p>", "Capital of France?"},
		{"plain text", "plain text"},
		{"<div><b>bold</b> and <i>italic</i></div>", "bold and italic"},
		{"  padded\t\ttext  ", "padded text"},
		{"non\u00a0breaking", "non breaking"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Sanitize(c.in); got != c.want {
			t.Errorf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"<p>Capital of &nbsp;France?</p>",
		"already clean",
		"<img src='x.png'> picture",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeImageName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"$IMS-CC-FILEBASE$/media/map.png?canvas_download=1", "media/map.png"},
		{"media/map.png", "media/map.png"},
		{"map.png?x=1&y=2", "map.png"},
	}
	for _, c := range cases {
		if got := NormalizeImageName(c.in); got != c.want {
			t.Errorf("NormalizeImageName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
