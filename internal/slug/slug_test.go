package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]*$`)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Spaced   out  ", "spaced-out"},
		{"Already-a-slug", "already-a-slug"},
		{"Трусы & носки 100%", "trusy-noski-100"},
		{"Привет Мир!", "privet-mir"},
		{"---", ""},
		{"", ""},
		{"iPhone 15 Pro (256GB)", "iphone-15-pro-256gb"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Make(c.in), "Make(%q)", c.in)
	}
}

func TestMakeIdempotent(t *testing.T) {
	inputs := []string{
		"Hello World", "Привет Мир!", "a--b__c", "Категория №1", "", "x",
	}
	for _, in := range inputs {
		once := Make(in)
		assert.Equal(t, once, Make(once), "Make not idempotent for %q", in)
	}
}

func TestMakeCharsetAndEdges(t *testing.T) {
	inputs := []string{"!!!lead", "trail!!!", "mid!!!dle", "Тест", "a b c"}
	for _, in := range inputs {
		out := Make(in)
		assert.Regexp(t, slugPattern, out)
		if out != "" {
			assert.NotEqual(t, byte('-'), out[0], "leading hyphen in %q", out)
			assert.NotEqual(t, byte('-'), out[len(out)-1], "trailing hyphen in %q", out)
		}
	}
}

func TestMakeCyrillicNonEmpty(t *testing.T) {
	out := Make("Привет Мир!")
	assert.NotEmpty(t, out)
	assert.Regexp(t, slugPattern, out)
	assert.NotContains(t, out, "!")
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("hello-world"))
	assert.True(t, Valid(""))
	assert.False(t, Valid("Hello"))
	assert.False(t, Valid("-edge-"))
}
