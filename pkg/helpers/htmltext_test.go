package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkup(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"<p>hello</p>", "hello"},
		{"<p><br></p>", ""},
		{"<div>  </div>", ""},
		{"  <b>bold</b> and <i>italic</i>  ", "bold and italic"},
		{`<img src="x.png"/>caption`, "caption"},
		{"a < b", "a < b"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StripMarkup(tc.in), "input %q", tc.in)
	}
}
