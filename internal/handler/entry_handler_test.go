package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCsvEscape(t *testing.T) {
	assert.Equal(t, "plain", csvEscape("plain"))
	assert.Equal(t, `"a,b"`, csvEscape("a,b"))
	assert.Equal(t, `"say ""hi"""`, csvEscape(`say "hi"`))
	assert.Equal(t, "\"line\nbreak\"", csvEscape("line\nbreak"))
	assert.Equal(t, "", csvEscape(""))
}
