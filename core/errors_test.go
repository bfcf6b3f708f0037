package core

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	err := Error(EMISSING, "cannot open %s", "a.nd")
	assert.Equal(t, EMISSING, Code(err))
	assert.Equal(t, "cannot open a.nd", UserMessage(err))
	assert.True(t, IsMissing(err))
	//
	wrapped := fmt.Errorf("compiling: %w", err)
	assert.Equal(t, EMISSING, Code(wrapped), "code must survive wrapping")
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("plain")))
}

func TestWrapError(t *testing.T) {
	base := errors.New("permission denied")
	err := WrapError(base, ECONNECTION, "reading %q", "x.nd")
	assert.True(t, errors.Is(err, base))
	assert.Equal(t, ECONNECTION, Code(err))
	assert.Contains(t, err.Error(), "permission denied")
	err = ErrorWithCode(nil, EINVALID)
	assert.Equal(t, "invalid", UserMessage(err))
}

func TestFprintUserError(t *testing.T) {
	var buf bytes.Buffer
	FprintUserError(&buf, Error(EINVALID, "bad table"))
	assert.Equal(t, "[123] bad table\n", buf.String())
	buf.Reset()
	FprintUserError(&buf, errors.New("oops"))
	assert.Equal(t, "Error: oops\n", buf.String())
}
