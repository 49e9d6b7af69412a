package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	New(&buf, false).Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")

	buf.Reset()
	New(&buf, true).Debug("debugging")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestWithOperation(t *testing.T) {
	var buf bytes.Buffer
	WithOperation(New(&buf, true), "signon").Info("request")
	assert.Contains(t, buf.String(), "operation=signon")
}

func TestErrAttr(t *testing.T) {
	attr := Err(errors.New("boom"))
	assert.Equal(t, KeyError, attr.Key)
	assert.Equal(t, "boom", attr.Value.String())

	var buf bytes.Buffer
	New(&buf, true).Info("ok", Err(nil))
	assert.NotContains(t, buf.String(), KeyError)
}

func TestStatusAndCount(t *testing.T) {
	assert.Equal(t, KeyStatus, Status("200 OK").Key)
	assert.Equal(t, int64(3), Count(3).Value.Int64())
}
