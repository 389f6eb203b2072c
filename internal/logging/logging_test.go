package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden")
	New(&buf, false).Info("shown", "key", "Trust")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown key=Trust")

	buf.Reset()
	New(&buf, true).Debug("details")
	assert.Contains(t, buf.String(), "level=DEBUG msg=details")
}
