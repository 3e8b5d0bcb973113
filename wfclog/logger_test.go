package wfclog_test

import (
	"bytes"
	"testing"

	"github.com/katalvlaran/wfc/wfclog"
	"github.com/stretchr/testify/assert"
)

func TestEvent_WritesNameAndFieldsAsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := wfclog.New(wfclog.Config{Level: wfclog.LevelDebug, Output: &buf})

	l.Event("observe", map[string]interface{}{"cell": 3, "pattern": 1})

	out := buf.String()
	assert.Contains(t, out, `"message":"observe"`)
	assert.Contains(t, out, `"cell":3`)
	assert.Contains(t, out, `"pattern":1`)
}
