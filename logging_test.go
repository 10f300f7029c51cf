package pxhost

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger(t *testing.T) {
	var out, errOut bytes.Buffer
	l := newWriterLogger("pxhost", false, &out, &errOut)

	l.Debugf("hidden %d", 1)
	assert.Empty(t, out.String())

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown %d", 2)
	assert.Contains(t, out.String(), "[pxhost] DEBUG: shown 2")

	l.Infof("hello")
	assert.Contains(t, out.String(), "[pxhost] INFO: hello")

	l.Warnf("careful")
	l.Errorf("broken: %v", "x")
	assert.Contains(t, errOut.String(), "[pxhost] WARN: careful")
	assert.Contains(t, errOut.String(), "[pxhost] ERROR: broken: x")
	assert.NotContains(t, out.String(), "careful")
}

func TestDefaultLogger_NoPrefix(t *testing.T) {
	var out bytes.Buffer
	l := newWriterLogger("", false, &out, &out)
	l.Infof("plain")
	assert.Contains(t, out.String(), " INFO: plain")
	assert.NotContains(t, out.String(), "[")
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	l.Errorf("nothing %d", 1)
}
