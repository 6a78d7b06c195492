package swptlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerStubCapturesLinesPerLevel(t *testing.T) {
	l := &LoggerStub{}

	l.Infof("offer %d created", 7)
	l.Warnf("offer %d nearing expiry", 7)
	l.Errorf("offer %d failed: %v", 7, "boom")

	assert.True(t, l.HasInfo("offer 7 created"))
	assert.True(t, l.HasWarning("nearing expiry"))
	assert.True(t, l.HasError("boom"))
	assert.False(t, l.HasError("not present"))
}

func TestLoggerStubWithFieldsReturnsSelf(t *testing.T) {
	l := &LoggerStub{}

	derived := l.WithFields("payee_id", 1)

	derived.Info("hello")

	assert.True(t, l.HasInfo("hello"))
}
