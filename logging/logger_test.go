package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFormatter(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&CustomFormatter{SystemName: "test-service"})

	logger.WithField("resource", "people").Warn("storage slow")

	line := buf.String()
	assert.Contains(t, line, "Event Source: test-service, ")
	assert.Contains(t, line, "Event Type: WARNING, ")
	assert.Contains(t, line, "Message: storage slow")
	assert.Contains(t, line, "resource: people")
	assert.Contains(t, line, "Event ID: ")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestInitLoggerRejectsBadLevel(t *testing.T) {
	err := InitLogger("-", "loud")
	require.Error(t, err)
}

func TestInitLoggerStdout(t *testing.T) {
	require.NoError(t, InitLogger("-", "debug"))
	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())
	t.Cleanup(func() { Logger.SetLevel(logrus.InfoLevel) })
}
