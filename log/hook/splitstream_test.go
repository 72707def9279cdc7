package hook

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSplitStreams(t *testing.T) {
	var out, errOut bytes.Buffer

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	SplitStreams(logger, &out, &errOut)

	logger.Debug("out1")
	logger.Info("out2")
	logger.Warn("err1")
	logger.Error("err2")

	assert.Contains(t, out.String(), "msg=out1")
	assert.Contains(t, out.String(), "msg=out2")
	assert.NotContains(t, out.String(), "err1")

	assert.Contains(t, errOut.String(), "msg=err1")
	assert.Contains(t, errOut.String(), "msg=err2")
	assert.NotContains(t, errOut.String(), "out1")
}
