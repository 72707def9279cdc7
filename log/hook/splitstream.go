// Package hook splits logrus output across two writers so that normal
// output and diagnostics land on different streams.
package hook

import (
	"io"

	"github.com/sirupsen/logrus"
)

type streamHook struct {
	writer io.Writer
	levels []logrus.Level
}

func (h *streamHook) Levels() []logrus.Level {
	return h.levels
}

func (h *streamHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(line)
	return err
}

// SplitStreams routes debug and info entries to outWriter and
// everything warn and above to errWriter. The logger's own output is
// discarded so entries are emitted only through the hooks.
func SplitStreams(logger *logrus.Logger, outWriter, errWriter io.Writer) {
	logger.SetOutput(io.Discard)

	logger.AddHook(&streamHook{
		writer: outWriter,
		levels: []logrus.Level{logrus.DebugLevel, logrus.InfoLevel},
	})

	logger.AddHook(&streamHook{
		writer: errWriter,
		levels: []logrus.Level{
			logrus.WarnLevel,
			logrus.ErrorLevel,
			logrus.FatalLevel,
			logrus.PanicLevel,
		},
	})
}
