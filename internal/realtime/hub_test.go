package realtime

import (
	"io"

	"voice-orders/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLoggerTo("test", io.Discard)
}
