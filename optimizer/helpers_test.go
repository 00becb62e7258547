package optimizer_test

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/on-the-ground/memoexpr/optimizer"
)

func newTestLogger() *zap.Logger {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)
	return zap.New(consoleCore)
}

func testConfig(strategy optimizer.Strategy) optimizer.Config {
	return optimizer.NewConfig(strategy, 2, 3, newTestLogger())
}
