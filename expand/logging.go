package expand

import (
	"os"

	"github.com/newstack-cloud/tmplexpand/core"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewProductionLogger builds a core.Logger backed by zap, grounded on
// the teacher's apps/deploy-engine/core.CreateLogger: JSON-encoded in
// production, human-readable in development, writing to stdout.
// Callers that want NewEngine to actually emit structured logs (rather
// than the silent core.NewNopLogger default) construct one of these
// and pass it in.
func NewProductionLogger(level, environment string) (core.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	createEncoderConfig := zap.NewProductionEncoderConfig
	createEncoder := zapcore.NewJSONEncoder
	if environment == "development" {
		createEncoderConfig = zap.NewDevelopmentEncoderConfig
		createEncoder = zapcore.NewConsoleEncoder
	}

	encoder := createEncoder(createEncoderConfig())
	stdoutSyncer := zapcore.Lock(os.Stdout)
	zapCore := zapcore.NewCore(encoder, stdoutSyncer, zapLevel)

	return core.NewLoggerFromZap(zap.New(zapCore)), nil
}
