package common

import (
	"bytes"
	"strings"
	"testing"

	_ "github.com/NaufalHusnianto/Agnivolt/pkg/testing"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLoggingCapture(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	logger := GetLogger()
	logger.Info("Test log message", zap.String("key", "value"))

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Test log message") {
		t.Errorf("expected log output to contain message, got: %s", logOutput)
	}
}

func TestCoreLoggerCategory(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	GetCoreLogger(LoggerCategoryRegistry).Info("registry message")

	logOutput := buf.String()
	if !strings.Contains(logOutput, `"logger":"iot_core"`) || !strings.Contains(logOutput, `"category":"registry"`) {
		t.Errorf("expected named logger with category, got: %s", logOutput)
	}
}
