package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Params struct {
	Level      string
	FormatJSON bool
	FileName   string
	ToStdout   bool
}

// Setup configures the standard logrus logger.
func Setup(params Params) {
	if params.FormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	logrus.SetLevel(GetLevel(params.Level))

	if params.FileName == "" {
		logrus.SetOutput(os.Stdout)
		return
	}

	if !strings.HasSuffix(params.FileName, ".log") {
		params.FileName += ".log"
	}

	fileLogger := &lumberjack.Logger{
		Filename:   params.FileName,
		MaxSize:    50, // megabytes
		MaxBackups: 10,
		LocalTime:  false,
		Compress:   true,
	}

	if params.ToStdout {
		logrus.SetOutput(io.MultiWriter(os.Stdout, fileLogger))
	} else {
		logrus.SetOutput(fileLogger)
	}
}

// GetLevel parses a level name; unknown names fall back to info.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
