// Package log wraps a shared logrus logger so every component logs through
// the same formatter.
package log

import "github.com/sirupsen/logrus"

var Logger *logrus.Logger

func init() {
	Logger = logrus.New()
	Logger.Formatter = &logrus.TextFormatter{
		DisableLevelTruncation: true,
		PadLevelText:           true,
		FullTimestamp:          true,
		TimestampFormat:        "2006/01/02 15:04:05",
	}
}

// SetDebug raises the level to debug when on, info otherwise.
func SetDebug(on bool) {
	if on {
		Logger.Level = logrus.DebugLevel
	} else {
		Logger.Level = logrus.InfoLevel
	}
}

func Debugf(format string, args ...any) { Logger.Debugf(format, args...) }
func Infof(format string, args ...any)  { Logger.Infof(format, args...) }
func Warnf(format string, args ...any)  { Logger.Warnf(format, args...) }
func Errorf(format string, args ...any) { Logger.Errorf(format, args...) }
