package logger

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Log is the application wide logger.
var Log = logrus.New()

// Fields is the type of logrus.Fields.
type Fields = logrus.Fields

//nolint:gochecknoinits // the only place the default level is set
func init() {
	Log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	SetLevel("")
}

// SetLevel applies an explicit level name; an empty or unknown name falls
// back to debug in gin debug mode and info otherwise.
func SetLevel(name string) {
	if level, err := logrus.ParseLevel(name); err == nil && name != "" {
		Log.SetLevel(level)
		return
	}
	if gin.Mode() == gin.DebugMode {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
}
