package logging

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Log is shared by the store, the services and the server.
var Log = logrus.New()

func Setup() {
	// Output to stdout instead of the default stderr
	Log.Out = os.Stdout
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Log.SetLevel(logrus.InfoLevel)
}

// SetLevel accepts the usual names ("debug", "info", "warn", ...).
func SetLevel(level string) (err error) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return errors.Wrap(err, "SetLevel")
	}
	Log.SetLevel(lvl)
	return
}

// Debug will switch the verbosity of the logger.
func Debug(t bool) {
	if t {
		Log.Level = logrus.DebugLevel
	} else {
		Log.Level = logrus.WarnLevel
	}
}
