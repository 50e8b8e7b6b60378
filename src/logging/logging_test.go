package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSeelogWrapper(t *testing.T) {
	l := New()
	log := l.Log
	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")
	log.Critical("critical")

	err := l.SetLevel("critical")
	assert.Nil(t, err)
	assert.Equal(t, "critical", l.Level)
	// should only show critical
	log = l.Log
	log.Debug("debug")
	log.Critical("critical")
	l.Flush()

	err = l.SetLevel("loud")
	assert.NotNil(t, err)
	assert.Equal(t, "critical", l.Level)
	assert.True(t, log == l.Log)
}

func TestSetLevelClosesOldLogger(t *testing.T) {
	l := New()
	old := l.Log
	assert.False(t, old.Closed())

	assert.Nil(t, l.SetLevel("info"))
	assert.True(t, old.Closed())
	assert.False(t, l.Log.Closed())
	l.Log.Close()
}

func TestSetLevel(t *testing.T) {
	Setup()
	assert.Equal(t, logrus.InfoLevel, Log.Level)

	assert.Nil(t, SetLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, Log.Level)

	assert.NotNil(t, SetLevel("chatty"))
	assert.Equal(t, logrus.DebugLevel, Log.Level)

	Debug(false)
	assert.Equal(t, logrus.WarnLevel, Log.Level)
	// the -debug flag hands the level on by name
	assert.Nil(t, SetLevel(Log.Level.String()))
	assert.Equal(t, logrus.WarnLevel, Log.Level)

	Debug(true)
	assert.Equal(t, "debug", Log.Level.String())
}
