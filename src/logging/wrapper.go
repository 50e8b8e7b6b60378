package logging

import (
	"fmt"

	seelog "github.com/cihub/seelog"
)

// SeelogWrapper is the access logger of the wall server.
type SeelogWrapper struct {
	Log   seelog.LoggerInterface
	Level string
}

func (self *SeelogWrapper) init() error {
	if "" == self.Level {
		self.Level = "debug"
	}

	old := self.Log
	if old == nil {
		self.Log = seelog.Disabled
	}

	// https://github.com/cihub/seelog/wiki/Log-levels
	appConfig := `
	<seelog minlevel="` + self.Level + `">
	<outputs formatid="stdout">
	<filter levels="debug,trace">
		<console formatid="debug"/>
	</filter>
	<filter levels="info">
		<console formatid="info"/>
	</filter>
	<filter levels="critical,error">
		<console formatid="error"/>
	</filter>
	<filter levels="warn">
		<console formatid="warn"/>
	</filter>
	</outputs>
	<formats>
		<format id="stdout"   format="%Date %Time [%LEVEL] [PID-%pidLogFormatter] %Msg %n" />

		<format id="debug"   format="%Date %Time %EscM(37)[%LEVEL]%EscM(0) [PID-%pidLogFormatter] %Msg %n" />
		<format id="info"    format="%Date %Time %EscM(36)[%LEVEL]%EscM(0) [PID-%pidLogFormatter] %Msg %n" />
		<format id="warn"    format="%Date %Time %EscM(33)[%LEVEL]%EscM(0) [PID-%pidLogFormatter] %Msg %n" />
		<format id="error"   format="%Date %Time %EscM(31)[%LEVEL]%EscM(0) [PID-%pidLogFormatter] %Msg %n" />

	</formats>
	</seelog>
	`

	logger, err := seelog.LoggerFromConfigAsBytes([]byte(appConfig))
	if err != nil {
		return err
	}
	self.Log = logger
	// the replaced logger still runs its own goroutine
	if old != nil && old != seelog.Disabled {
		old.Close()
	}
	return nil
}

func isValidLevel(level string) bool {
	for _, l := range []string{"debug", "trace", "info", "critical", "error", "warn"} {
		if l == level {
			return true
		}
	}
	return false
}

func (self *SeelogWrapper) SetLevel(level string) error {
	if !isValidLevel(level) {
		return fmt.Errorf("not a valid logging level: '%s'", level)
	}
	self.Level = level
	return self.init()
}

// Flush drains buffered access log lines, call it before exit.
func (self *SeelogWrapper) Flush() {
	self.Log.Flush()
}

func New() *SeelogWrapper {
	logger := &SeelogWrapper{Level: "debug"}
	logger.init()
	return logger
}
