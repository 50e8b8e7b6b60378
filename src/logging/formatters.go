package logging

import (
	"os"
	"strconv"

	seelog "github.com/cihub/seelog"
)

var pid = strconv.Itoa(os.Getpid())

// https://github.com/cihub/seelog/wiki/Custom-formatters
func pidLogFormatter(params string) seelog.FormatterFunc {
	return func(message string, level seelog.LogLevel, context seelog.LogContextInterface) interface{} {
		return pid
	}
}

func init() {
	seelog.RegisterCustomFormatter("pidLogFormatter", pidLogFormatter)
}
