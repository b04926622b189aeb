package logging

import "gopkg.in/natefinch/lumberjack.v2"

// UseFileLogger sends all further log output to a rotating file at filepath
// instead of stderr. The current level is kept.
func UseFileLogger(filepath string) {
	writer := &lumberjack.Logger{
		Filename:   filepath,
		MaxSize:    10, // megabytes
		MaxBackups: 7,
		MaxAge:     28, // days
	}

	setLogger(newLogger(level, writer, false))
}

// Level returns the active level name.
func Level() string {
	return level.Level().String()
}
