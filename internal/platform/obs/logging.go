package obs

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetLogFile sends standard log output to stderr and to a size-rotated file.
// An empty path leaves the logger untouched. The returned closer releases
// the file.
func SetLogFile(path string) io.Closer {
	if path == "" {
		return io.NopCloser(nil)
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    64, // MB
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, w))
	return w
}
