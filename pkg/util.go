package pkg

import (
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
)

// NewRecordID generates a short, unique record identifier,
// the same 8-character format used by the plan datasets.
func NewRecordID() string {
	return uuid.NewString()[:8]
}

// PathExists returns whether the given file or directory exists
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if (isDir && stat.IsDir()) || (!isDir && !stat.IsDir()) {
		return true, nil
	}
	return false, err
}

// ReadUserIP tries to get the original requester IP address
func ReadUserIP(r *http.Request) (string, error) {
	ipAddress := r.Header.Get("X-Real-Ip")
	if ipAddress == "" {
		ipAddress = r.Header.Get("X-Forwarded-For")
	}
	if ipAddress == "" {
		ipAddress = r.RemoteAddr
	}
	if commaIndex := strings.Index(ipAddress, ","); commaIndex > 0 {
		ipAddress = ipAddress[:commaIndex]
	}
	return ipAddress, nil
}

// CombinedWriter writes the same content to multiple writers,
// e.g. to stdout and a rotated log file.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{writers: writers}
}

func (w *CombinedWriter) Write(p []byte) (n int, err error) {
	for _, writer := range w.writers {
		if n, err = writer.Write(p); err != nil {
			return n, err
		}
	}
	return len(p), nil
}
