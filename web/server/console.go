package server

import (
	"fmt"
	"time"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/log"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug" or "info"
}

// WebLogger implements core.Logger by sending messages to a console channel
// and mirroring them to the server log
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	server      log.Logger
}

// NewWebLogger creates a new web logger for a specific render. server may be nil.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage, server log.Logger) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		server:      server,
	}
}

// Debugf implements core.Logger
func (wl *WebLogger) Debugf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if wl.server != nil {
		wl.server.Debugf("[%s] %s", wl.renderID, message)
	}
	wl.send("debug", message)
}

// Infof implements core.Logger
func (wl *WebLogger) Infof(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if wl.server != nil {
		wl.server.Infof("[%s] %s", wl.renderID, message)
	}
	wl.send("info", message)
}

func (wl *WebLogger) send(level, message string) {
	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
		// Channel full, skip (don't block)
	}
}
