package output

import (
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler returns a channel that receives interrupt signals
func SetupSignalHandler() chan os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	return sigChan
}

// StopSignalHandler stops delivery to a channel from SetupSignalHandler
func StopSignalHandler(sigChan chan os.Signal) {
	signal.Stop(sigChan)
}
