// Command hydrocube inspects and extracts model results described by a
// manifest.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := Root.Execute(); err != nil {
		log.WithError(err).Error("hydrocube failed")
		os.Exit(1)
	}
}
