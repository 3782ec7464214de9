package main

import (
	"fmt"

	"github.com/geonorge-tools/bakgrunnskart/config"
	"github.com/geonorge-tools/bakgrunnskart/pkg/basemap"
	"github.com/geonorge-tools/bakgrunnskart/pkg/ui"
	"github.com/geonorge-tools/bakgrunnskart/util/log"
)

func main() {
	locked, err := acquireLock()
	if err != nil {
		log.Fatalf("Failed to acquire single-instance lock: %v", err)
	}
	if !locked {
		fmt.Printf("Another instance of %s is already running.\n", config.AppName)
		return
	}
	defer releaseLock()

	shell := ui.GetInstance()
	shell.Register(basemap.New())
	shell.Start()
}
