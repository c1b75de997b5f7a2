package main

import (
	"log"
	"os"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if len(os.Args) > 5 {
			os.Exit(1)
		}
	}()
	<-done
}

func run() error {
	return nil
}

func mustRun() {
	panic("run failed") // want "panic should not be used in production code"
}
