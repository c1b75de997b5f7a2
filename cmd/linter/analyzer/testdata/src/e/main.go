package main

import (
	"log"
)

func publish() {
	log.Fatalln("publish failed") // want "log.Fatal should only be used in main.main function"
}

func main() {
	publish()
	if true {
		log.Fatal("main error")
	}
}
