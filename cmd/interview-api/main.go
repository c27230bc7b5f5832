package main

import (
	"log"

	"github.com/kmalyshev/voice-interviewer/internal/builder"
)

func main() {
	app, err := builder.BuildAPI()
	if err != nil {
		log.Fatal("Failed to build application:", err)
	}

	if err := app.Run(); err != nil {
		log.Fatal("Application error:", err)
	}
}
