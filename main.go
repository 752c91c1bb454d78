package main

import (
	"os"

	"github.com/quizdesk/quizdesk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
