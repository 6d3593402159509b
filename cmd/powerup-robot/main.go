package main

import (
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/team6458/powerup/cmd/powerup-robot/app"
)

func main() {
	if err := app.NewRobotCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
