package main

import (
	"github.com/taskvault/go-todo/app"
	_ "github.com/taskvault/go-todo/docs"
)

func main() {
	// setup and run app
	err := app.SetupAndRunApp()
	if err != nil {
		panic(err)
	}
}
