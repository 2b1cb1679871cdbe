package main

import (
	"go-vcfc/cmd"
)

func main() {
	cmd.Execute()
}
