package main

import "github.com/RyanBlaney/sonido-nsgt/internal/cli"

func main() {
	cli.Execute()
}
