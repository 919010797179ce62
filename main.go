package main

import "github.com/kamusis/vocablink/cmd"

func main() {
	cmd.Execute()
}
