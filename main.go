package main

import "github.com/structura/structura/cmd"

func main() {
	cmd.Execute()
}
