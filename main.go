package main

import "github.com/hyj0824/ojAssistant/cmd"

func main() {
	cmd.Execute()
}
