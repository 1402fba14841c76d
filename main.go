package main

import "github.com/Shahfarzane/CursorFocus/cmd"

func main() {
	cmd.Execute()
}
