package main

import "github.com/hrportal/workforce/cmd"

func main() {
	cmd.Execute()
}
