package main

import "github.com/NahomAnteneh/gitlet/cmd"

func main() {
	cmd.Execute()
}
