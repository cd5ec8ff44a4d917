package main

import "github.com/KaramelBytes/popmap/cmd"

func main() {
	cmd.Execute()
}
