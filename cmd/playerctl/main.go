package main

import "github.com/gameontext/gameon-player/internal/cli"

func main() {
	cli.Execute()
}
