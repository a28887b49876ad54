package main

import (
	"github.com/mraff116/vugru-music-mvp/cmd"
)

func main() {
	cmd.Execute()
}
