package main

import (
	"github.com/simonboy77/osrsbox-enchanced-monsters/cmd"
)

func main() {
	cmd.Execute()
}
