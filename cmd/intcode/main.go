package main

import (
	"go.brendoncarroll.net/star"

	"intcodeweb.org/intcode/iccmd"
)

func main() {
	star.Main(iccmd.Root())
}
