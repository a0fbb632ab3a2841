package main

import (
	"github.com/mapleline/policyscan/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
