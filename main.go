package main

import "github.com/egor-tensin/cmake-common/cmd"

func main() {
	cmd.Execute()
}
