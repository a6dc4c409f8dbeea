package main

import "github.com/mabhi256/jvmch/cmd"

func main() {
	cmd.Execute()
}
