package main

import "github.com/ValentinKolb/dPort/cmd"

func main() {
	cmd.Execute()
}
