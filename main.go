package main

import "github.com/KaramelBytes/cardioviz/cmd"

func main() {
	cmd.Execute()
}
