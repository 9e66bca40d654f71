package main

import "moments-backend/cmd"

func main() {
	cmd.Run()
}
