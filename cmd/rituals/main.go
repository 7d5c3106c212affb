package main

import "ritualloop/cmd/rituals/root"

func main() {
	root.Execute()
}
