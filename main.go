package main

import "vincit.fi/photo-triage/cmd"

func main() {
	cmd.Execute()
}
