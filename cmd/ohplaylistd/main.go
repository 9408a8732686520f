package main

// Version is the ohplaylistd version. It is set at build time via
// -ldflags "-X main.Version=...", defaulting to "dev" otherwise.
var Version = "dev"

func main() {
	execute()
}
