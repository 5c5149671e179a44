package main

import (
	"cpprofile-backend/cmd/profile-cli/commands"
	"cpprofile-backend/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
