package force_controller

import (
	"log"
	"os"
	"syscall"
)

// ExecRestarter re-executes the current binary in place, the process
// equivalent of the firmware reboot: all in-memory state is discarded
// and the staged image (which replaced the binary on disk) takes over.
type ExecRestarter struct{}

func (ExecRestarter) Restart() {
	exe, err := os.Executable()
	if err != nil {
		log.Fatalf("restart: cannot resolve executable: %v", err)
	}
	log.Printf("restart: re-executing %s", exe)
	if err := syscall.Exec(exe, os.Args, os.Environ()); err != nil {
		log.Fatalf("restart: exec failed: %v", err)
	}
}
