package force_controller

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStager stages the firmware image in a temp file next to the target
// and promotes it with a rename on Commit. Capacity models the fixed
// staging partition: an image larger than it cannot be accepted.
type FileStager struct {
	TargetPath string
	Capacity   int64

	file     *os.File
	declared int64
	written  int64
	finished bool
}

func NewFileStager(targetPath string, capacity int64) *FileStager {
	return &FileStager{TargetPath: targetPath, Capacity: capacity}
}

func (s *FileStager) Begin(size int64) error {
	if size <= 0 {
		return fmt.Errorf("image size %d not declared", size)
	}
	if s.Capacity > 0 && size > s.Capacity {
		return fmt.Errorf("image size %d exceeds staging capacity %d", size, s.Capacity)
	}
	if s.file != nil {
		// abandoned previous stage, reclaim its temp file
		name := s.file.Name()
		s.file.Close()
		os.Remove(name)
		s.file = nil
	}
	f, err := os.CreateTemp(filepath.Dir(s.TargetPath), ".staged-*")
	if err != nil {
		return err
	}
	s.file = f
	s.declared = size
	s.written = 0
	s.finished = false
	return nil
}

func (s *FileStager) Write(p []byte) (int, error) {
	if s.file == nil {
		return 0, fmt.Errorf("staging area not open")
	}
	n, err := s.file.Write(p)
	s.written += int64(n)
	return n, err
}

// Commit closes the staged file and moves it into place. The temp file is
// made executable before the rename so the promote is a single atomic step.
// Commit can succeed on a short image; Finished reports whether the image
// is complete.
func (s *FileStager) Commit() error {
	if s.file == nil {
		return fmt.Errorf("staging area not open")
	}
	name := s.file.Name()
	if err := s.file.Close(); err != nil {
		os.Remove(name)
		s.file = nil
		return err
	}
	if err := os.Chmod(name, 0o755); err != nil {
		os.Remove(name)
		s.file = nil
		return err
	}
	if err := os.Rename(name, s.TargetPath); err != nil {
		os.Remove(name)
		s.file = nil
		return err
	}
	s.file = nil
	s.finished = s.written == s.declared
	return nil
}

func (s *FileStager) Finished() bool { return s.finished }
