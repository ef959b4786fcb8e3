package pipeline

import (
	"os"
	"path/filepath"

	"github.com/kbukum/scribe/logger"
)

// tempScope tracks the temporary files of one job.
type tempScope struct {
	dir    string
	prefix string
	paths  []string
	log    *logger.Logger
}

func newTempScope(dir, jobID string, log *logger.Logger) *tempScope {
	return &tempScope{dir: dir, prefix: jobID, log: log}
}

// acquire reserves a job-namespaced path and registers it for removal.
// Call it before the file is created so partial outputs are removed too.
func (s *tempScope) acquire(name string) string {
	p := filepath.Join(s.dir, s.prefix+"-"+name)
	s.paths = append(s.paths, p)
	return p
}

// release removes every acquired path. Failures are logged, never returned.
func (s *tempScope) release() {
	for i := len(s.paths) - 1; i >= 0; i-- {
		p := s.paths[i]
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			s.log.Warn("failed to remove temp file", logger.Fields(
				logger.FieldPath, p,
				logger.FieldError, err.Error(),
			))
		}
	}
	s.paths = nil
}
