package run

import (
	"errors"
	"fmt"
)

// Stage names a step of an import run.
type Stage string

const (
	StageConfig    Stage = "config"
	StageLoad      Stage = "load"
	StageParse     Stage = "parse"
	StageTransform Stage = "transform"
	StageFilter    Stage = "filter"
	StageUpload    Stage = "upload"
)

// Exit codes, one per stage. 0 is success, including the no-op outcome.
const (
	ExitOK        = 0
	ExitConfig    = 1
	ExitLoad      = 2
	ExitParse     = 3
	ExitTransform = 4
	ExitFilter    = 5
	ExitUpload    = 6
)

var exitCodes = map[Stage]int{
	StageConfig:    ExitConfig,
	StageLoad:      ExitLoad,
	StageParse:     ExitParse,
	StageTransform: ExitTransform,
	StageFilter:    ExitFilter,
	StageUpload:    ExitUpload,
}

// StageError tags an error with the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// StageOf returns the stage err was tagged with, or "" for untagged errors.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// ExitCode maps err onto the process exit code. Untagged errors exit 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if code, ok := exitCodes[StageOf(err)]; ok {
		return code
	}
	return ExitConfig
}

// ConfigError tags err as a configuration problem.
func ConfigError(err error) error {
	return stageErr(StageConfig, err)
}
