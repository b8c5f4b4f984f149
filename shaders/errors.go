package shaders

import "strings"

// CompileError is returned when one or both stages of a program fail to compile.
// A log is empty for a stage that compiled fine.
type CompileError struct {
	VertexLog   string
	FragmentLog string
}

func (e *CompileError) Error() string {

	logs := make([]string, 0, 2)
	if e.VertexLog != "" {
		logs = append(logs, e.VertexLog)
	}

	if e.FragmentLog != "" {
		logs = append(logs, e.FragmentLog)
	}

	return strings.Join(logs, "\n")
}

// LinkError is returned when both stages compiled but the program failed to link
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return e.Log
}
