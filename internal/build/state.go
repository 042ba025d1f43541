package build

import (
	"maps"

	"github.com/bakehq/bakerd/internal/manifest"
)

// Holds the shell, working directory, and environment that step commands
// (index refresh, installer, package listing) run with.
//
// The state is fixed for the duration of a build: it is resolved once from
// the plan and every command sees the same values.
type execState struct {
	shell   string
	workdir string
	env     map[string]string
}

// Creates an [execState] from the plan.
//
// The plan's env map is copied so later mutations of the plan cannot leak
// into a running build.
func newExecState(p *manifest.Plan) *execState {
	env := make(map[string]string, len(p.Env))
	maps.Copy(env, p.Env)

	return &execState{
		shell:   p.Shell,
		workdir: p.Workdir,
		env:     env,
	}
}

// Formats the environment as a list of "key=value" strings suitable for
// passing to container exec.
func (s *execState) environ() []string {
	env := make([]string, 0, len(s.env))
	for k, v := range s.env {
		env = append(env, k+"="+v)
	}
	return env
}
