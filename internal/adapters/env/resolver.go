// Package env applies the env section of a build file to the process environment.
package env

import (
	"context"
	"errors"
	"os"
	"strings"

	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/stevedore/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver implements ports.EnvironmentResolver.
type Resolver struct {
	scripts ports.ScriptRunner
	logger  ports.Logger
	setenv  func(key, value string) error
}

// NewResolver creates a Resolver that sets variables with os.Setenv.
func NewResolver(scripts ports.ScriptRunner, logger ports.Logger) *Resolver {
	return &Resolver{scripts: scripts, logger: logger, setenv: os.Setenv}
}

// Apply resolves vars in order. Literal values are trimmed; script values are the
// script's trimmed standard output.
func (r *Resolver) Apply(ctx context.Context, vars []domain.EnvVar) error {
	for _, v := range vars {
		value, err := r.resolve(ctx, v)
		if err != nil {
			return zerr.With(errors.Join(domain.ErrEnvironmentFailed, err), "variable", v.Name)
		}
		if err := r.setenv(v.Name, value); err != nil {
			envErr := zerr.Wrap(domain.ErrEnvironmentFailed, "failed to set variable")
			return zerr.With(zerr.With(envErr, "variable", v.Name), "cause", err.Error())
		}
		r.logger.Info("set " + v.Name)
	}
	return nil
}

func (r *Resolver) resolve(ctx context.Context, v domain.EnvVar) (string, error) {
	if !v.IsScript() {
		return strings.TrimSpace(v.Literal), nil
	}

	out, err := r.scripts.Output(ctx, v.Script)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
