// # internal/core/pipeline/pipeline.go
package pipeline

import (
	"context"
	"time"

	"minibun/internal/core/errors"
	"minibun/internal/engine/bundle"
	"minibun/internal/engine/graph"
	"minibun/internal/engine/minify"
	"minibun/internal/engine/modmap"
	"minibun/internal/engine/obfuscate"
	"minibun/internal/engine/shake"
	"minibun/internal/shared/observability"
)

// Step names one transformation pass.
type Step string

const (
	StepTreeShake Step = "treeShake"
	StepBundle    Step = "bundle"
	StepMinify    Step = "minify"
	StepObfuscate Step = "obfuscate"
)

// ParseStep resolves a configured step name.
func ParseStep(name string) (Step, error) {
	switch Step(name) {
	case StepTreeShake, StepBundle, StepMinify, StepObfuscate:
		return Step(name), nil
	}
	return "", errors.New(errors.CodeValidationError, "unknown pipeline step "+name)
}

// Request is one pipeline invocation. The module map is read-only from the
// pipeline's perspective; every pass returns fresh values.
type Request struct {
	Steps     []Step
	EntryID   string
	Modules   *modmap.Map
	Minify    minify.Options
	Obfuscate obfuscate.Options

	// Tokenize optionally shares a token cache across passes.
	Tokenize graph.Tokenizer
}

// Result carries the pipeline's final value plus diagnostics.
type Result struct {
	// Output is set once a bundle step has produced a string.
	Output string
	// Modules is the final module map when no bundle step ran.
	Modules *modmap.Map
	// Bundled reports which of the two fields is the final value.
	Bundled bool
	// Cycles are the cycle-participant module ids reported by the bundler.
	Cycles []string
	// KeptModules counts non-blank module bodies after the last treeShake
	// step; before any shake it equals the input map size.
	KeptModules int
}

// Run threads the module map through the configured steps:
// map -(treeShake)-> map -(bundle)-> string -(minify|obfuscate)-> string.
// Feeding a string into treeShake or a map into minify/obfuscate is a usage
// error and terminates the pipeline. Cancellation takes effect only between
// passes, never mid-pass.
func Run(ctx context.Context, req Request) (Result, error) {
	if req.Modules == nil {
		return Result{}, errors.New(errors.CodeUsageError, "pipeline requires a module map")
	}

	result := Result{Modules: req.Modules, KeptModules: req.Modules.Len()}

	for _, step := range req.Steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := runStep(ctx, step, &result, req); err != nil {
			return result, errors.AddContext(err, errors.CtxStep, string(step))
		}
	}

	return result, nil
}

func runStep(ctx context.Context, step Step, result *Result, req Request) error {
	_, span := observability.Tracer.Start(ctx, "pipeline."+string(step))
	defer span.End()

	start := time.Now()
	defer func() {
		observability.PassDuration.WithLabelValues(string(step)).Observe(time.Since(start).Seconds())
	}()

	switch step {
	case StepTreeShake:
		if result.Bundled {
			return errors.New(errors.CodeUsageError, "treeShake expects a module map, got a bundled string")
		}
		result.Modules = shake.Shake(result.Modules, req.EntryID, req.Tokenize)
		kept := 0
		for _, id := range result.Modules.IDs() {
			if src, _ := result.Modules.Get(id); src != "" {
				kept++
			}
		}
		result.KeptModules = kept

	case StepBundle:
		if result.Bundled {
			return errors.New(errors.CodeUsageError, "bundle expects a module map, got a bundled string")
		}
		bundled := bundle.Bundle(result.Modules, req.EntryID, req.Tokenize)
		result.Output = bundled.Output
		result.Cycles = append(result.Cycles, bundled.Cycles...)
		result.Bundled = true
		result.Modules = nil

	case StepMinify:
		if !result.Bundled {
			return errors.New(errors.CodeUsageError, "minify expects a bundled string, got a module map")
		}
		result.Output = minify.Minify(result.Output, req.Minify)

	case StepObfuscate:
		if !result.Bundled {
			return errors.New(errors.CodeUsageError, "obfuscate expects a bundled string, got a module map")
		}
		result.Output = obfuscate.Obfuscate(result.Output, req.Obfuscate)

	default:
		return errors.New(errors.CodeValidationError, "unknown pipeline step "+string(step))
	}

	return nil
}
