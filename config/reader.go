package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/rrt/logging"
	"go.viam.com/rrt/spatialmath"
)

// Read reads a problem from the given file. Environment variables referenced as ${VAR} are
// substituted before decoding.
func Read(
	ctx context.Context,
	filePath string,
	logger logging.Logger,
) (*Problem, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(ctx, filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a problem from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(
	ctx context.Context,
	originalPath string,
	r io.Reader,
	logger logging.Logger,
) (*Problem, error) {
	problem := Problem{
		ConfigFilePath: originalPath,
	}
	decoder := json.NewDecoder(r)
	// planner options stay loosely typed until they are validated
	decoder.UseNumber()
	if err := decoder.Decode(&problem); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Problem from json")
	}
	problem.Planner = normalizeNumbers(problem.Planner)

	if err := problem.Validate("problem"); err != nil {
		return nil, errors.Wrap(err, "failed to process Problem")
	}
	logger.CDebugw(ctx, "read planning problem",
		"path", originalPath,
		"name", problem.Name,
		"dims", len(problem.Start),
		"obstacles", lo.Map(problem.Obstacles, func(g spatialmath.GeometryConfig, _ int) string {
			if g.Label != "" {
				return g.Label
			}
			return string(g.Type)
		}),
	)
	return &problem, nil
}

// normalizeNumbers converts json.Number values to int64 when integral and float64 otherwise.
func normalizeNumbers(extra map[string]interface{}) map[string]interface{} {
	return lo.MapValues(extra, func(v interface{}, _ string) interface{} {
		num, ok := v.(json.Number)
		if !ok {
			return v
		}
		if i, err := num.Int64(); err == nil {
			return i
		}
		if f, err := num.Float64(); err == nil {
			return f
		}
		return v
	})
}
