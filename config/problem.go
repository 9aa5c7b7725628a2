// Package config reads planning problems from JSON files.
package config

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/rrt/motionplan"
	"go.viam.com/rrt/referenceframe"
	"go.viam.com/rrt/spatialmath"
)

// Problem describes one planning problem: where to go, the space to search and what is in the way.
type Problem struct {
	// ConfigFilePath is where the problem was read from, if anywhere.
	ConfigFilePath string `json:"-"`

	Name   string                 `json:"name,omitempty"`
	Start  []float64              `json:"start"`
	Goal   []float64              `json:"goal"`
	Limits []referenceframe.Limit `json:"limits"`

	Obstacles       []spatialmath.GeometryConfig `json:"obstacles,omitempty"`
	RobotRadius     float64                      `json:"robot_radius,omitempty"`
	CollisionBuffer float64                      `json:"collision_buffer,omitempty"`

	// Planner holds PlannerOptions fields by their json names. Missing fields take defaults.
	Planner map[string]interface{} `json:"planner,omitempty"`
}

// Validate ensures all parts of the problem are valid. Every problem found is reported.
func (p *Problem) Validate(path string) error {
	var errs error
	if len(p.Start) == 0 {
		errs = multierr.Append(errs, NewConfigValidationFieldRequiredError(path, "start"))
	}
	if len(p.Goal) == 0 {
		errs = multierr.Append(errs, NewConfigValidationFieldRequiredError(path, "goal"))
	}
	if len(p.Limits) == 0 {
		errs = multierr.Append(errs, NewConfigValidationFieldRequiredError(path, "limits"))
	}
	if len(p.Start) > 0 && len(p.Goal) > 0 && len(p.Start) != len(p.Goal) {
		errs = multierr.Append(errs, NewConfigValidationError(path+".goal",
			referenceframe.NewIncorrectDimensionError(len(p.Goal), len(p.Start))))
	}
	if len(p.Start) > 0 && len(p.Limits) > 0 && len(p.Start) != len(p.Limits) {
		errs = multierr.Append(errs, NewConfigValidationError(path+".limits",
			referenceframe.NewIncorrectDimensionError(len(p.Start), len(p.Limits))))
	}
	for idx, lim := range p.Limits {
		if lim.Min > lim.Max {
			errs = multierr.Append(errs, NewConfigValidationError(fmt.Sprintf("%s.limits.%d", path, idx),
				referenceframe.NewInvalidLimitError(idx, lim)))
		}
	}
	for idx := range p.Obstacles {
		if _, err := p.Obstacles[idx].ParseConfig(); err != nil {
			errs = multierr.Append(errs, NewConfigValidationError(fmt.Sprintf("%s.obstacles.%d", path, idx), err))
		}
	}
	if p.RobotRadius < 0 {
		errs = multierr.Append(errs, NewConfigValidationError(path+".robot_radius", errors.New("must not be negative")))
	}
	if p.CollisionBuffer < 0 {
		errs = multierr.Append(errs, NewConfigValidationError(path+".collision_buffer", errors.New("must not be negative")))
	}
	if _, err := motionplan.NewPlannerOptionsFromExtra(p.Planner); err != nil {
		errs = multierr.Append(errs, NewConfigValidationError(path+".planner", err))
	}
	return errs
}

// PlanRequest converts a validated problem into a request for motionplan.Plan.
func (p *Problem) PlanRequest() (*motionplan.PlanRequest, error) {
	opts, err := motionplan.NewPlannerOptionsFromExtra(p.Planner)
	if err != nil {
		return nil, err
	}
	obstacles := make([]spatialmath.Geometry, 0, len(p.Obstacles))
	for idx := range p.Obstacles {
		g, err := p.Obstacles[idx].ParseConfig()
		if err != nil {
			return nil, err
		}
		obstacles = append(obstacles, g)
	}
	return &motionplan.PlanRequest{
		Start:           referenceframe.FloatsToConfiguration(p.Start),
		Goal:            referenceframe.FloatsToConfiguration(p.Goal),
		Limits:          append([]referenceframe.Limit{}, p.Limits...),
		Obstacles:       obstacles,
		RobotRadius:     p.RobotRadius,
		CollisionBuffer: p.CollisionBuffer,
		Options:         opts,
	}, nil
}

// String prints out a table of the problem's endpoints, limits and obstacles.
func (p *Problem) String() string {
	t := table.NewWriter()
	t.SetTitle(p.Name)
	t.AppendHeader(table.Row{"#", "Start", "Goal", "Min", "Max"})
	for i := range p.Start {
		row := table.Row{fmt.Sprintf("q%d", i), fmt.Sprintf("%.4f", p.Start[i]), "", "", ""}
		if i < len(p.Goal) {
			row[2] = fmt.Sprintf("%.4f", p.Goal[i])
		}
		if i < len(p.Limits) {
			row[3] = fmt.Sprintf("%.4f", p.Limits[i].Min)
			row[4] = fmt.Sprintf("%.4f", p.Limits[i].Max)
		}
		t.AppendRow(row)
	}
	t.AppendSeparator()
	for i := range p.Obstacles {
		desc := fmt.Sprintf("%+v", p.Obstacles[i])
		if g, err := p.Obstacles[i].ParseConfig(); err == nil {
			desc = g.String()
		}
		name := p.Obstacles[i].Label
		if name == "" {
			name = fmt.Sprintf("obstacle %d", i)
		}
		t.AppendRow(table.Row{name, desc})
	}
	t.AppendFooter(table.Row{"robot radius", p.RobotRadius, "collision buffer", p.CollisionBuffer, ""})
	return t.Render()
}
