package cdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateInputDuplicatePosition(t *testing.T) {
	cap := Float64Capability{}
	in := Input[float64]{
		Positions: []Vec2[float64]{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}},
	}
	st := validateInput(cap, in, DefaultSettings())
	_, ok := st.(StatusDuplicatePosition)
	assert.True(t, ok)
}

func TestValidateInputConstraintOutOfBounds(t *testing.T) {
	cap := Float64Capability{}
	in := Input[float64]{
		Positions:       []Vec2[float64]{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		ConstraintEdges: []int{0, 5},
	}
	st := validateInput(cap, in, DefaultSettings())
	_, ok := st.(StatusConstraintOutOfBounds)
	assert.True(t, ok)
}

func TestValidateInputSelfLoop(t *testing.T) {
	cap := Float64Capability{}
	in := Input[float64]{
		Positions:       []Vec2[float64]{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		ConstraintEdges: []int{1, 1},
	}
	st := validateInput(cap, in, DefaultSettings())
	_, ok := st.(StatusConstraintSelfLoop)
	assert.True(t, ok)
}

func TestValidateInputRedundantHoles(t *testing.T) {
	cap := Float64Capability{}
	in := Input[float64]{
		Positions: []Vec2[float64]{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		HoleSeeds: []Vec2[float64]{{X: 0.1, Y: 0.1}},
	}
	st := validateInput(cap, in, DefaultSettings())
	_, ok := st.(StatusRedundantHolesArray)
	assert.True(t, ok)
}

func TestValidateSettingsSloanMaxIters(t *testing.T) {
	cap := Float64Capability{}
	settings := DefaultSettings()
	settings.SloanMaxIters = 0
	st := validateSettings(cap, settings)
	_, ok := st.(StatusSloanMaxItersMustBePositive)
	assert.True(t, ok)
}

func TestValidateSettingsAngleOutOfRange(t *testing.T) {
	cap := Float64Capability{}
	settings := DefaultSettings()
	settings.RefineMesh = true
	settings.Refinement.Angle = 10
	st := validateSettings(cap, settings)
	_, ok := st.(StatusRefinementThresholdAngleOutOfRange)
	assert.True(t, ok)
}

func TestSegmentsProperlyCross(t *testing.T) {
	cap := Float64Capability{}
	assert.True(t, segmentsProperlyCross(cap,
		Vec2[float64]{X: 0, Y: 0}, Vec2[float64]{X: 2, Y: 2},
		Vec2[float64]{X: 0, Y: 2}, Vec2[float64]{X: 2, Y: 0}))
	assert.False(t, segmentsProperlyCross(cap,
		Vec2[float64]{X: 0, Y: 0}, Vec2[float64]{X: 1, Y: 0},
		Vec2[float64]{X: 2, Y: 0}, Vec2[float64]{X: 3, Y: 0}))
}
