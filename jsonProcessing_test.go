package main

import (
	"math"
	"testing"

	json "github.com/KevinWang15/go-json5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) map[string]interface{} {
	t.Helper()
	var jsonTable map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(src), &jsonTable))
	return jsonTable
}

func TestValidate_CuspCaustic(t *testing.T) {
	jsonTable := parse(t, `{
		"title": "cusp",
		"factor_kind": "cusp_caustic",
		"frequency": {"min_hz": -200, "max_hz": 200, "num_points": 401},
		"cusp_caustic": {"delta_t10_sec": 0.002, "delta_t20_sec": 0.005, "mu_rel": 0.4, "positive_phase": -1},
		"workers": 3
	}`)

	var event LensingEvent
	msg, ok := validateJsonFileAndFillEvent(jsonTable, &event)
	require.True(t, ok, msg)

	assert.Equal(t, "cusp", event.Title)
	assert.Equal(t, 401, event.FreqNumPoints)
	assert.Equal(t, 3, event.Workers)
	assert.Equal(t, -1, event.PositivePhase)
	assert.Equal(t, 0.4, event.MuRel)
	assert.Equal(t, "amplification.png", event.PlotFile)
	assert.False(t, event.SourceGiven)
	require.NoError(t, event.factor().Validate())
}

func TestValidate_PointLensWithSource(t *testing.T) {
	jsonTable := parse(t, `{
		"factor_kind": "point_lens",
		"frequency": {"min_hz": 1, "max_hz": 1000},
		"point_lens": {"lens_mass_msun": 100, "impact_parameter": 0.6},
		"source": {"mass_1": 30, "mass_2": 25, "luminosity_distance_mpc": 400, "num_samples": 4096}
	}`)

	var event LensingEvent
	msg, ok := validateJsonFileAndFillEvent(jsonTable, &event)
	require.True(t, ok, msg)

	assert.Equal(t, 1025, event.FreqNumPoints)
	assert.True(t, event.SourceGiven)
	assert.Equal(t, 25.0, event.Source.Mass2)
	assert.Equal(t, 4096, event.TimeDomainSamples)
	assert.Equal(t, 0.25, event.TimeDomainDeltaFHz)
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name, src, msg string
	}{
		{"missing kind", `{"frequency": {"min_hz": 0, "max_hz": 1}}`, "factor_kind: not found"},
		{"unknown kind", `{"factor_kind": "triple", "frequency": {"min_hz": 0, "max_hz": 1}}`, `factor_kind: "triple" is not one of`},
		{"missing group entry", `{"factor_kind": "fold_caustic", "frequency": {"min_hz": 0, "max_hz": 1}, "fold_caustic": {"delta_t_sec": 0.1}}`,
			"fold_caustic.positive_phase: not found"},
		{"wrong type", `{"factor_kind": "one_image", "frequency": {"min_hz": "low", "max_hz": 1}}`, "frequency.min_hz: is not a float64"},
		{"not an integer", `{"factor_kind": "one_image", "frequency": {"min_hz": 0, "max_hz": 1, "num_points": 2.5}, "one_image": {"delta_phi_rad": 0}}`,
			"frequency.num_points: is not an integer"},
		{"empty range", `{"factor_kind": "one_image", "frequency": {"min_hz": 5, "max_hz": 5}, "one_image": {"delta_phi_rad": 0}}`,
			"frequency.max_hz: must be larger"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var event LensingEvent
			msg, ok := validateJsonFileAndFillEvent(parse(t, tc.src), &event)
			assert.False(t, ok)
			assert.Contains(t, msg, tc.msg)
		})
	}
}

func TestParseArrayFormat(t *testing.T) {
	pairs, err := parseArrayFormat([]byte(`[[10, 0.3], [100, 1.2]]`))
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{10, 0.3}, {100, 1.2}}, pairs)

	_, err = parseArrayFormat([]byte(`{"a": 1}`))
	assert.Error(t, err)
}

func TestAmplitudeAndPhase_Unwraps(t *testing.T) {
	F := make([]complex128, 40)
	for i := range F {
		F[i] = complex(2*math.Cos(0.5*float64(i)), 2*math.Sin(0.5*float64(i)))
	}
	amp, phase := amplitudeAndPhase(F)
	for i := range F {
		assert.InDelta(t, 2, amp[i], 1e-12)
		assert.InDelta(t, 0.5*float64(i), phase[i], 1e-9)
	}
}

func TestRunSelfChecks(t *testing.T) {
	assert.True(t, runSelfChecks())
}
