package main

import (
	"fmt"
	"strings"

	json "github.com/KevinWang15/go-json5"
)

// parseArrayFormat reads a lens table: an array of [lens_mass_msun, impact_parameter] pairs.
func parseArrayFormat(data []byte) ([][2]float64, error) {
	var pairs [][2]float64
	err := json.Unmarshal(data, &pairs)
	return pairs, err
}

func getLeafValue(jsonTable map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = jsonTable
	for _, p := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// getFloat copies the number at path into dst. A missing entry leaves dst untouched
// and is only an error when required is set.
func getFloat(jsonTable map[string]interface{}, dst *float64, required bool, path ...string) (string, bool) {
	name := strings.Join(path, ".")
	v, ok := getLeafValue(jsonTable, path...)
	if !ok {
		if required {
			return name + ": not found", false
		}
		return "", true
	}
	value, ok := v.(float64)
	if !ok {
		return name + ": is not a float64", false
	}
	*dst = value
	return "", true
}

func getInt(jsonTable map[string]interface{}, dst *int, required bool, path ...string) (string, bool) {
	var f float64
	_, present := getLeafValue(jsonTable, path...)
	msg, ok := getFloat(jsonTable, &f, required, path...)
	if !ok {
		return msg, false
	}
	if present {
		if f != float64(int(f)) {
			return strings.Join(path, ".") + ": is not an integer", false
		}
		*dst = int(f)
	}
	return "", true
}

func getString(jsonTable map[string]interface{}, dst *string, path ...string) (string, bool) {
	v, ok := getLeafValue(jsonTable, path...)
	if !ok {
		return "", true
	}
	*dst, ok = v.(string)
	if !ok {
		return strings.Join(path, ".") + ": is not a string", false
	}
	return "", true
}

func getBool(jsonTable map[string]interface{}, dst *bool, path ...string) (string, bool) {
	v, ok := getLeafValue(jsonTable, path...)
	if !ok {
		return "", true
	}
	*dst, ok = v.(bool)
	if !ok {
		return strings.Join(path, ".") + ": is not a bool", false
	}
	return "", true
}

func validateJsonFileAndFillEvent(jsonTable map[string]interface{}, event *LensingEvent) (string, bool) {
	msg := "No problem found in json file" // Initialize msg to presumed success.

	// Defaults for optional entries
	event.FreqNumPoints = 1025
	event.PlotFile = "amplification.png"

	checks := []func() (string, bool){
		func() (string, bool) { return getBool(jsonTable, &event.ShowInput, "show_input_bool") },
		func() (string, bool) { return getBool(jsonTable, &event.RunSelfChecks, "run_self_checks_bool") },
		func() (string, bool) { return getString(jsonTable, &event.Title, "title") },
		func() (string, bool) { return getString(jsonTable, &event.PlotFile, "plot_file") },
		func() (string, bool) { return getString(jsonTable, &event.PathToLensTable, "path_to_lens_table") },
		func() (string, bool) { return getInt(jsonTable, &event.Workers, false, "workers") },

		func() (string, bool) { return getFloat(jsonTable, &event.FreqMinHz, true, "frequency", "min_hz") },
		func() (string, bool) { return getFloat(jsonTable, &event.FreqMaxHz, true, "frequency", "max_hz") },
		func() (string, bool) { return getInt(jsonTable, &event.FreqNumPoints, false, "frequency", "num_points") },
	}
	for _, check := range checks {
		if m, ok := check(); !ok {
			return m, false
		}
	}

	kind, ok := getLeafValue(jsonTable, "factor_kind")
	if !ok {
		msg = "factor_kind: not found"
		return msg, false
	}
	event.FactorKind, ok = kind.(string)
	if !ok {
		msg = "factor_kind: is not a string"
		return msg, false
	}

	// Each factor kind has its own group of parameters. Only the selected group is required.
	var groupChecks []func() (string, bool)
	switch event.FactorKind {
	case "one_image":
		groupChecks = []func() (string, bool){
			func() (string, bool) { return getFloat(jsonTable, &event.DeltaPhiRad, true, "one_image", "delta_phi_rad") },
		}
	case "two_images":
		groupChecks = []func() (string, bool){
			func() (string, bool) { return getFloat(jsonTable, &event.MuRel, true, "two_images", "mu_rel") },
			func() (string, bool) { return getFloat(jsonTable, &event.DeltaTSec, true, "two_images", "delta_t_sec") },
			func() (string, bool) { return getFloat(jsonTable, &event.DeltaPhiRad, true, "two_images", "delta_phi_rad") },
		}
	case "fold_caustic":
		groupChecks = []func() (string, bool){
			func() (string, bool) { return getFloat(jsonTable, &event.DeltaTSec, true, "fold_caustic", "delta_t_sec") },
			func() (string, bool) { return getInt(jsonTable, &event.PositivePhase, true, "fold_caustic", "positive_phase") },
		}
	case "cusp_caustic":
		groupChecks = []func() (string, bool){
			func() (string, bool) { return getFloat(jsonTable, &event.DeltaT10Sec, true, "cusp_caustic", "delta_t10_sec") },
			func() (string, bool) { return getFloat(jsonTable, &event.DeltaT20Sec, true, "cusp_caustic", "delta_t20_sec") },
			func() (string, bool) { return getFloat(jsonTable, &event.MuRel, true, "cusp_caustic", "mu_rel") },
			func() (string, bool) { return getInt(jsonTable, &event.PositivePhase, true, "cusp_caustic", "positive_phase") },
		}
	case "point_lens":
		groupChecks = []func() (string, bool){
			func() (string, bool) { return getFloat(jsonTable, &event.LensMassMsun, true, "point_lens", "lens_mass_msun") },
			func() (string, bool) { return getFloat(jsonTable, &event.ImpactParameter, true, "point_lens", "impact_parameter") },
		}
	default:
		msg = fmt.Sprintf("factor_kind: %q is not one of one_image, two_images, fold_caustic, cusp_caustic, point_lens", event.FactorKind)
		return msg, false
	}
	for _, check := range groupChecks {
		if m, ok := check(); !ok {
			return m, false
		}
	}

	if event.FreqNumPoints < 2 {
		msg = "frequency.num_points: must be at least 2"
		return msg, false
	}
	if event.FreqMaxHz <= event.FreqMinHz {
		msg = "frequency.max_hz: must be larger than frequency.min_hz"
		return msg, false
	}

	// The source group is optional. When present, a Newtonian chirp is lensed and shown in the time domain.
	_, ok = getLeafValue(jsonTable, "source")
	event.SourceGiven = ok

	if ok {
		src := &event.Source
		sourceChecks := []func() (string, bool){
			func() (string, bool) { return getFloat(jsonTable, &src.Mass1, true, "source", "mass_1") },
			func() (string, bool) { return getFloat(jsonTable, &src.Mass2, true, "source", "mass_2") },
			func() (string, bool) {
				return getFloat(jsonTable, &src.LuminosityDistance, true, "source", "luminosity_distance_mpc")
			},
			func() (string, bool) { return getFloat(jsonTable, &src.ThetaJN, false, "source", "theta_jn") },
			func() (string, bool) { return getFloat(jsonTable, &src.Phase, false, "source", "phase") },
			func() (string, bool) {
				return getFloat(jsonTable, &event.TimeOfCoalescenceSec, false, "source", "time_of_coalescence_sec")
			},
		}
		event.TimeDomainSamples = 8192
		event.TimeDomainDeltaFHz = 0.25
		sourceChecks = append(sourceChecks,
			func() (string, bool) { return getInt(jsonTable, &event.TimeDomainSamples, false, "source", "num_samples") },
			func() (string, bool) { return getFloat(jsonTable, &event.TimeDomainDeltaFHz, false, "source", "delta_f_hz") },
		)
		for _, check := range sourceChecks {
			if m, ok := check(); !ok {
				return m, false
			}
		}
	}

	return msg, true
}
