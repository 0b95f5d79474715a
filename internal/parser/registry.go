package parser

import "sync"

// Экземпляры обработчиков без состояния; одни и те же значения
// раздаются всем схемам.
var (
	hSimple    Handler = simpleHandler{kind: anyValue}
	hStr       Handler = simpleHandler{kind: stringValue}
	hSymStr    Handler = simpleHandler{kind: stringValue, symbol: true}
	hFloat     Handler = simpleHandler{kind: floatValue}
	hFunc      Handler = simpleHandler{kind: funcValue}
	hExpr      Handler = simpleHandler{kind: exprValue}
	hComplex   Handler = complexHandler{shape: anyList}
	hStr1      Handler = complexHandler{shape: str1List, symbol: true}
	hUnit      Handler = complexHandler{shape: unitList}
	hPw        Handler = complexHandler{shape: pwList}
	hDefine    Handler = complexHandler{shape: defineList}
	hVector    Handler = complexHandler{shape: vectorList}
	hVectors   Handler = complexHandler{shape: vectorsList}
	hGeneric   Handler = &groupHandler{schema: genericSchema}
	registryFn         = sync.OnceValue(buildRegistry)
)

// schemaRegistry holds the named group kinds. Built once per process.
type schemaRegistry struct {
	library *groupHandler
	groups  map[string]*groupHandler // по имени вида, для тестов и дампа схемы
}

func registry() *schemaRegistry { return registryFn() }

// attrs is a builder for a schema attribute table.
type attrs map[string]Handler

func (a attrs) set(h Handler, names ...string) attrs {
	for _, n := range names {
		a[n] = h
	}
	return a
}

func group(header headerKind, a attrs) *groupHandler {
	return &groupHandler{schema: &groupSchema{header: header, attrs: a}}
}

func buildRegistry() *schemaRegistry {
	r := &schemaRegistry{groups: make(map[string]*groupHandler)}
	reg := func(kind string, h *groupHandler) *groupHandler {
		r.groups[kind] = h
		return h
	}

	table := reg("table", group(headerStr1, attrs{}.
		set(hVector, "index_1", "index_2", "index_3").
		set(hVectors, "values").
		set(hGeneric, "domain")))

	template := reg("template", group(headerStr1, attrs{}.
		set(hStr, "variable_1", "variable_2", "variable_3").
		set(hVector, "index_1", "index_2", "index_3").
		set(hGeneric, "domain")))

	power := reg("power", group(headerStr1, attrs{}.
		set(hVector, "index_1", "index_2", "index_3").
		set(hVectors, "values").
		set(hComplex, "orders", "coefs").
		set(hGeneric, "domain")))

	pinInternalPower := reg("internal_power", group(headerEmpty, attrs{}.
		set(hSimple, "equal_or_opposite_output", "falling_together_group", "power_level",
			"related_pin", "rising_together_group", "switching_interval",
			"switching_together_group", "when").
		set(power, "power", "fall_power", "rise_power").
		set(hGeneric, "domain")))

	cellInternalPower := reg("cell_internal_power", group(headerStr1, attrs{}.
		set(hSimple, "related_inputs", "related_outputs").
		set(hComplex, "values")))

	timing := reg("timing", group(headerEmpty, attrs{}.
		set(hStr, "related_bus_equivalent", "related_bus_pins", "related_output_pin",
			"related_pin", "timing_sense", "timing_type", "when", "when_end", "when_start").
		set(hSimple, "edge_rate_sensitivity_f0", "edge_rate_sensitivity_f1",
			"edge_rate_sensitivity_r0", "edge_rate_sensitivity_r1",
			"sdf_cond", "sdf_cond_end", "sdf_cond_start", "sdf_edges").
		set(hFloat, "rise_resistance", "fall_resistance", "intrinsic_rise", "intrinsic_fall",
			"slope_fall", "slope_rise").
		set(hPw, "rise_delay_intercept", "fall_delay_intercept",
			"rise_pin_resistance", "fall_pin_resistance").
		set(hComplex, "orders", "coefs").
		set(table, "cell_rise", "cell_fall", "rise_constraint", "fall_constraint",
			"rise_propagation", "fall_propagation", "rise_transition", "fall_transition",
			"noise_immunity_above_high", "noise_immunity_below_low",
			"noise_immunity_high", "noise_immunity_low",
			"propogated_noise_height_above_high", "propogated_noise_height_below_low",
			"propogated_noise_height_high", "propogated_noise_height_low",
			"propogated_noise_peak_time_ratio_above_high",
			"propogated_noise_peak_time_ratio__below_low",
			"propogated_noise_peak_time_ratio_high", "propogated_noise_peak_time_ratio_low",
			"propogated_noise_width_above_high", "propogated_noise_width_below_low",
			"propogated_noise_width_high", "propogated_noise_width_low",
			"retaining_rise", "retaining_fall", "retain_fall_slew", "retain_rise_slew").
		set(hGeneric, "cell_degradation", "steady_state_current_high",
			"steady_state_current_low", "steady_state_current_tristate")))

	pinGroups := func(a attrs) attrs {
		return a.
			set(hGeneric, "electromigration", "hyperbolic_noise_above_high",
				"hyperbolic_noise_below_low", "hyperbolic_noise_high", "hyperbolic_noise_low",
				"max_trans", "min_pulse_width", "minimum_period", "tlatch").
			set(pinInternalPower, "internal_power").
			set(timing, "timing")
	}

	pin := reg("pin", group(headerStr1, pinGroups(attrs{}.
		set(hSimple, "bit_width", "clock", "clock_gate_clock_pin", "clock_gate_enable_pin",
			"clock_gate_test_pin", "clock_gate_obs_pin", "clock_gate_out_pin",
			"complementary_pin", "connection_class", "dont_fault", "drive_current",
			"driver_type", "fall_capacitance", "fall_current_slope_after_threshold",
			"fall_current_slope_before_threshold", "fall_time_after_threshold",
			"fall_time_before_threshold", "fault_model", "has_builtin_pad", "hysteresis",
			"input_map", "input_signal_level", "input_voltage", "internal_node",
			"inverted_output", "is_pad", "max_input_noise_width", "min_input_noise_width",
			"min_period", "min_pulse_width_high", "min_pulse_width_low", "multicell_pad_pin",
			"nextstate_type", "output_signal_level", "pin_func_type", "prefer_tied",
			"primary_output", "signal_type", "slew_control", "state_function",
			"test_output_only", "x_function").
		set(hStr, "direction", "vhdl_name").
		set(hFloat, "capacitance", "fanout_load", "max_capacitance", "max_fanout",
			"max_transition", "min_capacitance", "min_fanout", "min_transition",
			"output_voltage", "pulling_current", "pulling_resistance", "rise_capacitance",
			"rise_current_slope_after_threshold", "rise_current_slope_before_threshold",
			"rise_time_after_threshold", "rise_time_before_threshold").
		set(hFunc, "function", "three_state").
		set(hComplex, "fall_capacitance_range", "rise_capacitance_range"))))

	bus := reg("bus", group(headerStr1, attrs{}.
		set(hSimple, "bus_type").
		set(pin, "pin")))

	bundle := reg("bundle", group(headerStr1, pinGroups(attrs{}.
		set(hFloat, "capacitance").
		set(hSimple, "direction").
		set(hFunc, "function").
		set(hComplex, "members").
		set(pin, "pin"))))

	seq := func(header headerKind, clock, data, also string) *groupHandler {
		return group(header, attrs{}.
			set(hFunc, "clear", "preset", clock, data, also).
			set(hStr, "clear_preset_var1", "clear_preset_var2"))
	}
	ff := reg("ff", seq(headerStr2, "clocked_on", "next_state", "clocked_on_also"))
	ffBank := reg("ff_bank", seq(headerStr2Int, "clocked_on", "next_state", "clocked_on_also"))
	latch := reg("latch", seq(headerStr2, "enable", "data_in", "enable_also"))
	latchBank := reg("latch_bank", seq(headerStr2Int, "enable", "data_in", "enable_also"))

	statetable := reg("statetable", group(headerStr2, attrs{}.
		set(hSimple, "table")))

	leakagePower := reg("leakage_power", group(headerEmpty, attrs{}.
		set(hSimple, "power_level", "related_pg_pin").
		set(hFunc, "when").
		set(hFloat, "value")))

	cellGroups := func(a attrs) attrs {
		return a.
			set(bus, "bus").
			set(hGeneric, "dynamic_current", "functional_yield_metric", "generated_clock",
				"intrinsic_parasitic", "leakage_current", "lut", "mode_definition").
			set(ff, "ff").
			set(ffBank, "ff_bank").
			set(latch, "latch").
			set(latchBank, "latch_bank").
			set(leakagePower, "leakage_power").
			set(pin, "pin").
			set(statetable, "statetable")
	}

	testCell := reg("test_cell", group(headerGeneric, cellGroups(attrs{})))

	cell := reg("cell", group(headerStr1, cellGroups(attrs{}.
		set(hFloat, "area").
		set(hStr, "base_name", "bus_naming_style", "cell_footprint").
		set(hSimple, "auxiliary_pad_cell", "cell_leakage_power", "clock_gating_integrated_cell",
			"contention_condition", "dont_fault", "dont_touch", "dont_use", "driver_type",
			"edif_name", "em_temp_degradation_factor", "fpga_domain_style", "geometry_print",
			"handle_negative_constraint", "interface_timing", "io_type",
			"is_clock_gating_cell", "map_only", "pad_cell", "pad_type", "power_cell_type",
			"preferred", "scaling_factors", "single_bit_degenerate", "slew_type",
			"timing_model_type", "use_for_size_only", "vhdl_name", "is_filler_cell").
		set(hComplex, "pin_opposite", "rail_connection", "power_supply_namestring",
			"resource_usage").
		set(hGeneric, "routing_track").
		set(bundle, "bundle").
		set(cellInternalPower, "internal_power").
		set(testCell, "test_cell"))))

	inputVoltage := reg("input_voltage", group(headerStr1, attrs{}.
		set(hExpr, "vil", "vih", "vimin", "vimax")))

	outputVoltage := reg("output_voltage", group(headerStr1, attrs{}.
		set(hExpr, "vol", "voh", "vomin", "vomax")))

	operatingConditions := reg("operating_conditions", group(headerStr1, attrs{}.
		set(hSimple, "calc_mode", "parameter1", "parameter2", "parameter3", "parameter4",
			"parameter5").
		set(hFloat, "process", "temperature", "voltage").
		set(hStr, "tree_type").
		set(hComplex, "power_rail")))

	wireLoad := reg("wire_load", group(headerStr1, attrs{}.
		set(hFloat, "area", "capacitance", "resistance", "slope").
		set(hComplex, "fanout_length")))

	wireLoadSelection := reg("wire_load_selection", group(headerGeneric, attrs{}.
		set(hComplex, "wire_load_from_area")))

	wireLoadTable := reg("wire_load_table", group(headerGeneric, attrs{}.
		set(hComplex, "fanout_area", "fanout_capacitance", "fanout_length",
			"fanout_resistance")))

	kFactors := attrs{}
	for _, axis := range []string{"process", "temp", "volt"} {
		for _, what := range kFactorNames {
			kFactors["k_"+axis+"_"+what] = hFloat
		}
	}

	r.library = reg("library", group(headerStr1, kFactors.
		set(hStr, "bus_naming_style", "comment", "date", "delay_model", "fpga_technology",
			"in_place_swap_mode", "nom_calc_mode", "piece_type", "power_model",
			"preferred_output_pad_slew_rate_control", "preferred_input_pad_voltage",
			"preferred_output_pad_voltage", "simulation",
			"default_connection_class", "default_operating_conditions", "default_wire_load",
			"default_wire_load_mode", "default_wire_load_selection").
		set(hSymStr, "current_unit", "leakage_power_unit", "pulling_resistance_unit",
			"revision", "time_unit", "voltage_unit").
		set(hFloat, "em_temp_degradation_factor", "nom_process", "nom_temperature",
			"nom_voltage",
			"default_cell_leakage_power", "default_fall_delay_intercept",
			"default_fall_pin_resistance", "default_fanout_load", "default_inout_pin_cap",
			"default_inout_pin_fall_res", "default_inout_pin_rise_res",
			"default_input_pin_cap", "default_intrinsic_fall", "default_intrinsic_rise",
			"default_leakage_power_density", "default_max_capacitance", "default_max_fanout",
			"default_max_transition", "default_max_utilization", "default_min_porosity",
			"default_output_pin_cap", "default_output_pin_fall_res",
			"default_output_pin_rise_res", "default_rise_delay_intercept",
			"default_rise_pin_resistance", "default_slope_fall", "default_slope_rise",
			"default_wire_load_area", "default_wire_load_capacitance",
			"default_wire_load_resistance").
		set(hSimple, "input_threshold_pct_fall", "input_threshold_pct_rise",
			"output_threshold_pct_fall", "output_threshold_pct_rise",
			"slew_derate_from_library", "slew_lower_threshold_pct_fall",
			"slew_lower_threshold_pct_rise", "slew_upper_threshold_pct_fall",
			"slew_upper_threshold_pct_rise").
		set(hUnit, "capacitive_load_unit").
		set(hComplex, "default_part", "define_cell_area", "define_group", "routing_layers").
		set(hDefine, "define").
		set(hStr1, "library_features", "piece_define", "technology").
		set(cell, "cell").
		set(template, "dc_current_template", "em_lut_template", "faults_lut_template",
			"iv_lut_template", "lu_table_template", "noise_lut_template",
			"output_current_template", "poly_template", "power_lut_template",
			"power_poly_template", "propagation_lut_template").
		set(hGeneric, "fall_transition_degradation", "part", "power_supply",
			"rise_transition_degradation", "scaled_cell", "scaling_factors", "timing",
			"timing_range", "type").
		set(inputVoltage, "input_voltage").
		set(outputVoltage, "output_voltage").
		set(operatingConditions, "operating_conditions").
		set(wireLoad, "wire_load").
		set(wireLoadSelection, "wire_load_selection").
		set(wireLoadTable, "wire_load_table")))

	return r
}

// kFactorNames — суффиксы масштабных коэффициентов k_{process,temp,volt}_*.
var kFactorNames = []string{
	"cell_fall", "cell_leakage_power", "cell_rise", "drive_current", "drive_fall",
	"drive_rise", "fall_delay_intercept", "fall_pin_resistance", "fall_propagation",
	"fall_transition", "hold_fall", "hold_rise", "internal_power", "intrinsic_fall",
	"intrinsic_rise", "min_period", "min_pulse_width_high", "min_pulse_width_low",
	"nochange_fall", "nochange_rise", "pin_cap", "recovery_fall", "recovery_rise",
	"removal_fall", "removal_rise", "rise_delay_intercept", "rise_pin_resistance",
	"rise_propagation", "rise_transition", "setup_fall", "setup_rise", "skew_fall",
	"skew_rise", "slope_fall", "slope_rise", "wire_cap", "wire_res",
}
