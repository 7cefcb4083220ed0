package config

// DefaultConfig returns configuration matching the LVGL 8 header layout.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Base: "lib/libesp32_lvgl/LVGL8/src",
			FunctionGlobs: []string{
				"widgets/*.h",
				"extra/widgets/chart/*.h",
				"extra/widgets/colorwheel/*.h",
				"extra/widgets/imgbtn/*.h",
				"extra/widgets/led/*.h",
				"extra/widgets/meter/*.h",
				"extra/widgets/msgbox/*.h",
				"extra/widgets/spinbox/*.h",
				"core/*.h",
				"draw/*.h",
				"misc/lv_style_gen.h",
			},
			EnumGlobs: []string{"**/*.h"},
		},
		Functions: FunctionsConfig{
			Output: "lv_funcs.h",
			ReservedPrefixes: []RuleConfig{
				{Pattern: "typedef", Reason: "type definition"},
				{Pattern: "_LV_", Reason: "internal macro"},
				{Pattern: "LV_", Reason: "library macro"},
			},
			ExcludeNames: []RuleConfig{
				{Pattern: "^_", Reason: "private function"},
				{Pattern: "^lv_debug", Reason: "debug function"},
				{Pattern: "^lv_init"},
				{Pattern: "^lv_deinit"},
				{Pattern: "^lv_templ_", Reason: "template widget"},
				{Pattern: "^lv_imgbtn_get_src_", Reason: "LV_IMGBTN_TILED is 0"},
				{Pattern: "^lv_imgbtn_set_src_tiled", Reason: "LV_IMGBTN_TILED is 0"},
				{Pattern: "^lv_disp_"},
				{Pattern: "^lv_refr_get_fps_", Reason: "LV_USE_PERF_MONITOR disabled"},
				{Pattern: "^lv_img_cache_"},
				{Pattern: "^lv_img_decoder_"},
				{Pattern: "^lv_img_cf_"},
				{Pattern: "^lv_img_buf_"},
				{Pattern: "^lv_indev_scroll_"},
				{Pattern: "^lv_keyboard_def_event_cb", Reason: "conditional include"},
				{Pattern: "^lv_event_get_", Reason: "event getters"},
			},
			StripTokens: []string{"LV_ATTRIBUTE_FAST_MEM"},
		},
		Enums: EnumsConfig{
			Output: "lv_enum.h",
			ExcludePrefixes: []RuleConfig{
				{Pattern: "_"},
				{Pattern: "LV_BIDI_DIR_"},
				{Pattern: "LV_FONT_"},
				{Pattern: "LV_IMG_CF_RESERVED_"},
				{Pattern: "LV_IMG_CF_USER_"},
				{Pattern: "LV_SIGNAL_"},
				{Pattern: "LV_TEMPL_"},
				{Pattern: "LV_TASK_PRIO_"},
				{Pattern: "LV_THEME_"},
				{Pattern: "LV_KEYBOARD_"},
			},
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Source = mergeSourceConfig(loaded.Source, defaults.Source)
	result.Functions = mergeFunctionsConfig(loaded.Functions, defaults.Functions)
	result.Enums = mergeEnumsConfig(loaded.Enums, defaults.Enums)

	return result
}

func mergeSourceConfig(loaded, defaults SourceConfig) SourceConfig {
	return SourceConfig{
		Base:          pickString(loaded.Base, defaults.Base),
		FunctionGlobs: pickSlice(loaded.FunctionGlobs, defaults.FunctionGlobs),
		EnumGlobs:     pickSlice(loaded.EnumGlobs, defaults.EnumGlobs),
	}
}

func mergeFunctionsConfig(loaded, defaults FunctionsConfig) FunctionsConfig {
	return FunctionsConfig{
		Output:           pickString(loaded.Output, defaults.Output),
		ReservedPrefixes: pickList(loaded.ReservedPrefixes, defaults.ReservedPrefixes),
		ExcludeNames:     pickList(loaded.ExcludeNames, defaults.ExcludeNames),
		StripTokens:      pickList(loaded.StripTokens, defaults.StripTokens),
	}
}

func mergeEnumsConfig(loaded, defaults EnumsConfig) EnumsConfig {
	return EnumsConfig{
		Output:          pickString(loaded.Output, defaults.Output),
		ExcludePrefixes: pickList(loaded.ExcludePrefixes, defaults.ExcludePrefixes),
	}
}

func pickString(loaded, fallback string) string {
	if loaded != "" {
		return loaded
	}
	return fallback
}

// pickList keeps an explicit empty list, which disables the rules or tokens
// it holds; only a missing key (nil) falls back.
func pickList[T any](loaded, fallback []T) []T {
	if loaded != nil {
		return loaded
	}
	return fallback
}

func pickSlice[T any](loaded, fallback []T) []T {
	if len(loaded) > 0 {
		return loaded
	}
	return fallback
}
