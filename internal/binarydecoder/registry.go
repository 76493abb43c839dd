package binarydecoder

// RegistryEntry binds one tag (0-249) to a human name, its wire shape, and
// the function that turns a frame body into a Payload. This is the Go
// stand-in for the source's dict-of-handler-methods: a data table instead
// of ~220 hand-written functions, matching the teacher's preference for
// table-driven dispatch (STEP_SIZE_TABLE/INDEX_TABLE, the KISS command
// table) over long if/switch cascades.
type RegistryEntry struct {
	Tag     byte
	Name    string
	Element ElementKind

	// Variable means the body is one vector of n = len(body)/elementSize
	// elements ("1..n" in spec.md's table): tag3, tag4/5, tag10, tag11,
	// tag1 booleans. Variable and Arity are mutually exclusive.
	Variable bool

	// Arity is the fixed element count per group for non-Variable entries
	// (2 for impedance, 3 for XYZ, 12 for 12-lead ECG, ...). A body that is
	// an exact multiple of Arity groups decodes to a Matrix; exactly one
	// group decodes to a Vector (or a Scalar when Arity == 1).
	Arity int

	// Scale is the linear rescale y = x * Scale applied to every decoded
	// element (spec.md §4.F), 1 for unscaled types.
	Scale float64

	// Decode overrides the generic numeric decode for tags with bespoke
	// shapes (text, audio, image). Nil means use decodeGeneric.
	Decode func(body []byte, d *BinaryDecoder) (Payload, error)
}

func decodeGeneric(entry RegistryEntry) func([]byte, *BinaryDecoder) (Payload, error) {
	return func(body []byte, _ *BinaryDecoder) (Payload, error) {
		var elemSize = elementSize(entry.Element)
		if elemSize == 0 {
			return Payload{}, ErrTypeDecode
		}

		if entry.Variable {
			if len(body) == 0 || len(body)%elemSize != 0 {
				return Payload{}, ErrTypeDecode
			}
			var n = len(body) / elemSize
			if n == 1 {
				return Payload{Kind: PayloadScalar, Scalar: decodeElement(body, entry.Element) * entry.Scale}, nil
			}
			var vec = make([]float64, n)
			for i := 0; i < n; i++ {
				vec[i] = decodeElement(body[i*elemSize:(i+1)*elemSize], entry.Element) * entry.Scale
			}
			return Payload{Kind: PayloadVector, Vector: vec}, nil
		}

		var arity = entry.Arity
		if arity <= 0 {
			arity = 1
		}
		var groupSize = elemSize * arity
		if len(body) == 0 || len(body)%groupSize != 0 {
			return Payload{}, ErrTypeDecode
		}

		var rows = len(body) / groupSize
		if rows == 1 {
			if arity == 1 {
				return Payload{Kind: PayloadScalar, Scalar: decodeElement(body, entry.Element) * entry.Scale}, nil
			}
			var vec = make([]float64, arity)
			for c := 0; c < arity; c++ {
				vec[c] = decodeElement(body[c*elemSize:(c+1)*elemSize], entry.Element) * entry.Scale
			}
			return Payload{Kind: PayloadVector, Vector: vec}, nil
		}

		var mat = make([]float64, rows*arity)
		for r := 0; r < rows; r++ {
			for c := 0; c < arity; c++ {
				var off = r*groupSize + c*elemSize
				mat[r*arity+c] = decodeElement(body[off:off+elemSize], entry.Element) * entry.Scale
			}
		}
		return Payload{Kind: PayloadMatrix, Matrix: mat, MatrixRows: rows, MatrixCols: arity}, nil
	}
}

// buildRegistry constructs the tag -> entry table. Unassigned tags get no
// entry; dispatch drops their frames without producing a Sample.
func buildRegistry() map[byte]RegistryEntry {
	var reg = make(map[byte]RegistryEntry)

	var add = func(e RegistryEntry) {
		if e.Decode == nil {
			e.Decode = decodeGeneric(e)
		}
		reg[e.Tag] = e
	}

	// --- primitives ---
	add(RegistryEntry{Tag: 0, Name: "text", Element: ElementI8, Decode: decodeText})
	add(RegistryEntry{Tag: 1, Name: "bool", Element: ElementBool, Variable: true, Scale: 1})
	add(RegistryEntry{Tag: 2, Name: "bytes", Element: ElementU8, Decode: decodeBytes})
	add(RegistryEntry{Tag: 3, Name: "int8", Element: ElementI8, Variable: true, Scale: 1})
	add(RegistryEntry{Tag: 4, Name: "short", Element: ElementI16, Variable: true, Scale: 1})
	add(RegistryEntry{Tag: 5, Name: "ushort", Element: ElementU16, Variable: true, Scale: 1})
	add(RegistryEntry{Tag: 6, Name: "int", Element: ElementI32, Variable: true, Scale: 1})
	add(RegistryEntry{Tag: 7, Name: "uint", Element: ElementU32, Variable: true, Scale: 1})
	add(RegistryEntry{Tag: 8, Name: "long", Element: ElementI64, Variable: true, Scale: 1})
	add(RegistryEntry{Tag: 9, Name: "ulong", Element: ElementU64, Variable: true, Scale: 1})
	add(RegistryEntry{Tag: 10, Name: "float", Element: ElementF32, Variable: true, Scale: 1})
	add(RegistryEntry{Tag: 11, Name: "double", Element: ElementF64, Variable: true, Scale: 1})

	// --- physics quantities (supplemented, SPEC_FULL §6), tag numbers and
	// units realigned to Codec_helper.py:1235-1270's handler table exactly
	// (this is the firmware interoperability contract spec.md §4.G requires
	// be preserved unchanged) ---
	add(RegistryEntry{Tag: 16, Name: "length_m", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 17, Name: "mass_kg", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 18, Name: "time_s", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 19, Name: "current_a", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 20, Name: "temperature_k", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 21, Name: "amount_mol", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 22, Name: "luminous_intensity_cd", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 23, Name: "brightness_lm", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 24, Name: "angle_deg", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 25, Name: "area_m2", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 26, Name: "volume_m3", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 27, Name: "force_n", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 28, Name: "velocity_mps", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 29, Name: "acceleration_mps2", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 31, Name: "pressure_pa", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 32, Name: "pressure_mbar", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 33, Name: "energy_j", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 34, Name: "power_w", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 35, Name: "charge_c", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 36, Name: "voltage_v", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 37, Name: "resistance_ohm", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 38, Name: "conductance_s", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 39, Name: "reactance_ohm", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 40, Name: "impedance_rx", Element: ElementF32, Arity: 2, Scale: 1})
	add(RegistryEntry{Tag: 41, Name: "phase_deg", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 42, Name: "inductance_h", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 43, Name: "capacitance_f", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 44, Name: "magnetic_field_t", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 45, Name: "frequency_hz", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 46, Name: "molarity_mol_l", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 47, Name: "electron_volts_ev", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 50, Name: "optical_spectrum", Element: ElementF32, Arity: 2, Scale: 1}) // wavelength, intensity
	add(RegistryEntry{Tag: 51, Name: "frequency_spectrum", Element: ElementF32, Arity: 2, Scale: 1}) // frequency, intensity

	// --- physiology, tag numbers realigned to Codec_helper.py:1280-1336 ---
	add(RegistryEntry{Tag: 61, Name: "temperature_c", Element: ElementU16, Arity: 1, Scale: 1.0 / 1000})
	add(RegistryEntry{Tag: 62, Name: "heart_rate_bpm", Element: ElementU16, Arity: 1, Scale: 1.0 / 100})
	add(RegistryEntry{Tag: 63, Name: "heart_rate_variability_ms", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 64, Name: "respiratory_rate_bpm", Element: ElementU16, Arity: 1, Scale: 1.0 / 100})
	add(RegistryEntry{Tag: 65, Name: "blood_pressure_mmhg", Element: ElementU16, Arity: 1, Scale: 1.0 / 100})
	add(RegistryEntry{Tag: 66, Name: "blood_pressure_systolic_mmhg", Element: ElementU16, Arity: 1, Scale: 1.0 / 100})
	add(RegistryEntry{Tag: 67, Name: "blood_pressure_diastolic_mmhg", Element: ElementU16, Arity: 1, Scale: 1.0 / 100})
	add(RegistryEntry{Tag: 68, Name: "spo2_pct", Element: ElementU16, Arity: 1, Scale: 1.0 / 100})
	add(RegistryEntry{Tag: 70, Name: "weight_kg", Element: ElementU32, Arity: 1, Scale: 1.0 / 1e6})
	add(RegistryEntry{Tag: 71, Name: "height_m", Element: ElementU16, Arity: 1, Scale: 1.0 / 100})
	add(RegistryEntry{Tag: 72, Name: "age_years", Element: ElementU16, Arity: 1, Scale: 1.0 / 100})
	add(RegistryEntry{Tag: 73, Name: "bmi", Element: ElementU16, Arity: 1, Scale: 1.0 / 1000})
	add(RegistryEntry{Tag: 74, Name: "waist_circumference_m", Element: ElementU16, Arity: 1, Scale: 1.0 / 1000})
	add(RegistryEntry{Tag: 75, Name: "hip_circumference_m", Element: ElementU16, Arity: 1, Scale: 1.0 / 1000})
	add(RegistryEntry{Tag: 76, Name: "chest_circumference_m", Element: ElementU16, Arity: 1, Scale: 1.0 / 1000})
	add(RegistryEntry{Tag: 77, Name: "thigh_circumference_m", Element: ElementU16, Arity: 1, Scale: 1.0 / 1000})
	add(RegistryEntry{Tag: 78, Name: "arm_circumference_m", Element: ElementU16, Arity: 1, Scale: 1.0 / 1000})
	add(RegistryEntry{Tag: 79, Name: "calf_circumference_m", Element: ElementU16, Arity: 1, Scale: 1.0 / 1000})
	add(RegistryEntry{Tag: 80, Name: "bioz_freq_r_x", Element: ElementF32, Arity: 3, Scale: 1})
	add(RegistryEntry{Tag: 81, Name: "fat_free_mass_kg", Element: ElementF32, Arity: 1, Scale: 1.0 / 100})
	add(RegistryEntry{Tag: 82, Name: "total_body_water_l", Element: ElementF32, Arity: 1, Scale: 1.0 / 100})
	add(RegistryEntry{Tag: 83, Name: "extracellular_water_l", Element: ElementF32, Arity: 1, Scale: 1.0 / 100})
	add(RegistryEntry{Tag: 84, Name: "total_body_potassium_g", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 85, Name: "body_fat_pct", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 86, Name: "body_water_pct", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 87, Name: "muscle_mass_pct", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 90, Name: "ecg_v", Element: ElementI16, Arity: 1, Scale: 1.0 / 1e6})
	add(RegistryEntry{Tag: 91, Name: "ecg12_v", Element: ElementI16, Arity: 12, Scale: 1.0 / 1e6})
	add(RegistryEntry{Tag: 92, Name: "eeg_v", Element: ElementI16, Arity: 1, Scale: 1.0 / 1e6})
	add(RegistryEntry{Tag: 93, Name: "emg_v", Element: ElementI16, Arity: 1, Scale: 1.0 / 1e6})
	add(RegistryEntry{Tag: 100, Name: "forced_expiratory_volume_l", Element: ElementI16, Arity: 1, Scale: 1.0 / 1000})
	add(RegistryEntry{Tag: 101, Name: "lung_flow_l", Element: ElementU16, Arity: 1, Scale: 1.0 / 1000})
	add(RegistryEntry{Tag: 102, Name: "lung_volume_l", Element: ElementU16, Arity: 1, Scale: 1.0 / 1000})
	add(RegistryEntry{Tag: 105, Name: "glucose_mgdl", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 106, Name: "cholesterol_mgdl", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 107, Name: "base_metabolic_rate_kcal_day", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 110, Name: "reaction_time_s", Element: ElementF32, Arity: 1, Scale: 1.0 / 1000})
	add(RegistryEntry{Tag: 111, Name: "range_of_motion_deg", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 112, Name: "grip_strength_kg", Element: ElementF32, Arity: 1, Scale: 1})

	// --- motion, tag numbers realigned to Codec_helper.py:1337-1358 ---
	add(RegistryEntry{Tag: 120, Name: "acceleration_xyz_mps2", Element: ElementF32, Arity: 3, Scale: 1})
	add(RegistryEntry{Tag: 121, Name: "velocity_xyz_mps", Element: ElementF32, Arity: 3, Scale: 1})
	add(RegistryEntry{Tag: 122, Name: "position_xyz_m", Element: ElementF32, Arity: 3, Scale: 1})
	add(RegistryEntry{Tag: 123, Name: "orientation_ypr_deg", Element: ElementF32, Arity: 3, Scale: 1})
	add(RegistryEntry{Tag: 124, Name: "orientation_ypr_centideg", Element: ElementI16, Arity: 3, Scale: 1.0 / 100})
	add(RegistryEntry{Tag: 125, Name: "magnetometer_xyz_ut", Element: ElementF32, Arity: 3, Scale: 1})
	add(RegistryEntry{Tag: 126, Name: "magnetometer_xyz_ut", Element: ElementF32, Arity: 3, Scale: 1})
	add(RegistryEntry{Tag: 128, Name: "gyration_xyz_dps", Element: ElementF32, Arity: 3, Scale: 1})
	add(RegistryEntry{Tag: 129, Name: "gyration_xyz_dps", Element: ElementF32, Arity: 3, Scale: 1})
	add(RegistryEntry{Tag: 130, Name: "position_lla", Element: ElementF32, Arity: 3, Scale: 1})
	add(RegistryEntry{Tag: 131, Name: "altitude_m", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 140, Name: "steps_per_minute", Element: ElementI16, Arity: 1, Scale: 1.0 / 100})
	add(RegistryEntry{Tag: 141, Name: "steps_total", Element: ElementU32, Arity: 1, Scale: 1})

	// --- air quality and gas sensors, tag numbers realigned to
	// Codec_helper.py:1367-1441, including the raw/"e"-estimated pairs for
	// every gas in the family ---
	add(RegistryEntry{Tag: 150, Name: "pm_ug_m3", Element: ElementF32, Arity: 3, Scale: 1}) // PM1, PM2.5, PM10
	add(RegistryEntry{Tag: 151, Name: "pm1_ug_m3", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 152, Name: "pm2_5_ug_m3", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 153, Name: "pm10_ug_m3", Element: ElementF32, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 155, Name: "co2_ppm", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 156, Name: "eco2", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 157, Name: "voc_ppb", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 158, Name: "evoc", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 159, Name: "no2_ppb", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 160, Name: "eno2", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 161, Name: "so2_ppb", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 162, Name: "eso2", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 163, Name: "o3_ppb", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 164, Name: "eo3", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 165, Name: "co_ppm", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 166, Name: "eco", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 167, Name: "h2s_ppb", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 168, Name: "eh2s", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 169, Name: "nh3_ppb", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 170, Name: "enh3", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 171, Name: "h2_ppm", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 172, Name: "eh2", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 173, Name: "ch4_ppm", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 174, Name: "ech4", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 175, Name: "c2h6_ppm", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 176, Name: "ec2h6", Element: ElementU16, Arity: 1, Scale: 1})
	add(RegistryEntry{Tag: 190, Name: "iaq_index", Element: ElementU16, Arity: 1, Scale: 1})

	// --- audio (200-207): raw or ADPCM, mono or stereo, 8 or 16 bit ---
	add(RegistryEntry{Tag: 200, Name: "audio_mono8", Decode: audioRawDecoder(1, 8)})
	add(RegistryEntry{Tag: 201, Name: "audio_stereo8", Decode: audioRawDecoder(2, 8)})
	add(RegistryEntry{Tag: 202, Name: "audio_mono16", Decode: audioRawDecoder(1, 16)})
	add(RegistryEntry{Tag: 203, Name: "audio_stereo16", Decode: audioRawDecoder(2, 16)})
	add(RegistryEntry{Tag: 204, Name: "audio_adpcm_mono8", Decode: audioAdpcmDecoder(1, 8)})
	add(RegistryEntry{Tag: 205, Name: "audio_adpcm_stereo8", Decode: audioAdpcmDecoder(2, 8)})
	add(RegistryEntry{Tag: 206, Name: "audio_adpcm_mono16", Decode: audioAdpcmDecoder(1, 16)})
	add(RegistryEntry{Tag: 207, Name: "audio_adpcm_stereo16", Decode: audioAdpcmDecoder(2, 16)})

	// --- images (220-225) ---
	add(RegistryEntry{Tag: 220, Name: "image_gray8", Decode: decodeImageGray8})
	add(RegistryEntry{Tag: 221, Name: "image_palette8", Decode: decodeImagePalette8})
	add(RegistryEntry{Tag: 222, Name: "image_rgb24", Decode: decodeImageRgb24})
	add(RegistryEntry{Tag: 223, Name: "image_rgba32", Decode: decodeImageRgba32})
	add(RegistryEntry{Tag: 224, Name: "image_gray8_dct", Decode: decodeImageGray8Dct})
	add(RegistryEntry{Tag: 225, Name: "image_rgb24_dct", Decode: decodeImageRgb24Dct})

	return reg
}
