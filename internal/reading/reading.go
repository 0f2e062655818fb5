// internal/reading/reading.go
package reading

// Alpha is the weight kept from history on every update after the seed.
const Alpha = 0.8

// Reading holds the latest exponentially smoothed meter values.
// Until Initialized is true the channel values are not real data.
type Reading struct {
	Initialized bool    `json:"-"`
	Watts       float32 `json:"watts"`
	Volts       float32 `json:"volts"`
	FrequencyHz float32 `json:"frequency"`
}

// Update folds one sample into the reading.
// The first sample seeds all channels without smoothing.
func (r *Reading) Update(watts, volts, frequencyHz float32) {
	if !r.Initialized {
		r.Watts = watts
		r.Volts = volts
		r.FrequencyHz = frequencyHz
		r.Initialized = true
		return
	}

	r.Watts = ewma(r.Watts, watts)
	r.Volts = ewma(r.Volts, volts)
	r.FrequencyHz = ewma(r.FrequencyHz, frequencyHz)
}

// Reset zeroes all channels after a link fault.
// Initialized is left as-is: once seeded, a faulted reading reports zeros
// with the flag still set.
func (r *Reading) Reset() {
	r.Watts = 0
	r.Volts = 0
	r.FrequencyHz = 0
}

// ewma blends in float64 so the result is the correctly rounded float32 of
// old*Alpha + in*(1-Alpha).
func ewma(old, in float32) float32 {
	return float32(float64(old)*Alpha + float64(in)*(1-Alpha))
}
