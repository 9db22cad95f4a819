package mkidphoton

// Constants normative to the wire format and growth policy (spec §6.4).
const (
	// HeaderTag is the top byte of a packet word that marks it as a header.
	HeaderTag = 0xFF

	// MaxCntRate bounds the physically plausible per-pixel event rate and is
	// the chunk size used to grow a pixel's photon buffer.
	MaxCntRate = 2500

	// WavelengthDivisor and BaselineDivisor convert the fixed-point raw
	// wavelength/baseline fields into degrees, alongside RadToDeg.
	WavelengthDivisor = 32768
	BaselineDivisor   = 16384

	// RadToDeg is 180/pi, matching the reference implementation's literal
	// to bit-for-bit precision rather than a recomputed approximation.
	RadToDeg = 57.2957795131

	// HalfMsToUs converts a half-millisecond count to microseconds.
	HalfMsToUs = 500

	// WrapPeriodSeconds is the period, in seconds, by which the wrap
	// correction shifts a header timestamp (2^20 s, about 12.14 days).
	WrapPeriodSeconds = 1 << 20

	// WrapFudge tolerates header timestamps that slightly precede the
	// filename-second boundary when computing the wrap correction.
	WrapFudge = 3

	// MinIntegrationFiles and MaxIntegrationFiles bound nFiles = integration
	// time + 1, i.e. an observation window of at most 30 minutes.
	MinIntegrationFiles = 1
	MaxIntegrationFiles = 1800

	// BytesPerWord is the wire size of a header or data word.
	BytesPerWord = 8

	// MaxPacketBytes is the nominal maximum packet size; packets larger
	// than this are logged as anomalous but still processed (spec §4.5).
	MaxPacketBytes = 816

	// sentinel for an unassigned beam-map pixel.
	unassignedResID = 0xFFFFFFFF
)
