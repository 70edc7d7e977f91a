package x12

type parseConfig struct {
	limits      Limits
	compression Compression
}

type ParseOption func(*parseConfig)

// WithLimits sets custom size limits. Zero fields keep their defaults.
func WithLimits(l Limits) ParseOption {
	return func(c *parseConfig) { c.limits = l }
}

// WithCompression selects the input compression. The default CompAuto
// sniffs gzip, Zstandard, LZ4 and ZIP magic bytes before delimiter
// detection. Brotli carries no magic bytes and must be selected explicitly
// with CompBR. CompNone disables sniffing and parses the input verbatim.
func WithCompression(comp Compression) ParseOption {
	return func(c *parseConfig) { c.compression = comp }
}
