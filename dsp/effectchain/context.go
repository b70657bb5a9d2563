package effectchain

// Context provides environmental information that processor factories need.
type Context struct {
	SampleRate float64
}
