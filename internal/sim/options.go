package sim

// Option applies a configuration option to the Simulator.
type Option func(*Simulator)

// WithProgress sets an advisory callback invoked synchronously after each
// committed contest. The callback receives copies only and cannot mutate
// simulation state.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Simulator) {
		s.progress = fn
	}
}
