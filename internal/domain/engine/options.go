package engine

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithKFactor sets the sensitivity constant controlling the maximum rating
// swing per contest. Negative values are kept and rejected by Resolve so the
// misconfiguration surfaces as an error instead of being silently dropped.
func WithKFactor(k float64) Option {
	return func(e *Engine) {
		e.kFactor = k
	}
}

// WithArcadeMode enables the win-streak bonus on the winner's delta.
func WithArcadeMode(enabled bool) Option {
	return func(e *Engine) {
		e.arcade = enabled
	}
}

// WithStreakBonusFraction sets the per-streak-step bonus fraction applied in
// arcade mode, e.g. 0.1 for ten percent per consecutive win.
func WithStreakBonusFraction(fraction float64) Option {
	return func(e *Engine) {
		if fraction >= 0 {
			e.bonusFraction = fraction
		}
	}
}

// WithDrawProbability enables draw outcomes with the given probability.
// Zero (the default) disables draws entirely.
func WithDrawProbability(p float64) Option {
	return func(e *Engine) {
		if p >= 0 && p < 1 {
			e.drawProbability = p
		}
	}
}
