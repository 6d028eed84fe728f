package dashboard

import "math"

// Animation tuning. Phases advance with wall-clock deltas so the motion
// speed is independent of the achieved frame rate.
const (
	pulseRadPerMS    = 0.003
	shimmerPerMS     = 0.05
	shimmerModulus   = 100.0
	transitionFrames = 20
)

// FxState carries the animation clock: a frame counter, a sine pulse
// phase, a shimmer offset, and a page-transition flag.
type FxState struct {
	AnimationsPaused    bool
	ReducedMotion       bool
	FrameCount          uint64
	LastTransitionFrame uint64
	TransitionActive    bool
	PulsePhase          float64
	ShimmerOffset       float64
}

// ShouldAnimate reports whether animated elements may move this frame.
func (f *FxState) ShouldAnimate() bool {
	return !f.AnimationsPaused && !f.ReducedMotion
}

// Tick advances the clock by one frame of deltaMS milliseconds. The frame
// counter always advances; phase accumulators only move while animating.
func (f *FxState) Tick(deltaMS float64) {
	f.FrameCount++

	if f.ShouldAnimate() {
		f.PulsePhase = math.Mod(f.PulsePhase+deltaMS*pulseRadPerMS, 2*math.Pi)
		f.ShimmerOffset = math.Mod(f.ShimmerOffset+deltaMS*shimmerPerMS, shimmerModulus)
	}

	if f.TransitionActive && f.FrameCount-f.LastTransitionFrame > transitionFrames {
		f.TransitionActive = false
	}
}

// StartTransition marks the beginning of a page transition.
func (f *FxState) StartTransition() {
	f.TransitionActive = true
	f.LastTransitionFrame = f.FrameCount
}

// PulseValue returns the current breathing intensity in [0, 1]. When
// animation is off it holds steady at the midpoint.
func (f *FxState) PulseValue() float64 {
	if !f.ShouldAnimate() {
		return 0.5
	}
	return (math.Sin(f.PulsePhase) + 1) / 2
}
