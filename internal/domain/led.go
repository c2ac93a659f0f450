package domain

// Color is an RGB value for one keypad LED.
type Color struct {
	R, G, B uint8
}

var (
	ColorOff    = Color{}
	ColorGreen  = Color{G: 255}
	ColorBlue   = Color{B: 255}
	ColorYellow = Color{R: 255, G: 255}
)

// LED indices with a fixed meaning on the 8-pixel strip.
const (
	LEDSleep = 0
	LEDLayer = 7
)

// AllLEDs marks an LedState that lights the whole strip instead of a
// single project LED.
const AllLEDs = -1

// LedState is the visual state pushed to the keypad. It is a pure
// function of the current layer, session and sleep-prevention flag.
type LedState struct {
	Tracking       bool
	SleepPrevented bool
	ProjectLED     int
	ProjectColor   Color
	LayerActive    bool
}
