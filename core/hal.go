package core

// The HAL is the seam between device code and a board. Each target registers
// one driver per peripheral at boot; device constructors fetch them with the
// Must functions and keep the result. Host builds register mocks instead.

// GPIOPin is a board GPIO number
type GPIOPin uint32

// PWMPin is a GPIO number routed to a PWM output
type PWMPin uint32

// PWMValue is a duty cycle, 0 (off) to PWMMax (always on)
type PWMValue uint32

// PWMMax is the full-on duty value every PWMDriver accepts
const PWMMax = 255

// ADCChannelID is a converter input, 0 being the first analog pin
type ADCChannelID uint8

// ADCValue is a raw conversion, 0..ADCMax
type ADCValue uint16

// ADCMax is full scale for the 12-bit converters we run on
const ADCMax = 4095

// ADCConfig configures the converter as a whole
type ADCConfig struct {
	Reference uint32 // millivolts, 0 keeps the board default
}

// GPIODriver switches digital outputs.
type GPIODriver interface {
	// ConfigureOutput makes pin a push-pull output, driven low
	ConfigureOutput(pin GPIOPin) error

	// SetPin drives pin high (true) or low (false)
	SetPin(pin GPIOPin, value bool) error
}

// PWMDriver runs hardware PWM outputs.
type PWMDriver interface {
	// ConfigureHardwarePWM routes pin to a PWM unit with a period of
	// cycleTicks timer ticks and returns the period actually used
	ConfigureHardwarePWM(pin PWMPin, cycleTicks uint32) (uint32, error)

	// SetDutyCycle sets the on-time, 0..PWMMax
	SetDutyCycle(pin PWMPin, value PWMValue) error

	// DisablePWM stops the output and leaves it low
	DisablePWM(pin PWMPin) error
}

// ADCDriver takes one-shot analog samples.
type ADCDriver interface {
	// Init powers the converter up
	Init(cfg ADCConfig) error

	// ConfigureChannel switches the channel's pin to analog input
	ConfigureChannel(ch ADCChannelID) error

	// ReadRaw converts once and returns the raw result
	ReadRaw(ch ADCChannelID) (ADCValue, error)
}

var (
	gpioDriver GPIODriver
	pwmDriver  PWMDriver
	adcDriver  ADCDriver
)

// SetGPIODriver registers the board's GPIO driver
func SetGPIODriver(d GPIODriver) { gpioDriver = d }

// SetPWMDriver registers the board's PWM driver
func SetPWMDriver(d PWMDriver) { pwmDriver = d }

// SetADCDriver registers the board's ADC driver
func SetADCDriver(d ADCDriver) { adcDriver = d }

// MustGPIO returns the registered GPIO driver. A board that forgot to
// register one is a wiring bug, so this panics rather than returning nil.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("core: no GPIO driver registered")
	}
	return gpioDriver
}

// MustPWM returns the registered PWM driver or panics
func MustPWM() PWMDriver {
	if pwmDriver == nil {
		panic("core: no PWM driver registered")
	}
	return pwmDriver
}

// MustADC returns the registered ADC driver or panics
func MustADC() ADCDriver {
	if adcDriver == nil {
		panic("core: no ADC driver registered")
	}
	return adcDriver
}
