package device

import (
	"errors"

	"brickgo/config"
	"brickgo/core"
)

var errMockFault = errors.New("mock driver fault")

// mockGPIO is a test implementation of core.GPIODriver
type mockGPIO struct {
	pins       map[core.GPIOPin]bool
	configured map[core.GPIOPin]bool
	failSet    bool
}

func newMockGPIO() *mockGPIO {
	return &mockGPIO{
		pins:       make(map[core.GPIOPin]bool),
		configured: make(map[core.GPIOPin]bool),
	}
}

func (m *mockGPIO) ConfigureOutput(pin core.GPIOPin) error {
	m.configured[pin] = true
	m.pins[pin] = false
	return nil
}

func (m *mockGPIO) SetPin(pin core.GPIOPin, value bool) error {
	if m.failSet {
		return errMockFault
	}
	m.pins[pin] = value
	return nil
}

// mockPWM is a test implementation of core.PWMDriver
type mockPWM struct {
	duty     map[core.PWMPin]core.PWMValue
	cycles   map[core.PWMPin]uint32
	disabled map[core.PWMPin]bool
}

func newMockPWM() *mockPWM {
	return &mockPWM{
		duty:     make(map[core.PWMPin]core.PWMValue),
		cycles:   make(map[core.PWMPin]uint32),
		disabled: make(map[core.PWMPin]bool),
	}
}

func (m *mockPWM) ConfigureHardwarePWM(pin core.PWMPin, cycleTicks uint32) (uint32, error) {
	m.cycles[pin] = cycleTicks
	return cycleTicks, nil
}

func (m *mockPWM) SetDutyCycle(pin core.PWMPin, value core.PWMValue) error {
	m.duty[pin] = value
	return nil
}

func (m *mockPWM) DisablePWM(pin core.PWMPin) error {
	delete(m.duty, pin)
	m.disabled[pin] = true
	return nil
}

// mockADC returns queued values, then repeats the last one
type mockADC struct {
	values     []core.ADCValue
	configured map[core.ADCChannelID]bool
	fail       bool
}

func newMockADC(values ...core.ADCValue) *mockADC {
	return &mockADC{values: values, configured: make(map[core.ADCChannelID]bool)}
}

func (m *mockADC) Init(cfg core.ADCConfig) error { return nil }

func (m *mockADC) ConfigureChannel(ch core.ADCChannelID) error {
	m.configured[ch] = true
	return nil
}

func (m *mockADC) ReadRaw(ch core.ADCChannelID) (core.ADCValue, error) {
	if m.fail {
		return 0, errMockFault
	}
	v := m.values[0]
	if len(m.values) > 1 {
		m.values = m.values[1:]
	}
	return v, nil
}

// testRig wires mock drivers into the core singletons
type testRig struct {
	gpio *mockGPIO
	pwm  *mockPWM
	adc  *mockADC
	cfg  *config.RobotConfig
}

func newTestRig(adcValues ...core.ADCValue) *testRig {
	if len(adcValues) == 0 {
		adcValues = []core.ADCValue{2048}
	}
	r := &testRig{
		gpio: newMockGPIO(),
		pwm:  newMockPWM(),
		adc:  newMockADC(adcValues...),
		cfg:  config.DefaultConfig(),
	}
	core.SetGPIODriver(r.gpio)
	core.SetPWMDriver(r.pwm)
	core.SetADCDriver(r.adc)
	return r
}

func (r *testRig) pair() (*MotorPair, error) {
	left, err := NewMotor(PortA, r.cfg.Left)
	if err != nil {
		return nil, err
	}
	right, err := NewMotor(PortC, r.cfg.Right)
	if err != nil {
		return nil, err
	}
	return NewMotorPair(left, right), nil
}

// bridge returns in1, in2 and duty for a motor config
func (r *testRig) bridge(m config.MotorConfig) (bool, bool, core.PWMValue) {
	return r.gpio.pins[core.GPIOPin(m.In1)], r.gpio.pins[core.GPIOPin(m.In2)], r.pwm.duty[core.PWMPin(m.Enable)]
}
