package xrandr

import (
	"errors"
	"fmt"
)

// Output is the live state of a single connector as reported by xrandr.
type Output struct {
	Name           string
	Connected      bool
	Primary        bool
	EDID           string
	SupportedModes []string
	PreferredMode  string
	CurrentMode    string
	Position       string
	Rotation       string
	Rate           float64
}

func (o *Output) Validate() error {
	if o.Name == "" {
		return errors.New("output name cant be empty")
	}
	return nil
}

type Outputs []*Output

func (o Outputs) Validate() error {
	for _, output := range o {
		if err := output.Validate(); err != nil {
			return fmt.Errorf("invalid output: %w", err)
		}
	}
	return nil
}

// Connected filters the outputs down to the ones with an attached display.
func (o Outputs) Connected() Outputs {
	connected := Outputs{}
	for _, output := range o {
		if output.Connected {
			connected = append(connected, output)
		}
	}
	return connected
}
