package grades

import (
	"fmt"
)

// Policy holds the grading rules. It is passed by value to the classifier.
type Policy struct {
	Sessions      int     `yaml:"sessions"`
	AbsenceCap    float64 `yaml:"absence-cap"`
	PassAverage   float64 `yaml:"pass-average"`
	MakeupAverage float64 `yaml:"makeup-average"`
	MakeupBase    float64 `yaml:"makeup-base"`
}

// DefaultPolicy is 60 sessions with a 25% absence cap, a pass average of 70 and a
// make-up exam for averages from 50.
func DefaultPolicy() Policy {
	return Policy{
		Sessions:      60,
		AbsenceCap:    0.25,
		PassAverage:   70,
		MakeupAverage: 50,
		MakeupBase:    100,
	}
}

// MaxFouls is the number of absences allowed before a student fails for absences.
func (p Policy) MaxFouls() float64 {
	return float64(p.Sessions) * p.AbsenceCap
}

func (p Policy) Validate() error {
	if p.Sessions <= 0 {
		return fmt.Errorf("invalid policy: sessions must be greater than 0 (%v)", p.Sessions)
	}

	if p.AbsenceCap < 0 || p.AbsenceCap > 1 {
		return fmt.Errorf("invalid policy: absence cap must be between 0 and 1 (%v)", p.AbsenceCap)
	}

	if p.MakeupAverage > p.PassAverage {
		return fmt.Errorf("invalid policy: make-up average (%v) is greater than pass average (%v)", p.MakeupAverage, p.PassAverage)
	}

	if p.MakeupBase < p.PassAverage {
		return fmt.Errorf("invalid policy: make-up base (%v) is less than pass average (%v)", p.MakeupBase, p.PassAverage)
	}

	return nil
}
