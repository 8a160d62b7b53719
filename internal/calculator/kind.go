package calculator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned for a calculation kind that does not exist.
var ErrUnknownKind = errors.New("unknown calculation kind")

// Kind names one of the calculators.
type Kind string

// Supported calculators.
const (
	KindEMI        Kind = "emi"
	KindRateChange Kind = "rate-change"
	KindSIP        Kind = "sip"
	KindGoal       Kind = "goal"
	KindPPF        Kind = "ppf"
	KindSWP        Kind = "swp"
	KindSTP        Kind = "stp"
	KindInterest   Kind = "interest"
	KindFD         Kind = "fd"
)

// Kinds lists every calculator.
func Kinds() []Kind {
	return []Kind{KindEMI, KindRateChange, KindSIP, KindGoal, KindPPF, KindSWP, KindSTP, KindInterest, KindFD}
}

// ParseKind matches a kind case-insensitively.
func ParseKind(raw string) (Kind, error) {
	candidate := Kind(strings.ToLower(strings.TrimSpace(raw)))
	for _, kind := range Kinds() {
		if kind == candidate {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}

// Title is a human readable calculator name.
func (k Kind) Title() string {
	switch k {
	case KindEMI:
		return "Loan EMI"
	case KindRateChange:
		return "Loan rate change"
	case KindSIP:
		return "Systematic investment plan"
	case KindGoal:
		return "Goal planner"
	case KindPPF:
		return "Public Provident Fund"
	case KindSWP:
		return "Systematic withdrawal plan"
	case KindSTP:
		return "Systematic transfer plan"
	case KindInterest:
		return "Simple interest"
	case KindFD:
		return "Fixed deposit comparison"
	default:
		return string(k)
	}
}
