package morphology

import (
	"fmt"
	"strings"
)

// Operation is a morphological operator. The zero value is not valid.
type Operation int

const (
	Erode Operation = iota + 1
	Dilate
	Open
	Close
	Gradient
)

var operationNames = map[Operation]string{
	Erode:    "erosion",
	Dilate:   "dilation",
	Open:     "opening",
	Close:    "closing",
	Gradient: "gradient",
}

func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(op))
}

// Valid reports whether op is one of the defined operations.
func (op Operation) Valid() bool {
	_, ok := operationNames[op]
	return ok
}

// ParseOperation resolves an operation name, ignoring case. Both the noun
// ("erosion") and the verb ("erode") forms are accepted.
func ParseOperation(name string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "erosion", "erode":
		return Erode, nil
	case "dilation", "dilate":
		return Dilate, nil
	case "opening", "open":
		return Open, nil
	case "closing", "close":
		return Close, nil
	case "gradient":
		return Gradient, nil
	}
	return 0, fmt.Errorf("unknown morphology operation %q", name)
}

// Operations lists every operation in declaration order.
func Operations() []Operation {
	return []Operation{Erode, Dilate, Open, Close, Gradient}
}
