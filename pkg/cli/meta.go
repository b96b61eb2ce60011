package cli

import (
	"fmt"
	"strings"

	"github.com/Fepozopo/darkroom/pkg/stdimg"
)

// ParamType mirrors the argument types the operation catalog uses.
type ParamType string

const (
	ParamTypeInt    ParamType = "int"
	ParamTypeFloat  ParamType = "float"
	ParamTypeString ParamType = "string"
)

// ValidationRule is a machine-friendly form of one argument's constraints,
// usable by a client to validate input before invoking an operation.
type ValidationRule struct {
	Type     ParamType `json:"type"`
	Required bool      `json:"required"`
	Min      *float64  `json:"min,omitempty"`
	Max      *float64  `json:"max,omitempty"`
	Default  string    `json:"default,omitempty"`
	Hint     string    `json:"hint,omitempty"`
}

// OpHelp bundles an operation's description with its per-argument rules;
// the ops --json output is a list of these.
type OpHelp struct {
	Name        string                    `json:"name"`
	Group       string                    `json:"group"`
	Description string                    `json:"description"`
	Usage       string                    `json:"usage"`
	Params      map[string]ValidationRule `json:"params,omitempty"`
}

func ruleForArg(a stdimg.ArgSpec) ValidationRule {
	var t ParamType
	switch strings.ToLower(a.Type) {
	case "int":
		t = ParamTypeInt
	case "float":
		t = ParamTypeFloat
	default:
		t = ParamTypeString
	}
	return ValidationRule{
		Type:     t,
		Required: a.Required,
		Min:      a.Min,
		Max:      a.Max,
		Default:  a.Default,
		Hint:     a.Description,
	}
}

// HelpForOp converts a catalog entry into its help/validation form.
func HelpForOp(op stdimg.OpSpec) OpHelp {
	h := OpHelp{
		Name:        op.Name,
		Group:       op.Group,
		Description: op.Description,
		Usage:       op.Usage,
	}
	if len(op.Args) > 0 {
		h.Params = make(map[string]ValidationRule, len(op.Args))
		for _, a := range op.Args {
			h.Params[a.Name] = ruleForArg(a)
		}
	}
	return h
}

// Tooltip renders a human-readable description of an operation and its
// parameters.
func Tooltip(op stdimg.OpSpec) string {
	var sb strings.Builder
	if op.Description != "" {
		sb.WriteString(op.Description)
	} else {
		sb.WriteString("No description")
	}
	if len(op.Args) == 0 {
		sb.WriteString(" (no parameters)")
		return sb.String()
	}
	sb.WriteString("\n")
	for _, a := range op.Args {
		req := "optional"
		if a.Required {
			req = "required"
		}
		fmt.Fprintf(&sb, "  %s (%s, %s)", a.Name, a.Type, req)
		if a.Description != "" {
			sb.WriteString(": " + a.Description)
		}
		if a.Default != "" {
			sb.WriteString(" (default " + a.Default + ")")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
