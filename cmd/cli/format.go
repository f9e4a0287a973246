package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"npdecide/app"
	"npdecide/domain/core"

	"gopkg.in/yaml.v3"
)

// continuousRequest builds a request from flag values of the form family:p1:p2
func continuousRequest(alpha float64, h0, h1 string) (app.ContinuousRequest, error) {
	f0, a0, b0, err := parseDistributionFlag("h0", h0)
	if err != nil {
		return app.ContinuousRequest{}, err
	}
	f1, a1, b1, err := parseDistributionFlag("h1", h1)
	if err != nil {
		return app.ContinuousRequest{}, err
	}
	return app.ContinuousRequest{
		Alpha:    alpha,
		H0Family: f0, H0Param1: a0, H0Param2: b0,
		H1Family: f1, H1Param1: a1, H1Param2: b1,
	}, nil
}

func parseDistributionFlag(name, value string) (string, float64, float64, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return "", 0, 0, core.NewInvalidParameterError(name, fmt.Sprintf("expected family:param1:param2, got %q", value))
	}
	p1, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return "", 0, 0, core.NewInvalidParameterError(name, fmt.Sprintf("invalid param1 %q", parts[1]))
	}
	p2, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return "", 0, 0, core.NewInvalidParameterError(name, fmt.Sprintf("invalid param2 %q", parts[2]))
	}
	return strings.TrimSpace(parts[0]), p1, p2, nil
}

func render(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		return renderText(w, v)
	}
	return fmt.Errorf("unknown output format %q (use text, json or yaml)", format)
}

func renderText(w io.Writer, v interface{}) error {
	switch calc := v.(type) {
	case *app.ContinuousCalculation:
		r := calc.Result
		fmt.Fprintf(w, "H0: %s(%g, %g)  H1: %s(%g, %g)  alpha=%g\n",
			r.H0.Family, r.H0.Param1, r.H0.Param2, r.H1.Family, r.H1.Param1, r.H1.Param2, r.Alpha)
		fmt.Fprintf(w, "Threshold c*: %.4f\n", r.Threshold)
		fmt.Fprintf(w, "Power:        %.4f\n", r.Power)
		fmt.Fprintf(w, "Gamma:        %.4f\n", r.Gamma)
	case *app.MatrixCalculation:
		r := calc.Result
		fmt.Fprintf(w, "Controlled column: L%d <= %g\n", r.ControlledColumn+1, r.BoundaryValue)
		equivalent := make(map[int]bool, len(r.Equivalent))
		for _, i := range r.Equivalent {
			equivalent[i] = true
		}
		fmt.Fprintf(w, "Candidates (* = optimal):\n")
		for i, c := range r.Candidates {
			marker := " "
			if equivalent[i] {
				marker = "*"
			}
			fmt.Fprintf(w, " %s %-6s %-24s controlled=%.4f uncontrolled=%.4f\n",
				marker, c.Kind, c.Description, c.ValueControlled, c.ValueUncontrolled)
		}
		fmt.Fprintf(w, "Optimal: %s\n", r.Description)
		fmt.Fprintf(w, "Minimum uncontrolled loss: %.4f\n", r.BestValueUncontrolled)
	default:
		return fmt.Errorf("cannot render %T as text", v)
	}
	return nil
}
