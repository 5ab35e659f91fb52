// Command bmi computes and classifies a body-mass index from the terminal.
//
//	bmi -mass 75.5 -height 175
//	bmi            # prompts for both values
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/spec-kit/kit-service/internal/bmi"
)

// prompter asks for one measurement.
type prompter interface {
	Ask(message, help string, validate func(string) error) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Ask(message, help string, validate func(string) error) (string, error) {
	var out string
	prompt := &survey.Input{Message: message, Help: help}
	err := survey.AskOne(prompt, &out, survey.WithValidator(func(ans interface{}) error {
		s, _ := ans.(string)
		return validate(s)
	}))
	if errors.Is(err, terminal.InterruptErr) {
		return "", errInterrupted
	}
	return out, err
}

var errInterrupted = errors.New("interrupted")

func main() {
	if err := run(os.Args[1:], os.Stdout, surveyPrompter{}); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "bmi:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, p prompter) error {
	fs := flag.NewFlagSet("bmi", flag.ContinueOnError)
	fs.SetOutput(out)
	mass := fs.Float64("mass", 0, "body mass in kilograms")
	height := fs.Float64("height", 0, "height in centimetres")
	if err := fs.Parse(args); err != nil {
		return err
	}

	limits := bmi.DefaultLimits()
	var err error
	if *mass == 0 {
		*mass, err = askMeasurement(p, "Weight (kg):", limits.MinMassKg, limits.MaxMassKg)
		if err != nil {
			return err
		}
	}
	if *height == 0 {
		*height, err = askMeasurement(p, "Height (cm):", limits.MinHeightCm, limits.MaxHeightCm)
		if err != nil {
			return err
		}
	}

	if err := limits.Check(*mass, *height); err != nil {
		return err
	}
	res, err := bmi.Assess(*mass, *height)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "BMI: %.1f (%s)\n", res.Index, res.Category)
	return err
}

func askMeasurement(p prompter, message string, lo, hi float64) (float64, error) {
	help := fmt.Sprintf("between %g and %g", lo, hi)
	raw, err := p.Ask(message, help, func(s string) error {
		_, err := parseInRange(s, lo, hi)
		return err
	})
	if err != nil {
		return 0, err
	}
	return parseInRange(raw, lo, hi)
}

func parseInRange(s string, lo, hi float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("must be between %g and %g", lo, hi)
	}
	return v, nil
}
