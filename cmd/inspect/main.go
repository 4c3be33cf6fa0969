package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/ort"
	"github.com/wippyai/ort/api"
	"github.com/wippyai/ort/engine"
	"github.com/wippyai/ort/providers"
	"github.com/wippyai/ort/session"
	"github.com/wippyai/ort/tensor"
	"github.com/wippyai/ort/value"
)

func main() {
	var (
		modelFile   = flag.String("model", "", "Path to an ONNX model file")
		engineOnly  = flag.Bool("engine", false, "Show engine and provider info, then exit")
		withMeta    = flag.Bool("meta", false, "Include custom metadata entries")
		smoke       = flag.Bool("smoke", false, "Run one inference with zero-filled inputs")
		logLevel    = flag.String("level", "", "Engine log level (verbose|info|warning|error|fatal)")
		verbose     = flag.Bool("v", false, "Log binding activity to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		engine.SetLogger(logger)
		session.SetLogger(logger)
	}

	if *modelFile == "" && !*engineOnly {
		fmt.Fprintln(os.Stderr, "Usage: inspect -model <file.onnx> [-meta] [-smoke] [-level warning]")
		fmt.Fprintln(os.Stderr, "       inspect -engine")
		fmt.Fprintln(os.Stderr, "       inspect -model <file.onnx> -i  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*modelFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*modelFile, *logLevel, *engineOnly, *withMeta, *smoke); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveEngine forces library resolution, converting the package's panic
// on a missing or incompatible library into an error.
func resolveEngine() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	engine.Table()
	return nil
}

func run(modelFile, levelStr string, engineOnly, withMeta, smoke bool) error {
	if err := resolveEngine(); err != nil {
		return err
	}

	cfg, err := ort.ConfigFromEnv()
	if err != nil {
		return fmt.Errorf("environment config: %w", err)
	}
	if levelStr == "" {
		levelStr = cfg.LogLevel
	}
	level, err := session.ParseLevel(levelStr)
	if err != nil {
		return err
	}

	if v := engine.Version(); v != "" {
		fmt.Printf("Engine: %s (%s)\n", v, engine.Path())
	} else {
		fmt.Println("Engine: installed table")
	}
	if build := engine.BuildInfo(); build != "" {
		fmt.Printf("Build: %s\n", build)
	}
	avail, err := providers.Available()
	if err != nil {
		return fmt.Errorf("list providers: %w", err)
	}
	fmt.Printf("Providers: %s\n", strings.Join(avail, ", "))

	if engineOnly {
		return nil
	}

	env, err := session.NewEnvironment(&session.EnvConfig{
		Name:      "inspect",
		Level:     level,
		Telemetry: cfg.Telemetry,
	})
	if err != nil {
		return fmt.Errorf("create environment: %w", err)
	}
	defer env.Close()

	s, err := session.Open(env, modelFile, nil)
	if err != nil {
		return fmt.Errorf("open %s: %w", modelFile, err)
	}
	defer s.Close()

	fmt.Printf("\nModel: %s\n", modelFile)
	if err := printMetadata(s, withMeta); err != nil {
		return err
	}
	printSignatures(s)

	if smoke {
		outs, elapsed, err := smokeRun(s, nil)
		if err != nil {
			return err
		}
		fmt.Printf("\nSmoke run (%s):\n", elapsed.Round(time.Microsecond))
		for _, o := range outs {
			fmt.Printf("  %s  %s\n", o.Name, o.Type)
		}
	}
	return nil
}

func printMetadata(s *session.Session, withCustom bool) error {
	md, err := s.Metadata()
	if err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	defer md.Close()

	graph, err := md.GraphName()
	if err != nil {
		return err
	}
	producer, err := md.Producer()
	if err != nil {
		return err
	}
	version, err := md.Version()
	if err != nil {
		return err
	}
	fmt.Printf("Graph: %s", graph)
	if producer != "" {
		fmt.Printf("  Producer: %s", producer)
	}
	if version != 0 {
		fmt.Printf("  Version: %d", version)
	}
	fmt.Println()

	if desc, err := md.Description(); err != nil {
		return err
	} else if desc != "" {
		fmt.Printf("Description: %s\n", desc)
	}

	if !withCustom {
		return nil
	}
	keys, err := md.CustomKeys()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		fmt.Println("Custom metadata:")
		for _, k := range keys {
			v, _, err := md.Custom(k)
			if err != nil {
				return err
			}
			fmt.Printf("  %s = %s\n", k, v)
		}
	}
	return nil
}

func printSignatures(s *session.Session) {
	width := 0
	for _, spec := range s.Inputs() {
		if len(spec.Name) > width {
			width = len(spec.Name)
		}
	}
	for _, spec := range s.Outputs() {
		if len(spec.Name) > width {
			width = len(spec.Name)
		}
	}

	fmt.Println("\nInputs:")
	for _, spec := range s.Inputs() {
		fmt.Printf("  %-*s  %s\n", width, spec.Name, spec.Type)
	}
	fmt.Println("Outputs:")
	for _, spec := range s.Outputs() {
		fmt.Printf("  %-*s  %s\n", width, spec.Name, spec.Type)
	}
}

// outSummary describes one smoke-run output.
type outSummary struct {
	Name string
	Type string
}

// smokeRun feeds zero-filled tensors shaped after the model's inputs and
// reports the produced output types. overrides pins symbolic dimensions;
// unnamed dynamic dimensions become 1.
func smokeRun(s *session.Session, overrides map[string]int64) ([]outSummary, time.Duration, error) {
	inputs := make([]session.NamedValue, 0, len(s.Inputs()))
	var fabricated []*value.DynTensor
	defer func() {
		for _, t := range fabricated {
			t.Close()
		}
	}()

	for _, spec := range s.Inputs() {
		vt := spec.Type
		if vt.Kind != api.TypeTensor {
			return nil, 0, fmt.Errorf("input %s: cannot fabricate a %s", spec.Name, vt)
		}
		width := tensor.SizeOf(vt.Elem)
		if width == 0 {
			return nil, 0, fmt.Errorf("input %s: cannot zero-fill %s", spec.Name, vt)
		}
		dims := make(tensor.Shape, len(vt.Dims))
		for i, d := range vt.Dims {
			if d < 1 {
				d = 1
				if i < len(vt.Symbolic) && vt.Symbolic[i] != "" {
					if v, ok := overrides[vt.Symbolic[i]]; ok && v >= 1 {
						d = v
					}
				}
			}
			dims[i] = d
		}
		buf := make([]byte, dims.Elements()*int64(width))
		in, err := value.NewDynTensor(vt.Elem, buf, dims)
		if err != nil {
			return nil, 0, fmt.Errorf("input %s: %w", spec.Name, err)
		}
		fabricated = append(fabricated, in)
		inputs = append(inputs, session.NamedValue{Name: spec.Name, Value: in.Upcast()})
	}

	start := time.Now()
	outs, err := s.Run(inputs)
	if err != nil {
		return nil, 0, fmt.Errorf("run: %w", err)
	}
	elapsed := time.Since(start)

	summaries := make([]outSummary, len(outs))
	for i, o := range outs {
		vt, err := o.ValueType()
		if err == nil {
			summaries[i].Type = vt.String()
		} else {
			summaries[i].Type = "unreadable: " + err.Error()
		}
		summaries[i].Name = s.Outputs()[i].Name
		o.Close()
	}
	return summaries, elapsed, nil
}
