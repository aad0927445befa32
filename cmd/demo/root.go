package demo

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ValentinKolb/dPort/cmd/util"
	"github.com/ValentinKolb/dPort/lib/collection"
	"github.com/ValentinKolb/dPort/lib/hub"
	"github.com/ValentinKolb/dPort/lib/port"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	plog = logger.GetLogger("cmd")

	// DemoCmd runs the example scenarios against real ports
	DemoCmd = &cobra.Command{
		Use:   "demo",
		Short: "Run example port scenarios",
		Long: `Runs a set of scenarios that show how ports are bound and accessed:
an unset write-only port seen through a bound read-only port, a chain of
three bound ports and a small pipeline of components wired through a hub.`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	key := "steps"
	DemoCmd.Flags().Int(key, 5, util.WrapString("Number of values pushed through the pipeline scenario"))
	key = "metrics"
	DemoCmd.Flags().Bool(key, false, util.WrapString("Print the port metrics in Prometheus text format after the run"))
}

func processConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	return util.InitLogging()
}

func run(_ *cobra.Command, _ []string) error {
	if err := Run(os.Stdout, viper.GetInt("steps")); err != nil {
		return err
	}
	if viper.GetBool("metrics") {
		fmt.Println()
		metrics.WritePrometheus(os.Stdout, false)
	}
	return nil
}

// Run executes all scenarios and writes a report to w
func Run(w io.Writer, steps int) error {
	scenarios := []struct {
		name string
		fn   func(io.Writer) error
	}{
		{"unset value", scenarioUnsetValue},
		{"binding chain", scenarioChain},
		{"pipeline", func(w io.Writer) error { return scenarioPipeline(w, steps) }},
	}

	for _, s := range scenarios {
		fmt.Fprintf(w, "== %s\n", s.name)
		if err := s.fn(w); err != nil {
			plog.Errorf("scenario %s failed: %v", s.name, err)
			return fmt.Errorf("scenario %s: %w", s.name, err)
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Scenarios
// --------------------------------------------------------------------------

// scenarioUnsetValue reads an unset value through a bound port, then sets it
func scenarioUnsetValue(w io.Writer) error {
	out := port.NewWriteOnlyPort[int]()
	in := port.NewReadOnlyPort[int]()
	if err := in.BindTo(out); err != nil {
		return err
	}

	_, err := port.Read[int](in)
	if !errors.Is(err, port.ErrNoValueSet) {
		return fmt.Errorf("expected NoValueSet, got %v", err)
	}
	fmt.Fprintf(w, "read before set: %v\n", err)

	if err := port.Set(out, 42); err != nil {
		return err
	}
	value, ok, err := port.Get[int](in)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "get after set: %d (set=%t, seq=%d)\n", value, ok, in.SequenceNumber())
	return nil
}

// scenarioChain binds C to B to A and writes through A
func scenarioChain(w io.Writer) error {
	a := port.NewWriteOnlyPortWithValue(10)
	b := port.NewReadWritePort[int]()
	c := port.NewReadOnlyPort[int]()

	if err := b.BindTo(a); err != nil {
		return err
	}
	if err := c.BindTo(b); err != nil {
		return err
	}
	if err := port.Set(a, 20); err != nil {
		return err
	}

	value, _, err := port.Get[int](c)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "C after A.set(20): %d (seq=%d)\n", value, c.SequenceNumber())

	if err := c.BindTo(port.NewWriteOnlyPort[string]()); err != nil {
		fmt.Fprintf(w, "binding C to a string port: %v\n", err)
	}
	return nil
}

// scenarioPipeline wires three components through a hub and pushes values through them
func scenarioPipeline(w io.Writer, steps int) error {
	source := collection.NewList(
		collection.WriteOnlyEntry[int]("value"),
	)
	doubler, err := collection.NewArray(
		collection.ReadOnlyEntry[int]("in"),
		collection.WriteOnlyEntry[int]("out"),
	)
	if err != nil {
		return err
	}
	sink := collection.NewMap(
		collection.ReadOnlyEntry[int]("value"),
	)

	h := hub.New()
	for name, c := range map[string]collection.IPortCollection{"source": source, "doubler": doubler, "sink": sink} {
		if err := h.Register(name, c); err != nil {
			return err
		}
	}
	if err := h.ConnectPath("doubler/in", "source/value"); err != nil {
		return err
	}
	if err := h.ConnectPath("sink/value", "doubler/out"); err != nil {
		return err
	}

	var lastSeen uint32
	for i := 1; i <= steps; i++ {
		if err := collection.Set(source, "value", i); err != nil {
			return err
		}

		guard, err := collection.Read[int](doubler, "in")
		if err != nil {
			return err
		}
		doubled := guard.Value() * 2
		guard.Release()
		if err := collection.Set(doubler, "out", doubled); err != nil {
			return err
		}

		seq, err := collection.SequenceNumber(sink, "value")
		if err != nil {
			return err
		}
		if seq == lastSeen {
			continue
		}
		lastSeen = seq
		value, _, err := collection.Get[int](sink, "value")
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "step %d: sink=%d (seq=%d)\n", i, value, seq)
	}
	return nil
}
