package hub

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ValentinKolb/dPort/lib/collection"
	"github.com/ValentinKolb/dPort/lib/port"
)

// sensor is a minimal component exposing its ports
type sensor struct {
	ports *collection.List
}

func (s *sensor) Ports() collection.IPortCollection {
	return s.ports
}

func newSensor() *sensor {
	return &sensor{ports: collection.NewList(
		collection.WriteOnlyEntryWithValue("value", 21.5),
		collection.WriteOnlyEntry[string]("unit"),
	)}
}

func newDisplay() collection.IPortCollection {
	return collection.NewMap(
		collection.ReadOnlyEntry[float64]("value"),
		collection.ReadOnlyEntry[float64]("unit"),
	)
}

// TestRegistry tests registering, looking up and removing components
func TestRegistry(t *testing.T) {
	h := New()

	if err := h.RegisterProvider("sensor", newSensor()); err != nil {
		t.Fatalf("RegisterProvider failed: %v", err)
	}
	if err := h.Register("display", newDisplay()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := h.Register("display", newDisplay()); !errors.Is(err, port.ErrAlreadyInCollection) {
		t.Errorf("Expected ErrAlreadyInCollection, got %v", err)
	}

	names := h.Names()
	if len(names) != 2 || names[0] != "display" || names[1] != "sensor" {
		t.Errorf("Unexpected names %v", names)
	}

	c, ok := h.Lookup("sensor")
	if !ok || c.Len() != 2 {
		t.Errorf("Lookup(sensor) returned %v, %v", c, ok)
	}

	if !h.Unregister("sensor") {
		t.Errorf("Unregister should report success")
	}
	if h.Unregister("sensor") {
		t.Errorf("Second Unregister should report failure")
	}
	if h.Len() != 1 {
		t.Errorf("Expected 1 component, got %d", h.Len())
	}
}

// TestConnect tests wiring of ports across components
func TestConnect(t *testing.T) {
	h := New()
	s := newSensor()
	_ = h.RegisterProvider("sensor", s)
	_ = h.Register("display", newDisplay())

	if err := h.ConnectPath("display/value", "sensor/value"); err != nil {
		t.Fatalf("ConnectPath failed: %v", err)
	}

	display, _ := h.Lookup("display")
	value, _, err := collection.Get[float64](display, "value")
	if err != nil || value != 21.5 {
		t.Errorf("Expected 21.5, got %v (%v)", value, err)
	}

	if err := collection.Set(s.Ports(), "value", 22.0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, _, _ = collection.Get[float64](display, "value")
	if value != 22.0 {
		t.Errorf("Expected 22, got %v", value)
	}

	tests := []struct {
		name   string
		dst    string
		src    string
		target error
	}{
		{"missing dst component", "nope/value", "sensor/value", port.ErrNotFound},
		{"missing dst port", "display/nope", "sensor/value", port.ErrNotFound},
		{"missing src component", "display/value", "nope/value", port.ErrOtherNotFound},
		{"missing src port", "display/value", "sensor/nope", port.ErrOtherNotFound},
		{"type mismatch", "display/unit", "sensor/unit", port.ErrWrongDataType},
		{"invalid address", "display", "sensor/value", ErrInvalidAddress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := h.ConnectPath(tt.dst, tt.src); !errors.Is(err, tt.target) {
				t.Errorf("Expected %v, got %v", tt.target, err)
			}
		})
	}
}

// TestParseAddress tests splitting of port addresses
func TestParseAddress(t *testing.T) {
	tests := map[string]struct {
		component string
		port      string
		valid     bool
	}{
		"a/b":   {"a", "b", true},
		"a/b/c": {"a", "b/c", true},
		"a":     {"", "", false},
		"/b":    {"", "", false},
		"a/":    {"", "", false},
		"":      {"", "", false},
	}

	for addr, want := range tests {
		component, portName, err := ParseAddress(addr)
		if want.valid != (err == nil) {
			t.Errorf("ParseAddress(%q): unexpected error state %v", addr, err)
			continue
		}
		if component != want.component || portName != want.port {
			t.Errorf("ParseAddress(%q) = %q, %q", addr, component, portName)
		}
	}
}

// TestConcurrentRegister tests that concurrent registration keeps every component
func TestConcurrentRegister(t *testing.T) {
	const numComponents = 50

	h := New()
	var wg sync.WaitGroup
	wg.Add(numComponents)
	for i := 0; i < numComponents; i++ {
		go func(i int) {
			defer wg.Done()
			if err := h.Register(fmt.Sprintf("c%02d", i), newDisplay()); err != nil {
				t.Errorf("Register failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if h.Len() != numComponents {
		t.Errorf("Expected %d components, got %d", numComponents, h.Len())
	}
}
