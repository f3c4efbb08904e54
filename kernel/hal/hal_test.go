package hal

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/Gabriel-Alves-Cunha/blog-os/device"
	"github.com/Gabriel-Alves-Cunha/blog-os/device/video/console"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/kfmt"
)

type fakeConsole struct {
	name string
	out  bytes.Buffer
}

func (c *fakeConsole) DriverName() string                      { return c.name }
func (c *fakeConsole) DriverVersion() (uint16, uint16, uint16) { return 1, 0, 0 }

func (c *fakeConsole) DriverInit(w io.Writer) *kernel.Error {
	kfmt.Fprintf(w, "online\n")
	return nil
}

func (c *fakeConsole) Write(p []byte) (int, error)    { return c.out.Write(p) }
func (c *fakeConsole) WriteByte(b byte) error         { return c.out.WriteByte(b) }
func (c *fakeConsole) Clear()                         {}
func (c *fakeConsole) SetColorAttr(console.ColorAttr) {}

type failingDriver struct{}

func (failingDriver) DriverName() string                      { return "flaky" }
func (failingDriver) DriverVersion() (uint16, uint16, uint16) { return 0, 0, 1 }

func (failingDriver) DriverInit(io.Writer) *kernel.Error {
	return &kernel.Error{Module: "flaky", Message: "device not responding"}
}

func resetHalState(t *testing.T) {
	t.Helper()
	devices = managedDevices{}
	kfmt.SetOutputSink(nil)
	t.Cleanup(func() {
		devices = managedDevices{}
		driverListFn = device.DriverList
		kfmt.SetOutputSink(nil)
	})
}

func TestDetectHardware(t *testing.T) {
	resetHalState(t)

	con1 := &fakeConsole{name: "con1"}
	con2 := &fakeConsole{name: "con2"}

	// Deliberately unsorted; DetectHardware must probe by ascending order.
	driverListFn = func() device.DriverInfoList {
		return device.DriverInfoList{
			{Order: 3, Probe: func() device.Driver { return con2 }},
			{Order: 2, Probe: func() device.Driver { return failingDriver{} }},
			{Order: 1, Probe: func() device.Driver { return nil }},
			{Order: 0, Probe: func() device.Driver { return con1 }},
		}
	}

	DetectHardware()

	if got := ActiveConsole(); got != console.Device(con1) {
		t.Fatalf("expected the first probed console to become active; got %v", got)
	}

	if kfmt.GetOutputSink() != io.Writer(con1) {
		t.Fatal("expected the active console to take over the kfmt output sink")
	}

	// The first console's own init logs are produced before any sink
	// exists; they must be drained onto it at activation, and every later
	// driver's logs must reach it directly.
	exp := strings.Join([]string{
		"[hal] con1(1.0.0): online\n",
		"[hal] con1(1.0.0): initialized\n",
		"[hal] flaky(0.0.1): init failed: device not responding\n",
		"[hal] con2(1.0.0): online\n",
		"[hal] con2(1.0.0): initialized\n",
	}, "")

	if got := con1.out.String(); got != exp {
		t.Fatalf("expected active console output:\n%q\ngot:\n%q", exp, got)
	}

	if con2.out.Len() != 0 {
		t.Fatalf("expected the second console to receive no output; got %q", con2.out.String())
	}

	if exp, got := 2, len(devices.activeDrivers); got != exp {
		t.Fatalf("expected %d active drivers; got %d", exp, got)
	}
}
