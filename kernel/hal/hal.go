// Package hal probes the registered device drivers and wires the first
// detected console up as the kernel's output sink.
package hal

import (
	"bytes"
	"sort"

	"github.com/Gabriel-Alves-Cunha/blog-os/device"
	"github.com/Gabriel-Alves-Cunha/blog-os/device/video/console"
	"github.com/Gabriel-Alves-Cunha/blog-os/kernel/kfmt"
)

// managedDevices contains the devices discovered by the HAL.
type managedDevices struct {
	activeConsole console.Device

	// activeDrivers tracks all initialized device drivers.
	activeDrivers []device.Driver
}

var (
	devices managedDevices
	strBuf  bytes.Buffer

	// Hooks swappable by tests.
	driverListFn = device.DriverList
)

// ActiveConsole returns the currently active console device.
func ActiveConsole() console.Device {
	return devices.activeConsole
}

// DetectHardware probes for hardware devices and initializes the
// appropriate drivers in priority order.
func DetectHardware() {
	drivers := driverListFn()
	sort.Sort(drivers)

	probe(drivers)
}

// probe executes the probe function for each driver and invokes
// onDriverInit for each successfully initialized driver.
func probe(driverInfoList device.DriverInfoList) {
	var w kfmt.PrefixWriter

	for _, info := range driverInfoList {
		drv := info.Probe()
		if drv == nil {
			continue
		}

		// Re-fetch the sink each time: once a console driver has been
		// initialized it takes over as the sink and the logs for the
		// remaining drivers should reach the screen directly.
		w.Sink = kfmt.GetOutputSink()

		strBuf.Reset()
		major, minor, patch := drv.DriverVersion()
		kfmt.Fprintf(&strBuf, "[hal] %s(%d.%d.%d): ", drv.DriverName(), major, minor, patch)
		w.Prefix = strBuf.Bytes()

		if err := drv.DriverInit(&w); err != nil {
			kfmt.Fprintf(&w, "init failed: %s\n", err.Message)
			continue
		}

		kfmt.Fprintf(&w, "initialized\n")
		onDriverInit(drv)
		devices.activeDrivers = append(devices.activeDrivers, drv)
	}
}

// onDriverInit is invoked by probe() whenever a piece of hardware is
// detected and successfully initialized. The first console found becomes
// the active console and takes over the kfmt output sink, draining any
// early boot output onto the screen.
func onDriverInit(drv device.Driver) {
	cons, isConsole := drv.(console.Device)
	if !isConsole || devices.activeConsole != nil {
		return
	}

	devices.activeConsole = cons
	kfmt.SetOutputSink(cons)
}
