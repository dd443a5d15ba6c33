package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

// Printer delivers rendered receipt documents to the till hardware. Drawer
// kicks travel the same channel: the cash drawer is wired to the printer,
// not to the host.
type Printer interface {
	// Print sends a rendered ESC/POS document to the printer.
	Print(doc []byte) error
	// KickDrawer pulses the cash drawer open without printing anything.
	KickDrawer() error
	// Close releases the printer connection/handle.
	Close() error
	// IsConnected reports whether the printer is currently reachable.
	IsConnected() bool
}

// drawerKick is the ESC p pulse on drawer pin 2.
var drawerKick = []byte{ESC, 'p', 0x00, 0x19, 0xFA}

// devicePrinter writes each job straight to a character device, the usual
// wiring for a USB thermal printer on Linux (e.g. /dev/usb/lp0). The device
// is opened per job so an unplugged printer fails the job, not the server.
type devicePrinter struct {
	device string
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &devicePrinter{device: devicePath}
}

func (p *devicePrinter) Print(doc []byte) error { return p.send(doc) }

func (p *devicePrinter) KickDrawer() error { return p.send(drawerKick) }

func (p *devicePrinter) send(data []byte) error {
	f, err := os.OpenFile(p.device, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.device, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.device, err)
	}
	return nil
}

func (p *devicePrinter) Close() error { return nil }

func (p *devicePrinter) IsConnected() bool {
	_, err := os.Stat(p.device)
	return err == nil
}

const (
	netDialTimeout   = 5 * time.Second
	netWriteTimeout  = 10 * time.Second
	netStatusTimeout = 2 * time.Second
)

// networkPrinter dials the printer's raw-socket port per job; most ESC/POS
// printers listen on 9100.
type networkPrinter struct {
	address string
}

// NewNetworkPrinter creates a printer that connects via TCP. The address
// includes the port, e.g. "192.168.1.100:9100".
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{address: address}
}

func (p *networkPrinter) Print(doc []byte) error { return p.send(doc) }

func (p *networkPrinter) KickDrawer() error { return p.send(drawerKick) }

func (p *networkPrinter) send(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, netDialTimeout)
	if err != nil {
		return fmt.Errorf("printer: dial %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(netWriteTimeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error { return nil }

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, netStatusTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// nullPrinter drops every job, for tills running without receipt hardware.
type nullPrinter struct{}

// NewNullPrinter creates a no-op printer.
func NewNullPrinter() Printer { return &nullPrinter{} }

func (p *nullPrinter) Print(doc []byte) error { return nil }

func (p *nullPrinter) KickDrawer() error { return nil }

func (p *nullPrinter) Close() error { return nil }

func (p *nullPrinter) IsConnected() bool { return false }

// NewPrinterFromConfig builds the transport named by the printer
// configuration: "usb" (with a device path), "network" (with an address),
// or "none".
func NewPrinterFromConfig(printerType, usbPath, address string) (Printer, error) {
	switch printerType {
	case "usb":
		if usbPath == "" {
			return nil, fmt.Errorf("printer: usb printers need a device path")
		}
		return NewUSBPrinter(usbPath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: network printers need an address")
		}
		return NewNetworkPrinter(address), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", printerType)
	}
}
