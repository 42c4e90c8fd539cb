//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const (
	urgencyNormal   = byte(1)
	urgencyCritical = byte(2)
)

// Notify sends a desktop notification using the Freedesktop.org notification spec.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	urgency := urgencyNormal
	timeout := int32(5000)
	if opts.Urgent {
		urgency = urgencyCritical
		timeout = 0
	}
	hints := map[string]dbus.Variant{"urgency": dbus.MakeVariant(urgency)}

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		opts.appName(), uint32(0), opts.IconPath, title, body, []string{}, hints, timeout)
	return call.Err
}
