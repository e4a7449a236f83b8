//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"
)

// DBus sends notifications over the session bus.
type DBus struct {
	app string
	obj dbus.BusObject
}

// New returns a D-Bus notifier for app, or Nop when no session bus is
// reachable.
func New(app string) Notifier {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Nop{}
	}
	return &DBus{app: app, obj: conn.Object(dbusNotifyDest, dbusNotifyPath)}
}

// Notify calls org.freedesktop.Notifications.Notify.
func (n *DBus) Notify(notif Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant(n.app),
	}

	// Notify(app_name, replaces_id, icon, summary, body, actions, hints, timeout) -> id
	call := n.obj.Call(
		dbusNotifyInterface+".Notify",
		0,
		n.app,
		notif.ReplacesID,
		notif.Icon,
		notif.Summary,
		notif.Body,
		[]string{},
		hints,
		notif.Timeout,
	)
	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Close closes a notification by ID.
func (n *DBus) Close(id uint32) error {
	return n.obj.Call(dbusNotifyInterface+".CloseNotification", 0, id).Err
}
