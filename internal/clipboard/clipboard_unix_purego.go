//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const displayRequired = true

const (
	selectionName = "CLIPBOARD"
	targetsName   = "TARGETS"
	propertyName  = "PAINTFRAME_CLIPBOARD"

	readTimeout = 2 * time.Second
)

var errNoReply = errors.New("clipboard: selection owner did not reply")

// xgbBackend owns the CLIPBOARD selection through an unmapped window and
// answers conversion requests from other clients on its own goroutine.
type xgbBackend struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  map[string]xproto.Atom
	names  map[xproto.Atom]string
	held   held
}

func openBackend() (backend, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	window, err := newWindow(conn, xproto.WindowClassInputOutput,
		xproto.EventMaskPropertyChange|xproto.EventMaskStructureNotify)
	if err != nil {
		conn.Close()
		return nil, err
	}
	b := &xgbBackend{conn: conn, window: window}
	if err := b.intern(); err != nil {
		conn.Close()
		return nil, err
	}
	go b.serve()
	return b, nil
}

func newWindow(conn *xgb.Conn, class uint16, mask uint32) (xproto.Window, error) {
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}
	var (
		depth  byte
		visual xproto.Visualid
	)
	if class == xproto.WindowClassInputOutput {
		depth, visual = screen.RootDepth, screen.RootVisual
	}
	err = xproto.CreateWindowChecked(conn, depth, window, screen.Root, 0, 0, 1, 1, 0,
		class, visual, xproto.CwEventMask, []uint32{mask}).Check()
	return window, err
}

// intern resolves every name the backend uses, including all targets, once.
func (b *xgbBackend) intern() error {
	names := []string{selectionName, targetsName, propertyName}
	for _, k := range []Kind{KindText, KindImage} {
		names = append(names, targets[k]...)
	}
	b.atoms = make(map[string]xproto.Atom, len(names))
	b.names = make(map[xproto.Atom]string, len(names))
	for _, name := range names {
		reply, err := xproto.InternAtom(b.conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return fmt.Errorf("intern %s: %w", name, err)
		}
		b.atoms[name] = reply.Atom
		b.names[reply.Atom] = name
	}
	return nil
}

func (b *xgbBackend) write(k Kind, data []byte) error {
	b.held.set(k, data)
	return xproto.SetSelectionOwnerChecked(b.conn, b.window, b.atoms[selectionName], xproto.TimeCurrentTime).Check()
}

// read returns held data directly while this process owns the selection.
// Otherwise each target for k is requested in order of preference.
func (b *xgbBackend) read(k Kind) ([]byte, error) {
	if b.owns() {
		if data := b.held.get(k); len(data) > 0 {
			return bytes.Clone(data), nil
		}
		return nil, ErrEmpty
	}
	err := ErrEmpty
	for _, name := range targets[k] {
		var data []byte
		if data, err = b.convert(b.atoms[name]); err == nil {
			return data, nil
		}
	}
	return nil, err
}

func (b *xgbBackend) owns() bool {
	reply, err := xproto.GetSelectionOwner(b.conn, b.atoms[selectionName]).Reply()
	return err == nil && reply.Owner == b.window
}

func (b *xgbBackend) serve() {
	for {
		ev, err := b.conn.WaitForEvent()
		if ev == nil && err == nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			b.answer(e)
		case xproto.SelectionClearEvent:
			b.held.clear()
		}
	}
}

func (b *xgbBackend) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		// Obsolete requestors expect the reply in a property named after the
		// target.
		property = e.Target
	}
	name := b.names[e.Target]
	if name == targetsName {
		offered := append([]string{targetsName}, b.held.offered()...)
		b.put(e.Requestor, property, xproto.AtomAtom, 32, b.atomList(offered))
	} else if data := b.held.forTarget(name); len(data) > 0 {
		b.put(e.Requestor, property, e.Target, 8, data)
	} else {
		property = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(b.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

func (b *xgbBackend) put(window xproto.Window, property, typ xproto.Atom, format byte, data []byte) {
	units := uint32(len(data) * 8 / int(format))
	xproto.ChangeProperty(b.conn, xproto.PropModeReplace, window, property, typ, format, units, data)
}

func (b *xgbBackend) atomList(names []string) []byte {
	buf := make([]byte, 4*len(names))
	for i, name := range names {
		xgb.Put32(buf[4*i:], uint32(b.atoms[name]))
	}
	return buf
}

// convert asks the selection owner for target on a short-lived connection,
// so the notification is not consumed by serve.
func (b *xgbBackend) convert(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	timer := time.AfterFunc(readTimeout, conn.Close)
	defer func() {
		if timer.Stop() {
			conn.Close()
		}
	}()

	window, err := newWindow(conn, xproto.WindowClassInputOnly, xproto.EventMaskPropertyChange)
	if err != nil {
		return nil, err
	}
	property := b.atoms[propertyName]
	if err := xproto.ConvertSelectionChecked(conn, window, b.atoms[selectionName], target, property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if ev == nil && err == nil {
			return nil, errNoReply
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok || e.Requestor != window {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, ErrEmpty
		}
		reply, perr := xproto.GetProperty(conn, true, window, e.Property, xproto.GetPropertyTypeAny, 0, math.MaxInt32).Reply()
		if perr != nil {
			return nil, perr
		}
		return bytes.Clone(reply.Value), nil
	}
}
