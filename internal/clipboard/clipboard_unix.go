//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import "golang.design/x/clipboard"

const displayRequired = true

type designBackend struct{}

func openBackend() (backend, error) {
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return designBackend{}, nil
}

func format(k Kind) clipboard.Format {
	if k == KindImage {
		return clipboard.FmtImage
	}
	return clipboard.FmtText
}

func (designBackend) write(k Kind, data []byte) error {
	clipboard.Write(format(k), data)
	return nil
}

func (designBackend) read(k Kind) ([]byte, error) {
	return clipboard.Read(format(k)), nil
}
