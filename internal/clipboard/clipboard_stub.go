//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

const displayRequired = false

func openBackend() (backend, error) {
	return nil, ErrUnsupported
}
