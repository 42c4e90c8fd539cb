package platform

// DefaultAppName identifies the sender when Options.AppName is empty.
const DefaultAppName = "PaintFrame"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName names the sending application where the platform shows it.
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Urgent marks failures so the notification center keeps them visible.
	Urgent bool
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}
