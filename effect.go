package editor

// Effect is a one-shot event for the UI layer, such as a transient message
// or a navigation request. Effects are not part of EditState.
type Effect interface {
	effect()
}

// Destination selects what the processing pipeline does with the final
// rendered image.
type Destination int

const (
	DestinationSave Destination = iota
	DestinationExport
	DestinationShare
)

var destinationNames = [...]string{
	DestinationSave:   "save",
	DestinationExport: "export",
	DestinationShare:  "share",
}

func (d Destination) String() string {
	if d < 0 || int(d) >= len(destinationNames) {
		return "unknown"
	}
	return destinationNames[d]
}

// ParseDestination converts a name produced by String back to a Destination.
func ParseDestination(name string) (Destination, bool) {
	name = normalizeName(name)
	for i, n := range destinationNames {
		if n == name {
			return Destination(i), true
		}
	}
	return DestinationSave, false
}

type (
	// ShowMessage is a transient informational message.
	ShowMessage struct{ Text string }
	// ShowError is a transient error message.
	ShowError struct{ Text string }
	// NavigateToProcessing asks the UI to run the processing pipeline.
	NavigateToProcessing struct {
		ProjectID   string
		Destination Destination
	}
)

func (ShowMessage) effect()          {}
func (ShowError) effect()            {}
func (NavigateToProcessing) effect() {}
