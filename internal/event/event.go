// internal/event/event.go
package event

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	TypeDocumentAnalyzed // A document was (re)analyzed; Data is DocumentAnalyzedData
	TypeAnalysisFailed   // Re-analysis failed; Data is AnalysisFailedData

	// Application Lifecycle Events
	TypeAppReady // Fired when the viewer is about to start
	TypeAppQuit  // Fired just before the viewer returns
)

var typeNames = map[Type]string{
	TypeUnknown:          "Unknown",
	TypeDocumentAnalyzed: "DocumentAnalyzed",
	TypeAnalysisFailed:   "AnalysisFailed",
	TypeAppReady:         "AppReady",
	TypeAppQuit:          "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// DocumentAnalyzedData describes a finished analysis.
type DocumentAnalyzedData struct {
	Path     string
	Language string
	Errors   int
	Blocking bool
	Reload   bool // false for the initial analysis
	Added    int  // lines added since the previous analysis
	Removed  int  // lines removed since the previous analysis
	Cached   bool // content was unchanged and the cached result reused
}

// AnalysisFailedData carries the error of a failed re-analysis.
type AnalysisFailedData struct {
	Path string
	Err  error
}
