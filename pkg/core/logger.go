package core

// Logger receives advisory progress output. Renderers never write progress
// to the pixel stream.
type Logger interface {
	Printf(format string, args ...interface{})
}
