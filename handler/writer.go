// Package handler provides concrete buffer handlers for the logger: plain
// io.Writer appending, background hand-off, and chunk compression.
//
// Handlers compose. A typical production pipeline decouples the logging
// goroutine from I/O and compresses on the background side:
//
//	file, _ := os.Create("app.binlog")
//	comp, _ := handler.NewCompressed(handler.NewWriter(file), format.CompressionS2)
//	h := handler.NewAsync(comp, 64)
//	defer h.Close()
//
//	lg, _ := logger.New(16*1024, h)
package handler

import "io"

// Writer appends every handed-off buffer to an io.Writer.
//
// The write happens synchronously during the hand-off call, which satisfies
// the handler contract without copying: the buffer is not retained.
type Writer struct {
	w io.Writer
}

// NewWriter creates a handler appending buffers to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Handle writes the buffer to the underlying writer.
func (h *Writer) Handle(buf []byte) error {
	_, err := h.w.Write(buf)

	return err
}
