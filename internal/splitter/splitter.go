// Package splitter provides fixed-size text chunking with overlap.
//
// Large source documents exceed a single model call's context window,
// so they are split into overlapping chunks. The overlap preserves
// context across chunk boundaries.
package splitter

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 4000

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 200

// Splitter splits text into fixed-size overlapping chunks.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// ChunkSize returns the configured chunk size.
func (s *Splitter) ChunkSize() int { return s.chunkSize }

// Overlap returns the configured overlap.
func (s *Splitter) Overlap() int { return s.overlap }

// Split returns the overlapping chunks of text, in document order.
// Empty text produces no chunks.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	textLen := len(text)
	step := s.chunkSize - s.overlap

	chunks := make([]string, 0, textLen/step+1)

	for start := 0; start < textLen; start += step {
		end := start + s.chunkSize
		if end > textLen {
			end = textLen
		}

		chunks = append(chunks, text[start:end])

		if end == textLen {
			break
		}
	}

	return chunks
}
