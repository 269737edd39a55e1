package response

import "sync"

// Sink receives the single response for a request.
type Sink interface {
	// Respond records the response. A second call returns ErrAlreadyResponded.
	Respond(resp *Response) error
}

// Recorder is a Sink that keeps the response in memory.
type Recorder struct {
	mu   sync.Mutex
	resp *Response
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Respond implements Sink.
func (r *Recorder) Respond(resp *Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resp != nil {
		return ErrAlreadyResponded
	}
	r.resp = resp
	return nil
}

// Response returns the recorded response, or nil if none was recorded.
func (r *Recorder) Response() *Response {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resp
}

// Responded reports whether a response was recorded.
func (r *Recorder) Responded() bool {
	return r.Response() != nil
}
