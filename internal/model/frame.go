package model

// Frame is an encoded still image taken from the live stream.
// It lives for a single capture iteration and is never retained.
type Frame struct {
	Data     []byte
	MIMEType string
	Width    int
	Height   int
	Quality  float64
}

// Size returns the encoded size in bytes.
func (f Frame) Size() int {
	return len(f.Data)
}
