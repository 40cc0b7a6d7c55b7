package dto

// BufferedSnapshot holds an annotated preview before it is flushed to disk.
type BufferedSnapshot struct {
	Timestamp string
	Camera    string
	Data      []byte
}
