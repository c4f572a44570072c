package models

// LogLine is a single CRLF-terminated power event line.
type LogLine struct {
	Text string
}

func NewLogLine(text string) LogLine {
	return LogLine{Text: text}
}

// Len returns the byte length of the line as it will be written to disk.
func (l LogLine) Len() int64 {
	return int64(len(l.Text))
}

func (l LogLine) Bytes() []byte {
	return []byte(l.Text)
}

func (l LogLine) String() string {
	return l.Text
}
