package pull

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Record is one progress update derived from a single stream line.
// Payload is always a complete JSON value: the line as received when it
// parsed, or a parsing_error wrapper carrying the raw text when it did
// not.
type Record struct {
	Payload json.RawMessage
}

type parseErrorRecord struct {
	Status string `json:"status"`
	Raw    string `json:"raw"`
}

// LineFramer slices an incoming byte stream into newline-delimited
// records. Bytes are buffered until a newline arrives, so chunk
// boundaries may fall anywhere, including inside a multi-byte character.
// Decoding is lossy: invalid sequences become U+FFFD instead of failing.
type LineFramer struct {
	buf bytes.Buffer
}

// Feed appends a received chunk to the buffer.
func (f *LineFramer) Feed(p []byte) {
	f.buf.Write(p)
}

// Drain extracts every complete line currently buffered, in order.
// Empty lines (after trimming) are discarded. Remaining bytes stay
// buffered for the next Feed.
func (f *LineFramer) Drain() []Record {
	var records []Record
	for {
		b := f.buf.Bytes()
		i := bytes.IndexByte(b, '\n')
		if i < 0 {
			return records
		}
		line := string(b[:i])
		f.buf.Next(i + 1)

		if rec, ok := makeRecord(line); ok {
			records = append(records, rec)
		}
	}
}

// FlushRemainder returns the trailing buffered content as a final record,
// if any. The last record of a stream is not guaranteed a terminating
// newline, so this must be called once after the stream ends.
func (f *LineFramer) FlushRemainder() (Record, bool) {
	line := f.buf.String()
	f.buf.Reset()
	return makeRecord(line)
}

// makeRecord trims and decodes one raw line. Lines that are not valid
// JSON are never dropped; they are wrapped so the observer still sees
// them.
func makeRecord(line string) (Record, bool) {
	line = strings.TrimSpace(strings.ToValidUTF8(line, "�"))
	if line == "" {
		return Record{}, false
	}
	if json.Valid([]byte(line)) {
		return Record{Payload: json.RawMessage(line)}, true
	}
	wrapped, _ := json.Marshal(parseErrorRecord{Status: "parsing_error", Raw: line})
	return Record{Payload: wrapped}, true
}
