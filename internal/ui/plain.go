package ui

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// LineInput reads one command per line, as typed into a plain terminal or
// piped in from a file.
type LineInput struct {
	scanner *bufio.Scanner
	once    sync.Once
	lines   chan scanned
}

// scanned is one line, or the error that ended the input.
type scanned struct {
	text string
	err  error
}

// NewLineInput reads commands from r.
func NewLineInput(r io.Reader) *LineInput {
	return &LineInput{scanner: bufio.NewScanner(r), lines: make(chan scanned)}
}

// NextAction returns the next line without its line ending. It returns
// io.EOF when the reader is exhausted and ctx.Err() as soon as ctx is done,
// even while a read is still blocked.
func (in *LineInput) NextAction(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	in.once.Do(func() { go in.scan() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-in.lines:
		if !ok {
			return "", io.EOF
		}
		return line.text, line.err
	}
}

// scan feeds lines to NextAction until the reader is exhausted.
func (in *LineInput) scan() {
	defer close(in.lines)
	for in.scanner.Scan() {
		in.lines <- scanned{text: strings.TrimRight(in.scanner.Text(), "\r")}
	}
	if err := in.scanner.Err(); err != nil {
		in.lines <- scanned{err: fmt.Errorf("read line: %w", err)}
	}
}

// NarrationFormatter prints entries as bare narration lines. Warnings and
// errors get a level prefix and any attached error.
type NarrationFormatter struct{}

// Format implements logrus.Formatter.
func (NarrationFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	if entry.Level <= logrus.WarnLevel {
		b.WriteString(strings.ToUpper(entry.Level.String()))
		b.WriteString(": ")
	}
	b.WriteString(entry.Message)
	if err, ok := entry.Data[logrus.ErrorKey].(error); ok {
		b.WriteString(": ")
		b.WriteString(err.Error())
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
