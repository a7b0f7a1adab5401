package subscriptions

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/de-tools/diag-audit/pkg/models/domain"
)

var ErrMalformedRow = errors.New("malformed subscription row")

const utf8BOM = "\ufeff"

// LoadFile reads the subscription list at path.
func LoadFile(path string) ([]domain.Subscription, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subscription list: %w", err)
	}
	defer f.Close()

	subs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return subs, nil
}

// Read parses "subscription id,subscription name" rows, keeping their order.
// Blank lines are skipped; any other row without exactly two non-empty
// fields is an error.
func Read(r io.Reader) ([]domain.Subscription, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var subs []domain.Subscription
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse subscription list: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if len(record) != 2 {
			return nil, fmt.Errorf("%w on line %d: expected 2 fields, got %d", ErrMalformedRow, line, len(record))
		}

		id, name := strings.TrimSpace(record[0]), strings.TrimSpace(record[1])
		if id == "" || name == "" {
			return nil, fmt.Errorf("%w on line %d: subscription id and name are required", ErrMalformedRow, line)
		}

		subs = append(subs, domain.Subscription{ID: id, Name: name, Position: len(subs) + 1})
	}

	if len(subs) == 0 {
		return nil, errors.New("subscription list is empty")
	}
	return subs, nil
}

// skipBOM drops the UTF-8 byte order mark spreadsheet exports prepend.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && string(head) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// Write emits subs in the format Read accepts.
func Write(w io.Writer, subs []domain.Subscription) error {
	writer := csv.NewWriter(w)
	for _, sub := range subs {
		if err := writer.Write([]string{sub.ID, sub.Name}); err != nil {
			return fmt.Errorf("failed to write subscription %s: %w", sub.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
