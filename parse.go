package sortjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors"

	"github.com/ponharu/sort-json/internal/errors"
)

// Parse decodes a single JSON document into a Value. Object members keep the
// order they appear in the input, which is why decoding goes through the
// token stream instead of Unmarshal (Go maps would lose the order). Numbers
// are kept as their source literals.
func Parse(data []byte) (Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	value, err := parseValue(decoder)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParseError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return nil, errors.NewParseError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidJSON,
			)
		}
		return nil, errors.NewParseError("failed to decode JSON", err)
	}

	// Check for trailing data after the first JSON value. Trailing
	// whitespace is fine; anything else is not, whether a second value
	// or a stray token such as an unmatched bracket.
	if _, err := decoder.Token(); !stderrors.Is(err, io.EOF) {
		if err == nil {
			return nil, errors.NewParseError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}
		return nil, errors.NewParseError("invalid trailing data after first JSON value", err)
	}

	return value, nil
}

// ParseString parses JSON from a string.
func ParseString(jsonText string) (Value, error) {
	if strings.TrimSpace(jsonText) == "" {
		return nil, errors.NewParseError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse([]byte(jsonText))
}

// ParseFile parses JSON from a file path.
func ParseFile(filePath string) (Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewIOError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewIOError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewParseError(
			fmt.Sprintf("file '%s' is empty", filePath),
			errors.ErrEmptyInput,
		)
	}
	return Parse(data)
}

// parseValue reads the next complete value from the token stream.
func parseValue(decoder *json.Decoder) (Value, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}

	switch t := token.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(decoder)
		case '[':
			return parseArray(decoder)
		}
		// The decoder reports stray ']' or '}' as syntax errors before
		// they ever reach us.
		return nil, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null{}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", token)
}

func parseObject(decoder *json.Decoder) (Object, error) {
	object := Object{}
	var seen map[string]int

	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", keyToken)
		}

		value, err := parseValue(decoder)
		if err != nil {
			return nil, err
		}

		if seen == nil {
			seen = make(map[string]int)
		}
		// A duplicate key keeps its first position and takes the last
		// value, matching what JSON parsers that build maps end up with.
		if i, dup := seen[key]; dup {
			object[i].Value = value
			continue
		}
		seen[key] = len(object)
		object = append(object, Member{Key: key, Value: value})
	}

	// Consume the closing '}'.
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return object, nil
}

func parseArray(decoder *json.Decoder) (Array, error) {
	array := Array{}
	for decoder.More() {
		value, err := parseValue(decoder)
		if err != nil {
			return nil, err
		}
		array = append(array, value)
	}

	// Consume the closing ']'.
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return array, nil
}
