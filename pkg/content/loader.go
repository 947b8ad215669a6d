package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
)

// Parse strictly decodes one section of copy. Unknown fields are rejected so
// a typo in a key does not silently blank a line.
func Parse[T any](data []byte) (T, error) {
	var result T

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return result, err
	}
	if dec.More() {
		return result, fmt.Errorf("unexpected data after top-level value")
	}
	return result, nil
}

// Load reads and decodes an embedded copy file.
func Load[T any](filename string) (T, error) {
	var result T

	data, err := copyFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	result, err = Parse[T](data)
	if err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}
	return result, nil
}

// MustLoad is Load for copy the program cannot run without.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}

// LoadLibrary loads and validates every embedded section.
func LoadLibrary() (*Library, error) {
	menu, err := Load[Menu](MenuFile)
	if err != nil {
		return nil, err
	}
	aetherian, err := Load[Aetherian](AetherianFile)
	if err != nil {
		return nil, err
	}
	chronos, err := Load[Chronos](ChronosFile)
	if err != nil {
		return nil, err
	}
	void, err := Load[Void](VoidFile)
	if err != nil {
		return nil, err
	}

	lib := &Library{Menu: menu, Aetherian: aetherian, Chronos: chronos, Void: void}
	if err := Validate(lib); err != nil {
		return nil, fmt.Errorf("invalid embedded copy: %w", err)
	}
	return lib, nil
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
)

// Default returns the embedded library, loading it on first use. It panics
// if the embedded copy is broken.
func Default() *Library {
	defaultOnce.Do(func() {
		lib, err := LoadLibrary()
		if err != nil {
			panic(err)
		}
		defaultLib = lib
	})
	return defaultLib
}
