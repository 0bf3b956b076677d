package filter

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// An OptionHandler is an Algorithm configurable with command-line style
// options, such as "-P 25".
type OptionHandler interface {
	Options() []string
	SetOptions(args []string) error
}

// GetOption looks for the option "-name" in args and returns its value along
// with args stripped from the option and its value. If the option is absent,
// it returns an empty string and args unchanged.
func GetOption(name string, args []string) (string, []string, error) {
	flag := "-" + name
	for i, a := range args {
		if a != flag {
			continue
		}
		if i+1 >= len(args) {
			return "", args, errors.Errorf("no value given for %s option", flag)
		}

		rest := make([]string, 0, len(args)-2)
		rest = append(rest, args[:i]...)
		rest = append(rest, args[i+2:]...)
		return args[i+1], rest, nil
	}

	return "", args, nil
}

// GetFlag reports whether the flag "-name" is present in args and returns
// args stripped from it.
func GetFlag(name string, args []string) (bool, []string) {
	flag := "-" + name
	for i, a := range args {
		if a != flag {
			continue
		}

		rest := make([]string, 0, len(args)-1)
		rest = append(rest, args[:i]...)
		rest = append(rest, args[i+1:]...)
		return true, rest
	}

	return false, args
}

// CheckUnusedOptions returns an error if args still contains options that
// no handler consumed.
func CheckUnusedOptions(args []string) error {
	for _, a := range args {
		if a != "" {
			return errors.Errorf("illegal options: %q", args)
		}
	}

	return nil
}

// ParseFloatOption parses the value of a floating point option.
func ParseFloatOption(name, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, NewConfigError(name, value, "not a number")
	}

	return f, nil
}

// ParseIntOption parses the value of an integer option.
func ParseIntOption(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, NewConfigError(name, value, "not an integer")
	}

	return n, nil
}
