package envvar

import (
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// lookup parses the variable n, a missing or malformed variable reports false
func lookup[T any](n string, parse func(string) (T, error)) (T, bool) {
	var zero T

	str, ok := os.LookupEnv(n)
	if !ok || str == "" {
		return zero, false
	}

	v, err := parse(str)
	if err != nil {
		logrus.WithError(err).Errorf("can not parse env var %s=%q, incorrect format", n, str)
		return zero, false
	}

	return v, true
}

func String(n string) (string, bool) {
	return lookup(n, func(s string) (string, error) { return s, nil })
}

// Duration parses the variable as a time.Duration, e.g. 250ms
func Duration(n string) (time.Duration, bool) {
	return lookup(n, time.ParseDuration)
}

func Int(n string) (int, bool) {
	return lookup(n, strconv.Atoi)
}

func Bool(n string) (bool, bool) {
	return lookup(n, strconv.ParseBool)
}
