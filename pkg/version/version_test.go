package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.True(t, strings.HasPrefix(String(), "mtcli "+Version+" "))

	GitCommit = "abc1234"
	defer func() { GitCommit = "" }()

	s := String()
	assert.Contains(t, s, Version+"-abc1234")
	assert.Contains(t, s, runtime.GOOS+"/"+runtime.GOARCH)
}
